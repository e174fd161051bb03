package config_test

import (
	"testing"
	"time"

	"github.com/iyhunko/products-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(config.DebugModeEnv, "true")
	t.Setenv(config.DBHostEnv, "localhost")
	t.Setenv(config.DBUserEnv, "user")
	t.Setenv(config.DBPassEnv, "pass")
	t.Setenv(config.DBNameEnv, "testdb")
	t.Setenv(config.DBPortEnv, "5432")
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")
	t.Setenv(config.HTTPBaseURLEnv, "https://api.example.com")
	t.Setenv(config.RedisAddrEnv, "localhost:6379")
	t.Setenv(config.RedisTTLEnv, "30s")
	t.Setenv(config.StoreDriverEnv, "")
	t.Setenv(config.MigrationsPathEnv, "")
	t.Setenv(config.SQSQueueURLEnv, "")

	conf, err := config.LoadFromEnv()
	require.NoError(t, err, "loading config should not return error")

	assert.Equal(t, config.StoreDriverPostgres, conf.StoreDriver, "StoreDriver should default to postgres")
	assert.Equal(t, config.DefaultMigrationsPath, conf.Database.MigrationsPath, "MigrationsPath should use the default")
	assert.Equal(t, "https://api.example.com", conf.HTTPServer.BaseURL, "BaseURL should be set")
	assert.Equal(t, "localhost:6379", conf.Redis.Addr, "Redis Addr should be set")
	assert.Equal(t, 30*time.Second, conf.Redis.TTL, "Redis TTL should be 30s")

	assert.True(t, conf.DebugMode, "DebugMode should be true")
	assert.Equal(t, "localhost", conf.Database.Host, "DB Host should be 'localhost'")
	assert.Equal(t, "user", conf.Database.User, "DB User should be 'user'")
	assert.Equal(t, "pass", conf.Database.Password, "DB Password should be 'pass'")
	assert.Equal(t, "testdb", conf.Database.Name, "DB Name should be 'testdb'")
	assert.Equal(t, "5432", conf.Database.Port, "DB Port should be '5432'")
	assert.Equal(t, "8080", conf.HTTPServer.Port, "HTTP Server Port should be '8080'")
	assert.Equal(t, "9090", conf.MetricsServer.Port, "Metrics Server Port should be '9090'")
}

func TestLoadFromEnv_MemoryStore(t *testing.T) {
	t.Setenv(config.StoreDriverEnv, config.StoreDriverMemory)
	t.Setenv(config.DBHostEnv, "")
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")
	t.Setenv(config.SQSQueueURLEnv, "")
	t.Setenv(config.RedisTTLEnv, "")

	conf, err := config.LoadFromEnv()
	require.NoError(t, err, "memory store should not require database settings")

	assert.Equal(t, config.StoreDriverMemory, conf.StoreDriver)
	assert.Equal(t, config.DefaultRedisTTL, conf.Redis.TTL)
	assert.Empty(t, conf.AWS.SQSQueueURL)
}

func TestLoadFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv(config.StoreDriverEnv, config.StoreDriverMemory)
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")
	t.Setenv(config.RedisTTLEnv, "soon")

	conf, err := config.LoadFromEnv()
	require.Error(t, err)
	assert.Nil(t, conf)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			StoreDriver:   config.StoreDriverPostgres,
			Database:      config.DB{Host: "localhost", User: "user", Name: "testdb", Port: "5432"},
			HTTPServer:    config.Server{Port: "8080"},
			MetricsServer: config.Server{Port: "9090"},
			Redis:         config.RedisConfig{TTL: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{"Validate_Valid", func(c *config.Config) {}, nil},
		{"Validate_UnknownDriver", func(c *config.Config) { c.StoreDriver = "mongo" }, config.ErrInvalidConfig},
		{"Validate_MissingDBHost", func(c *config.Config) { c.Database.Host = "" }, config.ErrMissingConfig},
		{"Validate_MissingHTTPPort", func(c *config.Config) { c.HTTPServer.Port = "" }, config.ErrMissingConfig},
		{"Validate_QueueWithoutRegion", func(c *config.Config) { c.AWS.SQSQueueURL = "http://localhost:4566/queue" }, config.ErrMissingConfig},
		{"Validate_NonPositiveTTL", func(c *config.Config) { c.Redis.TTL = 0 }, config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := config.Validate(c)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	t.Run("Validate_NonNumericPort", func(t *testing.T) {
		c := valid()
		c.Database.Port = "abc"
		assert.Error(t, config.Validate(c))
	})
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"GetEnvAsBool_True", "true", false, true},
		{"GetEnvAsBool_False", "false", true, false},
		{"GetEnvAsBool_Invalid", "invalid", true, true},
		{"GetEnvAsBool_Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV", tt.envValue)
			got := config.GetEnvAsBool("TEST_ENV", tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllNumbers(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr bool
	}{
		{"AllNumbers_Valid", map[string]string{"key1": "123", "key2": "456", "key3": "789"}, false},
		{"AllNumbers_Invalid", map[string]string{"key1": "123", "key2": "abc", "key3": "789"}, true},
		{"AllNumbers_EmptyString", map[string]string{"key1": "123", "key2": "", "key3": "789"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.AllNumbers(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllNonEmpty(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr bool
	}{
		{"AllNonEmpty_Valid", map[string]string{"key1": "host", "key2": "user", "key3": "pass"}, false},
		{"AllNonEmpty_EmptyString", map[string]string{"key1": "host", "key2": "", "key3": "pass"}, true},
		{"AllNonEmpty_AllEmpty", map[string]string{"key1": "", "key2": "", "key3": ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.AllNonEmpty(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
