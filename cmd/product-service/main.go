package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/products-api/internal/config"
	httpAPI "github.com/iyhunko/products-api/internal/http"
	"github.com/iyhunko/products-api/internal/http/controller"
	"github.com/iyhunko/products-api/internal/http/route"
	"github.com/iyhunko/products-api/internal/logger"
	"github.com/iyhunko/products-api/internal/metrics"
	"github.com/iyhunko/products-api/internal/repository"
	"github.com/iyhunko/products-api/internal/repository/cache"
	"github.com/iyhunko/products-api/internal/repository/memory"
	reposql "github.com/iyhunko/products-api/internal/repository/sql"
	"github.com/iyhunko/products-api/internal/service"
	sqspkg "github.com/iyhunko/products-api/internal/sqs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(conf.DebugMode)
	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	productRepository, closeStore, err := newProductRepository(ctx, conf)
	handleErr("starting product store", err)
	defer closeStore()

	// Product events are optional: without a queue URL nothing is published
	var publisher service.EventPublisher
	if conf.AWS.SQSQueueURL != "" {
		sqsClient, err := sqspkg.NewClient(ctx, conf.AWS)
		handleErr("creating SQS client", err)
		publisher = sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)
		slog.Info("product events enabled", slog.String("queue_url", conf.AWS.SQSQueueURL))
	}

	productService := service.NewProductService(productRepository, publisher)

	// Start HTTP server
	ctr := controller.New()
	productCtr := controller.NewProductController(productService, route.NewLinker(conf.HTTPServer.BaseURL))
	engine, err := httpAPI.InitRouter(gin.New(), ctr, productCtr)
	handleErr("initializing router", err)

	httpServer := &http.Server{
		Addr:              ":" + conf.HTTPServer.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsServer := metrics.NewMetricsServer(conf)

	go serve("HTTP", httpServer)
	go serve("metrics", metricsServer)

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for name, srv := range map[string]*http.Server{"HTTP": httpServer, "metrics": metricsServer} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", slog.String("server", name), slog.Any("err", err))
		}
	}
}

// newProductRepository builds the configured store, wrapped with the Redis cache when enabled.
func newProductRepository(ctx context.Context, conf *config.Config) (repository.ProductRepository, func(), error) {
	var (
		repo    repository.ProductRepository
		closers []func() error
	)

	switch conf.StoreDriver {
	case config.StoreDriverMemory:
		repo = memory.NewProductRepository()
	default:
		db, err := reposql.StartDB(ctx, conf.Database)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, db.Close)
		repo = reposql.NewProductRepository(db)
	}

	if conf.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, conf.Redis.Addr, conf.Redis.TTL)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, nil, err
		}
		closers = append(closers, redisCache.Close)
		repo = cache.NewCachedProductRepository(repo, redisCache)
		slog.Info("product cache enabled", slog.String("addr", conf.Redis.Addr), slog.Duration("ttl", conf.Redis.TTL))
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				slog.Error("failed to close resource", slog.Any("err", err))
			}
		}
	}
	return repo, closeAll, nil
}

func serve(name string, srv *http.Server) {
	slog.Info("server starting", slog.String("server", name), slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		handleErr("listening to "+name+" requests", err)
	}
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
