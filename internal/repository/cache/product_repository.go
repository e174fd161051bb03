package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/iyhunko/products-api/internal/model"
	"github.com/iyhunko/products-api/internal/repository"
)

const (
	allProductsKey = "products:all"
)

func productKey(id uuid.UUID) string {
	return "product:" + id.String()
}

// CachedProductRepository decorates a repository.ProductRepository with a cache.
// Cache failures are logged and the call falls through to the wrapped store.
type CachedProductRepository struct {
	repo  repository.ProductRepository
	cache Cache
}

// NewCachedProductRepository wraps repo with the given cache.
func NewCachedProductRepository(repo repository.ProductRepository, cache Cache) *CachedProductRepository {
	return &CachedProductRepository{
		repo:  repo,
		cache: cache,
	}
}

func (r *CachedProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	created, err := r.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, allProductsKey)
	return created, nil
}

func (r *CachedProductRepository) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.cache.Get(ctx, allProductsKey, &products)
	if err == nil {
		slog.Debug("cache hit", slog.String("key", allProductsKey))
		return products, nil
	}
	r.logMiss(allProductsKey, err)

	products, err = r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, allProductsKey, products); err != nil {
		slog.Warn("failed to cache products", slog.Any("err", err))
	}
	return products, nil
}

func (r *CachedProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	key := productKey(id)

	var product model.Product
	err := r.cache.Get(ctx, key, &product)
	if err == nil {
		slog.Debug("cache hit", slog.String("key", key))
		return &product, nil
	}
	r.logMiss(key, err)

	found, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, found); err != nil {
		slog.Warn("failed to cache product", slog.Any("err", err), slog.String("key", key))
	}
	return found, nil
}

func (r *CachedProductRepository) Save(ctx context.Context, product *model.Product) (*model.Product, error) {
	saved, err := r.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, productKey(product.ID), allProductsKey)
	return saved, nil
}

func (r *CachedProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, productKey(id), allProductsKey)
	return nil
}

// ExistsByID bypasses the cache.
func (r *CachedProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.repo.ExistsByID(ctx, id)
}

func (r *CachedProductRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Delete(ctx, keys...); err != nil {
		slog.Warn("failed to invalidate cache", slog.Any("err", err), slog.Any("keys", keys))
	}
}

func (r *CachedProductRepository) logMiss(key string, err error) {
	if errors.Is(err, ErrMiss) {
		slog.Debug("cache miss", slog.String("key", key))
		return
	}
	slog.Warn("cache error", slog.Any("err", err), slog.String("key", key))
}
