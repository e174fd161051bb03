// Package memory provides an in-process product store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/iyhunko/products-api/internal/model"
	"github.com/iyhunko/products-api/internal/repository"
)

// ProductRepository is an in-memory implementation of repository.ProductRepository.
// Products are stored by value so callers never share state with the store.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]model.Product
}

// NewProductRepository creates an empty in-memory product store.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[uuid.UUID]model.Product),
	}
}

// Create stores a new product, generating its ID when unset.
func (r *ProductRepository) Create(_ context.Context, product *model.Product) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == uuid.Nil {
		product.InitMeta()
	}
	if _, ok := r.products[product.ID]; ok {
		return nil, &repository.UniqueConstraintError{Detail: fmt.Sprintf("Key (id)=(%s) already exists.", product.ID)}
	}
	r.products[product.ID] = *product

	stored := *product
	return &stored, nil
}

// List returns all products in map iteration order.
func (r *ProductRepository) List(_ context.Context) ([]*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*model.Product, 0, len(r.products))
	for _, p := range r.products {
		product := p
		products = append(products, &product)
	}
	return products, nil
}

// FindByID returns the product with the given ID or repository.ErrNotFound.
func (r *ProductRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	return &product, nil
}

// Save inserts or replaces the product keyed by its ID.
func (r *ProductRepository) Save(_ context.Context, product *model.Product) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = *product

	stored := *product
	return &stored, nil
}

// DeleteByID removes the product with the given ID.
func (r *ProductRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// ExistsByID reports whether a product with the given ID is stored.
func (r *ProductRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[id]
	return ok, nil
}
