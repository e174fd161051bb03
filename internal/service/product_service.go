package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/iyhunko/products-api/internal/metrics"
	"github.com/iyhunko/products-api/internal/model"
	"github.com/iyhunko/products-api/internal/repository"
	"github.com/iyhunko/products-api/internal/sqs"
	"github.com/iyhunko/products-api/internal/validation"
)

// EventPublisher publishes product change notifications.
type EventPublisher interface {
	PublishProductMessage(ctx context.Context, msg sqs.ProductMessage) error
}

// ProductService implements the product use cases on top of a product store.
type ProductService struct {
	repo      repository.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a ProductService. publisher may be nil, in which case no events are sent.
func NewProductService(repo repository.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateProduct validates the input and stores a new product with a fresh identifier.
func (ps *ProductService) CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	created, err := ps.repo.Create(ctx, input.NewProduct())
	if err != nil {
		return nil, storeErr("create", err)
	}

	metrics.ProductsCreated.Inc()
	ps.publish(ctx, sqs.ActionCreated, created)

	return created, nil
}

// ListProducts returns every stored product.
func (ps *ProductService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	products, err := ps.repo.List(ctx)
	if err != nil {
		return nil, storeErr("list", err)
	}
	return products, nil
}

// GetProduct returns the product with the given ID or ErrNotFound.
func (ps *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find", err)
	}
	return product, nil
}

// UpdateProduct overwrites the mutable fields of an existing product.
// The lookup happens before validation, so an unknown ID yields ErrNotFound even for invalid input.
func (ps *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input model.ProductInput) (*model.Product, error) {
	product, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find", err)
	}

	if err := validate(input); err != nil {
		return nil, err
	}

	input.ApplyTo(product)
	product.Touch()

	updated, err := ps.repo.Save(ctx, product)
	if err != nil {
		return nil, storeErr("save", err)
	}

	metrics.ProductsUpdated.Inc()
	ps.publish(ctx, sqs.ActionUpdated, updated)

	return updated, nil
}

// DeleteProduct removes the product with the given ID.
func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	exists, err := ps.repo.ExistsByID(ctx, id)
	if err != nil {
		return storeErr("exists", err)
	}
	if !exists {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	if err := ps.repo.DeleteByID(ctx, id); err != nil {
		return storeErr("delete", err)
	}

	metrics.ProductsDeleted.Inc()
	ps.publish(ctx, sqs.ActionDeleted, &model.Product{ID: id})

	return nil
}

func validate(input model.ProductInput) error {
	if fields := validation.Struct(input); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (ps *ProductService) publish(ctx context.Context, action string, product *model.Product) {
	if ps.publisher == nil {
		return
	}

	msg := sqs.ProductMessage{
		Action:    action,
		ProductID: product.ID.String(),
		Name:      product.Name,
		Value:     product.Value,
	}
	if err := ps.publisher.PublishProductMessage(ctx, msg); err != nil {
		// Log error but don't fail the request
		slog.Error("Failed to send SQS message", slog.Any("err", err), slog.String("action", action), slog.String("product_id", msg.ProductID))
	}
}
