package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iyhunko/products-api/internal/model"
)

var (
	// ErrNotFound is returned when no product matches the given identifier.
	ErrNotFound = errors.New("product not found")
)

// ProductRepository defines the store collaborator used by the product service.
// Listing order is implementation-defined.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Save(ctx context.Context, product *model.Product) (*model.Product, error) // upsert by ID
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// UniqueConstraintError represents a database unique constraint violation error.
type UniqueConstraintError struct {
	Detail string
}

func (u *UniqueConstraintError) Error() string {
	return "resource must be unique: " + u.Detail
}
