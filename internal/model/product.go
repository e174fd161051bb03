package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product entity with its properties and metadata.
type Product struct {
	ID        uuid.UUID
	Name      string
	Value     float64
	UpdatedAt time.Time
	CreatedAt time.Time
}

// InitMeta initializes the product metadata including ID and timestamps.
func (p *Product) InitMeta() {
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// Touch bumps the update timestamp.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now()
}

// ProductInput is the payload accepted when creating or updating a product.
// Value is a pointer so that an absent value can be told apart from zero.
type ProductInput struct {
	Name  string   `json:"name" validate:"required,notblank"`
	Value *float64 `json:"value" validate:"required"`
}

// ApplyTo copies the mutable fields of the input onto the product.
// ID and CreatedAt are never touched.
func (in ProductInput) ApplyTo(p *Product) {
	p.Name = in.Name
	if in.Value != nil {
		p.Value = *in.Value
	}
}

// NewProduct builds a product that has not been persisted yet.
func (in ProductInput) NewProduct() *Product {
	p := &Product{}
	in.ApplyTo(p)
	return p
}
