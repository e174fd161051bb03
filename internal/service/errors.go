package service

import (
	"errors"
	"strings"

	"github.com/iyhunko/products-api/internal/repository"
	"github.com/iyhunko/products-api/internal/validation"
)

// ErrNotFound is returned when the referenced product doesn't exist.
var ErrNotFound = repository.ErrNotFound

// ValidationError is returned when a product input is rejected. Nothing is persisted.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StoreError wraps a failure of the underlying product store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// storeErr passes not-found errors through and wraps everything else.
func storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
