package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/iyhunko/products-api/internal/model"
	"github.com/iyhunko/products-api/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pqUniqueViolationErrCode = "23505" // PostgreSQL unique violation error code. See https://www.postgresql.org/docs/14/errcodes-appendix.html

	productsTable = "products"
)

var (
	productColumns = []string{"id", "name", "value", "created_at", "updated_at"}

	psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
)

// ProductRepository implements repository.ProductRepository on top of PostgreSQL.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	// Only initialize metadata if not already set
	if product.ID == uuid.Nil {
		product.InitMeta()
	}

	query, args, err := psql.Insert(productsTable).
		Columns(productColumns...).
		Values(product.ID, product.Name, product.Value, product.CreatedAt, product.UpdatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert statement: %w", err)
	}

	if err := r.exec(ctx, query, args...); err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == pqUniqueViolationErrCode {
			return nil, &repository.UniqueConstraintError{Detail: pgError.Detail}
		}
		slog.Error("error creating product", slog.Any("err", err))
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}

// List retrieves every product, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]*model.Product, error) {
	query, args, err := psql.Select(productColumns...).
		From(productsTable).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select statement: %w", err)
	}

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]*model.Product, 0)
	for rows.Next() {
		var product model.Product
		err := rows.Scan(&product.ID, &product.Name, &product.Value, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// FindByID retrieves a single product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query, args, err := psql.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select statement: %w", err)
	}

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.Product
	err = stmt.QueryRowContext(ctx, args...).Scan(
		&result.ID, &result.Name, &result.Value, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &result, nil
}

// Save inserts the product or overwrites its mutable columns when the ID already exists.
func (r *ProductRepository) Save(ctx context.Context, product *model.Product) (*model.Product, error) {
	query, args, err := psql.Insert(productsTable).
		Columns(productColumns...).
		Values(product.ID, product.Name, product.Value, product.CreatedAt, product.UpdatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert statement: %w", err)
	}

	if err := r.exec(ctx, query, args...); err != nil {
		slog.Error("error saving product", slog.Any("err", err), slog.String("product_id", product.ID.String()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return product, nil
}

// DeleteByID deletes a product by ID.
func (r *ProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(productsTable).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete statement: %w", err)
	}

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}

	return nil
}

// ExistsByID reports whether a product with the given ID is stored.
func (r *ProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := psql.Select("COUNT(*)").
		From(productsTable).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build count statement: %w", err)
	}

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare count statement: %w", err)
	}
	defer stmt.Close()

	var count int
	if err := stmt.QueryRowContext(ctx, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}

	return count > 0, nil
}

func (r *ProductRepository) exec(ctx context.Context, query string, args ...any) error {
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, args...)
	return err
}
