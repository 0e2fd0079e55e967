// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/order-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, price, image, type, date_entry, created_at, updated_at`

func (r *repository) Create(ctx context.Context, product *Product) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		INSERT INTO products (name, price, image, type, date_entry, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.GetContext(ctx, &product.ID, query,
		product.Name,
		product.Price,
		product.Image,
		product.Type,
		product.DateEntry,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	product.CreatedAt = now
	product.UpdatedAt = now

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)

	var product Product
	err := r.db.GetContext(ctx, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &product, nil
}

// GetByIDs returns the products that exist among ids, keyed by id. Missing
// ids are simply absent from the map.
func (r *repository) GetByIDs(
	ctx context.Context,
	ids []int64,
) (map[int64]*Product, error) {
	found := make(map[int64]*Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+productColumns+` FROM products WHERE id IN (?)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}

	var products []Product
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}

	for i := range products {
		found[products[i].ID] = &products[i]
	}

	return found, nil
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (r *repository) Update(ctx context.Context, product *Product) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE products
		SET name = ?, price = ?, image = ?, type = ?, date_entry = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		product.Name,
		product.Price,
		product.Image,
		product.Type,
		product.DateEntry,
		now,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if err := requireAffected(result, "update product", product.ID); err != nil {
		return err
	}

	product.UpdatedAt = now
	return nil
}

// Delete fails with ErrConflict while any order line still references the
// product.
func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM products WHERE id = ?`),
		id,
	)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf(
				"product %d is referenced by orders: %w",
				id,
				core.ErrConflict,
			)
		}
		return fmt.Errorf("delete product: %w", err)
	}

	return requireAffected(result, "delete product", id)
}

func requireAffected(result sql.Result, op string, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: product %d: %w", op, id, core.ErrNotFound)
	}

	return nil
}
