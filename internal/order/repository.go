// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/order-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	AddLineItem(ctx context.Context, item *LineItem) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	LineItems(ctx context.Context, orderIDs []int64) (map[int64][]LineItem, error)
	GetLineItem(ctx context.Context, id int64) (*LineItem, error)
	UpdateStatus(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, client, status, date_entry, date_processed`

const lineItemSelect = `
	SELECT op.id, op.order_id, op.product_id, op.quantity,
	       p.id AS "product.id",
	       p.name AS "product.name",
	       p.price AS "product.price",
	       p.image AS "product.image",
	       p.type AS "product.type",
	       p.date_entry AS "product.date_entry",
	       p.created_at AS "product.created_at",
	       p.updated_at AS "product.updated_at"
	FROM order_products op
	JOIN products p ON p.id = op.product_id`

func (r *repository) Create(ctx context.Context, order *Order) error {
	query := r.db.Rebind(`
		INSERT INTO orders (user_id, client, status, date_entry, date_processed)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.GetContext(ctx, &order.ID, query,
		order.UserID,
		order.Client,
		string(order.Status),
		order.DateEntry,
		order.DateProcessed,
	)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf(
				"user %d does not exist: %w",
				order.UserID,
				core.ErrInvalidReference,
			)
		}
		return fmt.Errorf("create order: %w", err)
	}

	return nil
}

func (r *repository) AddLineItem(ctx context.Context, item *LineItem) error {
	query := r.db.Rebind(`
		INSERT INTO order_products (order_id, product_id, quantity)
		VALUES (?, ?, ?)
		RETURNING id`)

	err := r.db.GetContext(ctx, &item.ID, query,
		item.OrderID,
		item.ProductID,
		item.Quantity,
	)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf(
				"product %d does not exist: %w",
				item.ProductID,
				core.ErrInvalidReference,
			)
		}
		return fmt.Errorf("add line item: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query := r.db.Rebind(`SELECT ` + orderColumns + ` FROM orders WHERE id = ?`)

	var order Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &order, nil
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id`

	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

// LineItems loads the line items of every order in orderIDs joined with the
// products they reference, grouped by order and ordered by line item id.
func (r *repository) LineItems(
	ctx context.Context,
	orderIDs []int64,
) (map[int64][]LineItem, error) {
	grouped := make(map[int64][]LineItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(
		lineItemSelect+` WHERE op.order_id IN (?) ORDER BY op.order_id, op.id`,
		orderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("load line items: %w", err)
	}

	var items []LineItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load line items: %w", err)
	}

	for _, item := range items {
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}

	return grouped, nil
}

func (r *repository) GetLineItem(ctx context.Context, id int64) (*LineItem, error) {
	query := r.db.Rebind(lineItemSelect + ` WHERE op.id = ?`)

	var item LineItem
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("line item %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get line item: %w", err)
	}

	return &item, nil
}

func (r *repository) UpdateStatus(ctx context.Context, order *Order) error {
	query := r.db.Rebind(`
		UPDATE orders
		SET status = ?, date_processed = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		string(order.Status),
		order.DateProcessed,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("order %d: %w", order.ID, core.ErrNotFound)
	}

	return nil
}

// Delete removes the order's line items and then the order. Line items are
// deleted explicitly rather than left to ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM order_products WHERE order_id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM orders WHERE id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("order %d: %w", id, core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	var rows []struct {
		Status Status `db:"status"`
		Count  int    `db:"n"`
	}

	query := `SELECT status, COUNT(*) AS n FROM orders GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}

	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
