// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/order-api/internal/core"
	"github.com/carterperez-dev/templates/order-api/internal/product"
	"github.com/carterperez-dev/templates/order-api/internal/user"
)

const tracerName = "order-api/order"

// Service is the only path through which orders and their line items are
// created, read or changed. Every mutation runs in one transaction.
type Service struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
	}
}

func (s *Service) CreateOrder(
	ctx context.Context,
	in CreateOrderInput,
) (_ *Order, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.create",
		attribute.Int64("order.user_id", in.UserID),
		attribute.Int("order.items", len(in.Items)),
	)
	defer span.End()
	defer func() {
		if err != nil {
			core.SetSpanError(ctx, err)
		}
	}()

	if err := validateCreate(in); err != nil {
		return nil, err
	}

	order := &Order{
		UserID:    in.UserID,
		Client:    strings.TrimSpace(in.Client),
		Status:    in.Status,
		DateEntry: in.DateEntry.UTC(),
	}
	if order.Status.IsTerminal() {
		processed := s.now().UTC()
		order.DateProcessed = &processed
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		exists, err := user.NewRepository(tx).Exists(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf(
				"user %d does not exist: %w",
				in.UserID,
				core.ErrInvalidReference,
			)
		}

		if err := resolveProducts(ctx, product.NewRepository(tx), in.Items); err != nil {
			return err
		}

		repo := NewRepository(tx)
		if err := repo.Create(ctx, order); err != nil {
			return err
		}

		for _, item := range in.Items {
			line := &LineItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if err := repo.AddLineItem(ctx, line); err != nil {
				return err
			}
		}

		return hydrate(ctx, repo, order)
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("order.id", order.ID))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (_ *Order, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.get",
		attribute.Int64("order.id", id),
	)
	defer span.End()
	defer func() {
		if err != nil {
			core.SetSpanError(ctx, err)
		}
	}()

	var order *Order
	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		order, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		return hydrate(ctx, repo, order)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) (_ []Order, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.list")
	defer span.End()
	defer func() {
		if err != nil {
			core.SetSpanError(ctx, err)
		}
	}()

	var orders []Order
	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		orders, err = repo.List(ctx)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}

		items, err := repo.LineItems(ctx, ids)
		if err != nil {
			return err
		}

		for i := range orders {
			orders[i].LineItems = items[orders[i].ID]
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

// ModifyStatus applies a status transition and persists the new status
// together with its processing time.
func (s *Service) ModifyStatus(
	ctx context.Context,
	id int64,
	next Status,
) (_ *Order, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.modify_status",
		attribute.Int64("order.id", id),
		attribute.String("order.status", string(next)),
	)
	defer span.End()
	defer func() {
		if err != nil {
			core.SetSpanError(ctx, err)
		}
	}()

	var order *Order
	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		order, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := order.ModifyStatus(next, s.now()); err != nil {
			return err
		}

		if err := repo.UpdateStatus(ctx, order); err != nil {
			return err
		}

		return hydrate(ctx, repo, order)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// DeleteOrder removes the order with all of its line items and returns the
// aggregate as it was before deletion. Referenced products are untouched.
func (s *Service) DeleteOrder(ctx context.Context, id int64) (_ *Order, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "order.delete",
		attribute.Int64("order.id", id),
	)
	defer span.End()
	defer func() {
		if err != nil {
			core.SetSpanError(ctx, err)
		}
	}()

	var order *Order
	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		order, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := hydrate(ctx, repo, order); err != nil {
			return err
		}

		return repo.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	core.AddSpanEvent(ctx, "order.deleted",
		attribute.Int("order.items", len(order.LineItems)),
	)
	return order, nil
}

func (s *Service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return NewRepository(s.db).CountByStatus(ctx)
}

func validateCreate(in CreateOrderInput) error {
	if strings.TrimSpace(in.Client) == "" {
		return fmt.Errorf("client is required: %w", core.ErrInvalidInput)
	}

	if _, err := ParseStatus(string(in.Status)); err != nil {
		return err
	}

	if in.DateEntry.IsZero() {
		return fmt.Errorf("dateEntry is required: %w", core.ErrInvalidInput)
	}

	if len(in.Items) == 0 {
		return fmt.Errorf(
			"an order needs at least one product: %w",
			core.ErrInvalidInput,
		)
	}

	for i, item := range in.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf(
				"products[%d].qty must be positive: %w",
				i,
				core.ErrInvalidInput,
			)
		}
	}

	return nil
}

// resolveProducts fails with ErrInvalidReference naming the first requested
// product id that does not exist.
func resolveProducts(
	ctx context.Context,
	products product.Repository,
	items []ItemInput,
) error {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	found, err := products.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return fmt.Errorf(
				"product %d does not exist: %w",
				id,
				core.ErrInvalidReference,
			)
		}
	}

	return nil
}

func hydrate(ctx context.Context, repo Repository, order *Order) error {
	items, err := repo.LineItems(ctx, []int64{order.ID})
	if err != nil {
		return err
	}

	order.LineItems = items[order.ID]
	return nil
}
