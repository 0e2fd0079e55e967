// AngelaMos | 2026
// service_test.go

package order

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/order-api/internal/core"
	"github.com/carterperez-dev/templates/order-api/internal/core/coretest"
	"github.com/carterperez-dev/templates/order-api/internal/product"
	"github.com/carterperez-dev/templates/order-api/internal/user"
)

type fixture struct {
	db       *sqlx.DB
	svc      *Service
	userID   int64
	products []*product.Product
}

func newFixture(t *testing.T, productCount int) *fixture {
	t.Helper()
	ctx := context.Background()
	db := coretest.NewDB(t)

	u := &user.User{
		Email:        "waiter@example.com",
		PasswordHash: "x",
		Role:         user.RoleRegular,
	}
	require.NoError(t, user.NewRepository(db).Create(ctx, u))

	products := make([]*product.Product, 0, productCount)
	repo := product.NewRepository(db)
	for i := range productCount {
		p := &product.Product{
			Name:  "Item " + string(rune('A'+i)),
			Price: int64(100 * (i + 1)),
			Image: "https://img.example.com/item.png",
			Type:  "lunch",
		}
		require.NoError(t, repo.Create(ctx, p))
		products = append(products, p)
	}

	return &fixture{
		db:       db,
		svc:      NewService(db),
		userID:   u.ID,
		products: products,
	}
}

func (f *fixture) input(items ...ItemInput) CreateOrderInput {
	return CreateOrderInput{
		UserID:    f.userID,
		Client:    "Alice",
		Status:    StatusPending,
		DateEntry: time.Date(2024, 7, 16, 12, 0, 0, 0, time.UTC),
		Items:     items,
	}
}

func count(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.GetContext(context.Background(), &n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestCreateOrderHydratesLineItems(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	created, err := f.svc.CreateOrder(ctx, f.input(
		ItemInput{ProductID: f.products[0].ID, Quantity: 2},
		ItemInput{ProductID: f.products[2].ID, Quantity: 1},
		ItemInput{ProductID: f.products[0].ID, Quantity: 5},
	))
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Nil(t, created.DateProcessed)

	got, err := f.svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.LineItems, 3)

	assert.Equal(t, 2, got.LineItems[0].Quantity)
	assert.Equal(t, f.products[0].Name, got.LineItems[0].Product.Name)
	assert.Equal(t, f.products[2].Price, got.LineItems[1].Product.Price)
	assert.Equal(t, 5, got.LineItems[2].Quantity)
	assert.Equal(t, "Alice", got.Client)
	assert.True(t, got.DateEntry.Equal(time.Date(2024, 7, 16, 12, 0, 0, 0, time.UTC)))
}

func TestCreateOrderUnknownProductPersistsNothing(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, f.input(
		ItemInput{ProductID: f.products[0].ID, Quantity: 1},
		ItemInput{ProductID: 999, Quantity: 3},
	))
	require.ErrorIs(t, err, core.ErrInvalidReference)
	assert.Contains(t, err.Error(), "999")

	orders, err := f.svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Zero(t, count(t, f.db, "order_products"))
}

func TestCreateOrderUnknownUser(t *testing.T) {
	f := newFixture(t, 1)

	in := f.input(ItemInput{ProductID: f.products[0].ID, Quantity: 1})
	in.UserID = 4242

	_, err := f.svc.CreateOrder(context.Background(), in)
	require.ErrorIs(t, err, core.ErrInvalidReference)
	assert.Contains(t, err.Error(), "4242")
	assert.Zero(t, count(t, f.db, "orders"))
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	item := ItemInput{ProductID: f.products[0].ID, Quantity: 1}

	_, err := f.svc.CreateOrder(ctx, f.input())
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = f.svc.CreateOrder(ctx, f.input(ItemInput{ProductID: f.products[0].ID, Quantity: 0}))
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	in := f.input(item)
	in.Status = "shipped"
	_, err = f.svc.CreateOrder(ctx, in)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	in = f.input(item)
	in.Client = "  "
	_, err = f.svc.CreateOrder(ctx, in)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	assert.Zero(t, count(t, f.db, "orders"))
}

func TestCreateOrderTerminalStatusStampsProcessed(t *testing.T) {
	f := newFixture(t, 1)

	in := f.input(ItemInput{ProductID: f.products[0].ID, Quantity: 1})
	in.Status = StatusDelivered

	created, err := f.svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	assert.NotNil(t, created.DateProcessed)
}

func TestReadsReflectCurrentProduct(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	created, err := f.svc.CreateOrder(ctx, f.input(
		ItemInput{ProductID: f.products[0].ID, Quantity: 2},
	))
	require.NoError(t, err)

	p := f.products[0]
	p.Price = 9999
	p.Name = "Renamed"
	require.NoError(t, product.NewRepository(f.db).Update(ctx, p))

	got, err := f.svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, int64(9999), got.LineItems[0].Product.Price)
	assert.Equal(t, "Renamed", got.LineItems[0].Product.Name)
}

func TestModifyStatusPersists(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	created, err := f.svc.CreateOrder(ctx, f.input(
		ItemInput{ProductID: f.products[0].ID, Quantity: 1},
	))
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	updated, err := f.svc.ModifyStatus(ctx, created.ID, StatusReady)
	require.NoError(t, err)
	require.NotNil(t, updated.DateProcessed)
	assert.Equal(t, StatusReady, updated.Status)
	assert.False(t, updated.DateProcessed.Before(created.DateEntry))
	assert.False(t, updated.DateProcessed.Before(before))
	assert.Len(t, updated.LineItems, 1)

	stored, err := f.svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, stored.Status)
	require.NotNil(t, stored.DateProcessed)
	assert.WithinDuration(t, *updated.DateProcessed, *stored.DateProcessed, time.Millisecond)

	_, err = f.svc.ModifyStatus(ctx, created.ID, StatusCanceled)
	assert.ErrorIs(t, err, core.ErrConflict)

	_, err = f.svc.ModifyStatus(ctx, 31337, StatusReady)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestModifyStatusInvalidLeavesOrderUnchanged(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	created, err := f.svc.CreateOrder(ctx, f.input(
		ItemInput{ProductID: f.products[0].ID, Quantity: 1},
	))
	require.NoError(t, err)

	_, err = f.svc.ModifyStatus(ctx, created.ID, "shipped")
	require.ErrorIs(t, err, core.ErrInvalidInput)

	stored, err := f.svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Nil(t, stored.DateProcessed)
}

func TestDeleteOrderRemovesLineItemsKeepsProducts(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	created, err := f.svc.CreateOrder(ctx, f.input(
		ItemInput{ProductID: f.products[0].ID, Quantity: 1},
		ItemInput{ProductID: f.products[1].ID, Quantity: 4},
	))
	require.NoError(t, err)

	deleted, err := f.svc.DeleteOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, deleted.LineItems, 2)

	repo := NewRepository(f.db)
	for _, item := range deleted.LineItems {
		_, err := repo.GetLineItem(ctx, item.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
	}

	_, err = f.svc.GetOrder(ctx, created.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.Equal(t, 2, count(t, f.db, "products"))

	_, err = f.svc.DeleteOrder(ctx, created.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListOrdersAndCounts(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	item := ItemInput{ProductID: f.products[0].ID, Quantity: 1}

	first, err := f.svc.CreateOrder(ctx, f.input(item))
	require.NoError(t, err)
	second, err := f.svc.CreateOrder(ctx, f.input(item, item))
	require.NoError(t, err)
	_, err = f.svc.ModifyStatus(ctx, second.ID, StatusCanceled)
	require.NoError(t, err)

	orders, err := f.svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Len(t, orders[0].LineItems, 1)
	assert.Len(t, orders[1].LineItems, 2)

	counts, err := f.svc.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[StatusPending])
	assert.Equal(t, 1, counts[StatusCanceled])
	assert.Equal(t, 0, counts[StatusDelivered])
}
