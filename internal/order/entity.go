// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/carterperez-dev/templates/order-api/internal/product"
)

// Order is the aggregate root. LineItems are owned by the order and are
// removed with it.
type Order struct {
	ID            int64      `db:"id"`
	UserID        int64      `db:"user_id"`
	Client        string     `db:"client"`
	Status        Status     `db:"status"`
	DateEntry     time.Time  `db:"date_entry"`
	DateProcessed *time.Time `db:"date_processed"`
	LineItems     []LineItem `db:"-"`
}

// LineItem references a product it does not own. Product is hydrated from
// the current products row on every read.
type LineItem struct {
	ID        int64           `db:"id"`
	OrderID   int64           `db:"order_id"`
	ProductID int64           `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Product   product.Product `db:"product"`
}

type CreateOrderInput struct {
	UserID    int64
	Client    string
	Status    Status
	DateEntry time.Time
	Items     []ItemInput
}

type ItemInput struct {
	ProductID int64
	Quantity  int
}
