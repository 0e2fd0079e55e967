// AngelaMos | 2026
// entity.go

package product

import (
	"time"
)

// Product prices are stored in the smallest currency unit.
type Product struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Price     int64      `db:"price"`
	Image     string     `db:"image"`
	Type      string     `db:"type"`
	DateEntry *time.Time `db:"date_entry"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}
