// AngelaMos | 2026
// status.go

package order

import (
	"fmt"
	"time"

	"github.com/carterperez-dev/templates/order-api/internal/core"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCanceled  Status = "canceled"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
)

// Statuses lists every status in a stable order.
var Statuses = []Status{
	StatusPending,
	StatusCanceled,
	StatusReady,
	StatusDelivered,
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusCanceled, StatusReady, StatusDelivered:
		return st, nil
	}

	return "", fmt.Errorf("unknown status %q: %w", s, core.ErrInvalidInput)
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCanceled || s == StatusReady || s == StatusDelivered
}

// ModifyStatus moves a pending order to a terminal status and stamps
// DateProcessed with now. The order is left untouched on error.
func (o *Order) ModifyStatus(next Status, now time.Time) error {
	if !next.IsTerminal() {
		return fmt.Errorf(
			"status must be one of canceled, ready, delivered, got %q: %w",
			next,
			core.ErrInvalidInput,
		)
	}

	if o.Status.IsTerminal() {
		return fmt.Errorf(
			"order %d is already %s: %w",
			o.ID,
			o.Status,
			core.ErrConflict,
		)
	}

	processed := now.UTC()
	o.Status = next
	o.DateProcessed = &processed

	return nil
}
