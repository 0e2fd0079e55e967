// AngelaMos | 2026
// status_test.go

package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/order-api/internal/core"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("shipped")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestModifyStatusFromPending(t *testing.T) {
	now := time.Date(2024, 7, 16, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	for _, next := range []Status{StatusCanceled, StatusReady, StatusDelivered} {
		o := &Order{ID: 1, Status: StatusPending}

		require.NoError(t, o.ModifyStatus(next, now))
		assert.Equal(t, next, o.Status)
		require.NotNil(t, o.DateProcessed)
		assert.True(t, o.DateProcessed.Equal(now))
		assert.Equal(t, time.UTC, o.DateProcessed.Location())
	}
}

func TestModifyStatusRejectsNonTerminalTarget(t *testing.T) {
	o := &Order{ID: 1, Status: StatusPending}

	for _, next := range []Status{"shipped", StatusPending, ""} {
		err := o.ModifyStatus(next, time.Now())
		assert.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Equal(t, StatusPending, o.Status)
		assert.Nil(t, o.DateProcessed)
	}
}

func TestModifyStatusOutOfTerminalConflicts(t *testing.T) {
	processed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o := &Order{ID: 9, Status: StatusDelivered, DateProcessed: &processed}

	err := o.ModifyStatus(StatusCanceled, time.Now())
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.Equal(t, StatusDelivered, o.Status)
	assert.True(t, o.DateProcessed.Equal(processed))
}
