// AngelaMos | 2026
// coretest.go

// Package coretest provides a migrated in-memory database for tests.
package coretest

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/order-api/internal/core"
)

// NewDB opens an in-memory SQLite database with the production schema.
// It is closed when the test ends.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()

	db, err := core.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, core.Migrate(ctx, db))

	return db
}
