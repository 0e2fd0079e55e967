//go:build !sqlite_cgo

// AngelaMos | 2026
// sqlite_purego.go

package core

// Default build: pure Go SQLite, no C toolchain needed.
//
//	CGO_ENABLED=0 go build ./...

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	// SQLiteDriverName is the database/sql driver used for embedded databases.
	SQLiteDriverName = "sqlite"

	SQLiteBuildMode = "purego"
)

func init() {
	sqlx.BindDriver(SQLiteDriverName, sqlx.QUESTION)
}
