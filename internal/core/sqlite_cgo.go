//go:build sqlite_cgo

// AngelaMos | 2026
// sqlite_cgo.go

package core

// cgo build backed by the C SQLite amalgamation.
//
//	CGO_ENABLED=1 go build -tags sqlite_cgo ./...

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// SQLiteDriverName is the database/sql driver used for embedded databases.
	SQLiteDriverName = "sqlite3"

	SQLiteBuildMode = "cgo"
)
