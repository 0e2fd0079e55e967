// AngelaMos | 2026
// migrate.go

package core

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationFS embed.FS

type Migration struct {
	Version *semver.Version
	Name    string
	SQL     string
}

const createSchemaVersion = `
CREATE TABLE IF NOT EXISTS schema_version (
    version VARCHAR(32) PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
)`

func dialect(db *sqlx.DB) string {
	if db.DriverName() == "pgx" || db.DriverName() == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// LoadMigrations returns the embedded migrations for the db's dialect,
// ordered by semantic version. Files are named <version>.sql.
func LoadMigrations(dialectName string) ([]Migration, error) {
	dir := path.Join("migrations", dialectName)

	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations %s: %w", dir, err)
	}

	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		raw := strings.TrimSuffix(entry.Name(), ".sql")
		version, err := semver.NewVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("migration %s: invalid version: %w", entry.Name(), err)
		}

		body, err := fs.ReadFile(migrationFS, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    entry.Name(),
			SQL:     string(body),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version.LessThan(migrations[j].Version)
	})

	return migrations, nil
}

// Migrate applies every embedded migration newer than the recorded schema
// version. Each migration and its version row commit together.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, createSchemaVersion); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	migrations, err := LoadMigrations(dialect(db))
	if err != nil {
		return err
	}

	current, err := CurrentSchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if current != nil && !current.LessThan(m.Version) {
			continue
		}

		err := InTx(ctx, db, func(tx *sqlx.Tx) error {
			for _, stmt := range splitStatements(m.SQL) {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("apply migration %s: %w", m.Name, err)
				}
			}

			_, err := tx.ExecContext(ctx,
				tx.Rebind(`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`),
				m.Version.String(),
				time.Now().UTC(),
			)
			if err != nil {
				return fmt.Errorf("record migration %s: %w", m.Name, err)
			}

			return nil
		})
		if err != nil {
			return err
		}

		current = m.Version
	}

	return nil
}

// CurrentSchemaVersion returns the highest applied version, or nil when no
// migration has run yet.
func CurrentSchemaVersion(ctx context.Context, db DBTX) (*semver.Version, error) {
	var applied []string
	if err := db.SelectContext(ctx, &applied, `SELECT version FROM schema_version`); err != nil {
		return nil, fmt.Errorf("read schema_version: %w", err)
	}

	var current *semver.Version
	for _, raw := range applied {
		v, err := semver.NewVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid schema version %q: %w", raw, err)
		}
		if current == nil || current.LessThan(v) {
			current = v
		}
	}

	return current, nil
}

func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	stmts := make([]string, 0, len(parts))

	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}

	return stmts
}
