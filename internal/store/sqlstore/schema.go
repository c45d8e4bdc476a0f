package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemas = map[string]string{
	DriverPostgres: `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		rating DOUBLE PRECISION NOT NULL CHECK (rating >= 1 AND rating <= 5)
	);`,

	DriverSQLite: `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		rating REAL NOT NULL CHECK (rating >= 1 AND rating <= 5)
	);`,
}

// ensureSchema creates the bookmarks table when it does not exist yet.
// Existing tables are left untouched.
func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	ddl, ok := schemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create bookmarks table: %w", err)
	}
	return nil
}
