package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS menu_weeks (
		week_start TEXT PRIMARY KEY,
		menus_json TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS list_snapshots (
		scope      TEXT PRIMARY KEY,
		lists_json TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_catalog (
		id         INTEGER PRIMARY KEY,
		title      TEXT NOT NULL,
		category   TEXT NOT NULL DEFAULT '',
		payload    TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_recipe_catalog_category ON recipe_catalog(category)`,
}
