package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"menu_weeks", "list_snapshots", "recipe_catalog"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`,
		"idx_recipe_catalog_category").Scan(&name)
	require.NoError(t, err)
}

func TestOpenDB_MemoryJournal(t *testing.T) {
	// WAL only applies to file databases; in-memory reports "memory".
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestOpenDB_FileCreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/cache.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrate_WeekStartIsPrimaryKey(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO menu_weeks (week_start, menus_json, fetched_at) VALUES ('2025-03-10', '[]', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO menu_weeks (week_start, menus_json, fetched_at) VALUES ('2025-03-10', '[]', 'y')`)
	assert.Error(t, err)
}
