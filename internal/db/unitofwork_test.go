package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/gabelguru/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUnitOfWork(t *testing.T) (*db.SQLiteUnitOfWork, *sql.DB) {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return db.NewSQLiteUnitOfWork(conn), conn
}

func weekCached(t *testing.T, conn *sql.DB, week string) bool {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM menu_weeks WHERE week_start = ?`, week).Scan(&n))
	return n > 0
}

func insertWeek(ctx context.Context, tx db.DBTX, week string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO menu_weeks (week_start, menus_json, fetched_at) VALUES (?, '[]', '2025-03-10T08:00:00Z')`, week)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, conn := openUnitOfWork(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertWeek(ctx, tx, "2025-03-10")
	})
	require.NoError(t, err)
	assert.True(t, weekCached(t, conn, "2025-03-10"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, conn := openUnitOfWork(t)
	boom := errors.New("list snapshot failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertWeek(ctx, tx, "2025-03-17"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, weekCached(t, conn, "2025-03-17"), "week should not be cached after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, conn := openUnitOfWork(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertWeek(ctx, tx, "2025-03-24")
			panic("boom")
		})
	})
	assert.False(t, weekCached(t, conn, "2025-03-24"))
}
