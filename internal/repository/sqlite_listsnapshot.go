package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gabelguru/internal/db"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// ScopeAllLists is the snapshot scope holding the user's full list set.
const ScopeAllLists = "all"

// SQLiteListSnapshotRepo implements ListSnapshotRepo using a SQLite database.
type SQLiteListSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteListSnapshotRepo(conn db.DBTX) *SQLiteListSnapshotRepo {
	return &SQLiteListSnapshotRepo{db: conn}
}

func (r *SQLiteListSnapshotRepo) Save(ctx context.Context, s *ListSnapshot) error {
	lists := s.Lists
	if lists == nil {
		lists = []domain.List{}
	}
	payload, err := encodePayload("list snapshot", lists)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO list_snapshots (scope, lists_json, fetched_at) VALUES (?, ?, ?)`,
		s.Scope, payload, formatFetchedAt(s.FetchedAt))
	if err != nil {
		return fmt.Errorf("saving list snapshot %s: %w", s.Scope, err)
	}
	return nil
}

func (r *SQLiteListSnapshotRepo) Get(ctx context.Context, scope string) (*ListSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT lists_json, fetched_at FROM list_snapshots WHERE scope = ?`, scope)

	var payload, fetchedAt string
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("list snapshot %s: %w", scope, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning list snapshot: %w", err)
	}

	s := &ListSnapshot{Scope: scope, FetchedAt: parseFetchedAt(fetchedAt)}
	if err := decodePayload("list snapshot", payload, &s.Lists); err != nil {
		return nil, err
	}
	return s, nil
}
