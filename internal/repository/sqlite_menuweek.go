package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gabelguru/internal/db"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// SQLiteMenuWeekRepo implements MenuWeekRepo using a SQLite database.
type SQLiteMenuWeekRepo struct {
	db db.DBTX
}

func NewSQLiteMenuWeekRepo(conn db.DBTX) *SQLiteMenuWeekRepo {
	return &SQLiteMenuWeekRepo{db: conn}
}

func (r *SQLiteMenuWeekRepo) Save(ctx context.Context, w *MenuWeek) error {
	menus := w.Menus
	if menus == nil {
		menus = []domain.Menu{}
	}
	payload, err := encodePayload("menu week", menus)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO menu_weeks (week_start, menus_json, fetched_at) VALUES (?, ?, ?)`,
		w.WeekStart, payload, formatFetchedAt(w.FetchedAt))
	if err != nil {
		return fmt.Errorf("saving menu week %s: %w", w.WeekStart, err)
	}
	return nil
}

func (r *SQLiteMenuWeekRepo) Get(ctx context.Context, weekStart string) (*MenuWeek, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT menus_json, fetched_at FROM menu_weeks WHERE week_start = ?`, weekStart)

	var payload, fetchedAt string
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("menu week %s: %w", weekStart, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning menu week: %w", err)
	}

	w := &MenuWeek{WeekStart: weekStart, FetchedAt: parseFetchedAt(fetchedAt)}
	if err := decodePayload("menu week", payload, &w.Menus); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *SQLiteMenuWeekRepo) Delete(ctx context.Context, weekStart string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM menu_weeks WHERE week_start = ?`, weekStart); err != nil {
		return fmt.Errorf("deleting menu week %s: %w", weekStart, err)
	}
	return nil
}
