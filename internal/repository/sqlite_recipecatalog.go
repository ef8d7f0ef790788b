package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gabelguru/internal/db"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// SQLiteRecipeCatalogRepo implements RecipeCatalogRepo using a SQLite
// database. Each recipe is stored whole as JSON; title and category are
// duplicated into columns for ordering and filtering.
type SQLiteRecipeCatalogRepo struct {
	db db.DBTX
}

func NewSQLiteRecipeCatalogRepo(conn db.DBTX) *SQLiteRecipeCatalogRepo {
	return &SQLiteRecipeCatalogRepo{db: conn}
}

// Replace swaps the cached catalog for recipes. Call it inside a unit of work
// so readers never observe an empty catalog.
func (r *SQLiteRecipeCatalogRepo) Replace(ctx context.Context, recipes []domain.Recipe) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipe_catalog`); err != nil {
		return fmt.Errorf("clearing recipe catalog: %w", err)
	}
	fetchedAt := formatFetchedAt(time.Now())
	for _, rec := range recipes {
		payload, err := encodePayload("recipe", rec)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO recipe_catalog (id, title, category, payload, fetched_at) VALUES (?, ?, ?, ?, ?)`,
			rec.ID, rec.Title, rec.Category, payload, fetchedAt)
		if err != nil {
			return fmt.Errorf("caching recipe %d: %w", rec.ID, err)
		}
	}
	return nil
}

// List returns cached recipes ordered by title. An empty category returns all.
func (r *SQLiteRecipeCatalogRepo) List(ctx context.Context, category string) ([]domain.Recipe, error) {
	query := `SELECT payload FROM recipe_catalog`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY title COLLATE NOCASE, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recipe catalog: %w", err)
	}
	defer rows.Close()

	var out []domain.Recipe
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		var rec domain.Recipe
		if err := decodePayload("recipe", payload, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecipeCatalogRepo) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM recipe_catalog WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}
	var rec domain.Recipe
	if err := decodePayload("recipe", payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Categories returns the distinct non-empty categories in sort order.
func (r *SQLiteRecipeCatalogRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM recipe_catalog WHERE category != '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
