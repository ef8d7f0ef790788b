package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

// ErrNotFound is returned when nothing has been cached for a key yet.
var ErrNotFound = errors.New("not found")

// MenuWeek is the cached menu set of one week.
type MenuWeek struct {
	WeekStart string
	Menus     []domain.Menu
	FetchedAt time.Time
}

// ListSnapshot is the cached list collection for a scope ("all" or a
// YYYY-MM-DD week start).
type ListSnapshot struct {
	Scope     string
	Lists     []domain.List
	FetchedAt time.Time
}

type MenuWeekRepo interface {
	Save(ctx context.Context, w *MenuWeek) error
	Get(ctx context.Context, weekStart string) (*MenuWeek, error)
	Delete(ctx context.Context, weekStart string) error
}

type ListSnapshotRepo interface {
	Save(ctx context.Context, s *ListSnapshot) error
	Get(ctx context.Context, scope string) (*ListSnapshot, error)
}

type RecipeCatalogRepo interface {
	Replace(ctx context.Context, recipes []domain.Recipe) error
	List(ctx context.Context, category string) ([]domain.Recipe, error)
	Get(ctx context.Context, id int64) (*domain.Recipe, error)
	Categories(ctx context.Context) ([]string, error)
}
