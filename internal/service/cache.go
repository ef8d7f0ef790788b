package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/alexanderramin/gabelguru/internal/db"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/repository"
)

// Cache is the offline snapshot store. A nil *Cache disables caching: writes
// are dropped and reads miss.
type Cache struct {
	uow     db.UnitOfWork
	weeks   repository.MenuWeekRepo
	lists   repository.ListSnapshotRepo
	recipes repository.RecipeCatalogRepo
}

// NewCache wires the snapshot repositories over conn.
func NewCache(conn *sql.DB) *Cache {
	return NewCacheWithUoW(conn, db.NewSQLiteUnitOfWork(conn))
}

// NewCacheWithUoW is NewCache with an explicit unit of work.
func NewCacheWithUoW(conn *sql.DB, uow db.UnitOfWork) *Cache {
	return &Cache{
		uow:     uow,
		weeks:   repository.NewSQLiteMenuWeekRepo(conn),
		lists:   repository.NewSQLiteListSnapshotRepo(conn),
		recipes: repository.NewSQLiteRecipeCatalogRepo(conn),
	}
}

// saveWeek stores a week's menus together with the full list collection.
func (c *Cache) saveWeek(ctx context.Context, weekStart string, menus []domain.Menu, lists []domain.List, at time.Time) error {
	if c == nil {
		return nil
	}
	return c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteMenuWeekRepo(tx).Save(ctx, &repository.MenuWeek{
			WeekStart: weekStart,
			Menus:     menus,
			FetchedAt: at,
		}); err != nil {
			return err
		}
		return repository.NewSQLiteListSnapshotRepo(tx).Save(ctx, &repository.ListSnapshot{
			Scope:     repository.ScopeAllLists,
			Lists:     lists,
			FetchedAt: at,
		})
	})
}

func (c *Cache) saveLists(ctx context.Context, lists []domain.List, at time.Time) error {
	if c == nil {
		return nil
	}
	return c.lists.Save(ctx, &repository.ListSnapshot{Scope: repository.ScopeAllLists, Lists: lists, FetchedAt: at})
}

func (c *Cache) week(ctx context.Context, weekStart string) (*repository.MenuWeek, error) {
	if c == nil {
		return nil, repository.ErrNotFound
	}
	return c.weeks.Get(ctx, weekStart)
}

func (c *Cache) allLists(ctx context.Context) (*repository.ListSnapshot, error) {
	if c == nil {
		return nil, repository.ErrNotFound
	}
	return c.lists.Get(ctx, repository.ScopeAllLists)
}

func (c *Cache) saveCatalog(ctx context.Context, recipes []domain.Recipe) error {
	if c == nil {
		return nil
	}
	return c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRecipeCatalogRepo(tx).Replace(ctx, recipes)
	})
}

func (c *Cache) catalog(ctx context.Context) ([]domain.Recipe, error) {
	if c == nil {
		return nil, repository.ErrNotFound
	}
	recipes, err := c.recipes.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, repository.ErrNotFound
	}
	return recipes, nil
}

func (c *Cache) recipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	if c == nil {
		return nil, repository.ErrNotFound
	}
	return c.recipes.Get(ctx, id)
}
