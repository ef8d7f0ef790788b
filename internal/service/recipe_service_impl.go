package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

type recipeService struct {
	backend  Backend
	cache    *Cache
	observer UseCaseObserver
}

func NewRecipeService(backend Backend, cache *Cache, observers ...UseCaseObserver) RecipeService {
	return &recipeService{backend: backend, cache: cache, observer: useCaseObserverOrNoop(observers)}
}

// Catalog returns every recipe, falling back to the cached catalog when the
// backend is unreachable.
func (s *recipeService) Catalog(ctx context.Context) (data *CatalogData, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "load-catalog", time.Now(), fields, &err)

	recipes, fetchErr := s.backend.Recipes(ctx)
	if fetchErr != nil {
		fields["fetch_error"] = fetchErr.Error()
		cached, cacheErr := s.cache.catalog(ctx)
		if cacheErr != nil {
			return nil, fmt.Errorf("loading recipes: %w", fetchErr)
		}
		fields["offline"] = true
		return &CatalogData{Recipes: cached, Offline: true}, nil
	}
	if cacheErr := s.cache.saveCatalog(ctx, recipes); cacheErr != nil {
		fields["cache_error"] = cacheErr.Error()
	}
	fields["recipes"] = len(recipes)
	return &CatalogData{Recipes: recipes}, nil
}

func (s *recipeService) Get(ctx context.Context, id int64) (*domain.Recipe, error) {
	rec, err := s.backend.Recipe(ctx, id)
	if err == nil {
		return rec, nil
	}
	if cached, cacheErr := s.cache.recipe(ctx, id); cacheErr == nil {
		return cached, nil
	}
	return nil, fmt.Errorf("loading recipe %d: %w", id, err)
}
