package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/gabelguru/internal/api"
	"github.com/alexanderramin/gabelguru/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeService_CatalogCachesAndFallsBack(t *testing.T) {
	env := newTestEnv(t)
	env.backend.AddRecipes(
		testutil.NewTestRecipe("Pfannkuchen", testutil.WithCategory("Süß")),
		testutil.NewTestRecipe("Chili", testutil.WithCategory("Scharf")),
	)
	svc := NewRecipeService(env.client, env.cache)
	ctx := context.Background()

	data, err := svc.Catalog(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Recipes, 2)
	assert.False(t, data.Offline)

	env.backend.FailNext("GET /recipes", 1)
	data, err = svc.Catalog(ctx)
	require.NoError(t, err)
	assert.True(t, data.Offline)
	assert.Equal(t, "Chili", data.Recipes[0].Title)
}

func TestRecipeService_CatalogWithoutCacheFails(t *testing.T) {
	env := newTestEnv(t)
	env.backend.FailNext("GET /recipes", 1)
	svc := NewRecipeService(env.client, nil)

	_, err := svc.Catalog(context.Background())
	assert.ErrorIs(t, err, api.ErrServer)
}

func TestRecipeService_GetFallsBackToCache(t *testing.T) {
	env := newTestEnv(t)
	r := testutil.NewTestRecipe("Gulasch", testutil.WithSteps("Anbraten", "90 Minuten schmoren"))
	env.backend.AddRecipes(r)
	svc := NewRecipeService(env.client, env.cache)
	ctx := context.Background()

	_, err := svc.Catalog(ctx)
	require.NoError(t, err)

	env.backend.FailNext("GET /recipes/{id}", 1)
	got, err := svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Anbraten", "90 Minuten schmoren"}, got.Instructions)

	_, err = svc.Get(ctx, 123456)
	assert.ErrorIs(t, err, api.ErrNotFound)
}
