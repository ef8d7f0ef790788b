package api

import (
	"context"
	"net/http"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

func (c *Client) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	var out []domain.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Recipe returns a recipe with instructions and ingredients expanded.
func (c *Client) Recipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	var out domain.Recipe
	if err := c.do(ctx, http.MethodGet, idPath("/recipes/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
