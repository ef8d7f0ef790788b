package api

import (
	"context"
	"net/http"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductPatch is the partial update sent when saving a product note.
type ProductPatch struct {
	Note string `json:"note"`
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) error {
	return c.do(ctx, http.MethodPut, idPath("/products/%d", id), nil, patch, nil)
}

// Units returns the units the backend accepts for list items.
func (c *Client) Units(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/products/units", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
