package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// Menus returns the menus planned within r. Range bounds are sent as local
// calendar days.
func (c *Client) Menus(ctx context.Context, r calendar.Range) ([]domain.Menu, error) {
	q := url.Values{}
	q.Set("start", r.StartKey())
	q.Set("end", r.EndKey())
	var out []domain.Menu
	if err := c.do(ctx, http.MethodGet, "/menus", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMenu(ctx context.Context, in domain.MenuInput) (*domain.Menu, error) {
	var out domain.Menu
	if err := c.do(ctx, http.MethodPost, "/menus", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMenu(ctx context.Context, id int64, in domain.MenuInput) (*domain.Menu, error) {
	var out domain.Menu
	if err := c.do(ctx, http.MethodPut, idPath("/menus/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMenu(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/menus/%d", id), nil, nil, nil)
}
