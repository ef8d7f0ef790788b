package api

import (
	"context"
	"net/http"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

// Lists returns every shopping list of the user.
func (c *Client) Lists(ctx context.Context) ([]domain.List, error) {
	var out []domain.List
	if err := c.do(ctx, http.MethodGet, "/lists", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns one list including its items.
func (c *Client) List(ctx context.Context, id int64) (*domain.List, error) {
	var out domain.List
	if err := c.do(ctx, http.MethodGet, idPath("/lists/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateList(ctx context.Context, in domain.ListInput) (*domain.List, error) {
	var out domain.List
	if err := c.do(ctx, http.MethodPost, "/lists", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateList changes a list's date, name or status. Re-dating a list is how
// the calendar moves it.
func (c *Client) UpdateList(ctx context.Context, id int64, in domain.ListInput) (*domain.List, error) {
	var out domain.List
	if err := c.do(ctx, http.MethodPut, idPath("/lists/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteList(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/lists/%d", id), nil, nil, nil)
}

type mergeRequest struct {
	SourceListID int64 `json:"sourceListId"`
}

// MergeList folds all items of sourceID into targetID. The backend deletes
// the source list afterwards.
func (c *Client) MergeList(ctx context.Context, targetID, sourceID int64) error {
	return c.do(ctx, http.MethodPost, idPath("/lists/%d/merge", targetID), nil, mergeRequest{SourceListID: sourceID}, nil)
}

// PlanningData returns aggregated ingredient needs for the list's date range.
func (c *Client) PlanningData(ctx context.Context, listID int64) (*domain.PlanningData, error) {
	var out domain.PlanningData
	if err := c.do(ctx, http.MethodGet, idPath("/lists/%d/planning-data", listID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Substitutions(ctx context.Context, listID int64) ([]domain.Substitution, error) {
	var out []domain.Substitution
	if err := c.do(ctx, http.MethodGet, idPath("/lists/%d/substitutions", listID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type substitutionRequest struct {
	OriginalProductID   int64 `json:"original_product_id"`
	SubstituteProductID int64 `json:"substitute_product_id"`
}

func (c *Client) SaveSubstitution(ctx context.Context, listID, originalID, substituteID int64) error {
	body := substitutionRequest{OriginalProductID: originalID, SubstituteProductID: substituteID}
	return c.do(ctx, http.MethodPost, idPath("/lists/%d/substitutions", listID), nil, body, nil)
}

func (c *Client) DeleteSubstitution(ctx context.Context, listID, originalID int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/lists/%d/substitutions/%d", listID, originalID), nil, nil, nil)
}

type bulkItemsRequest struct {
	Items []domain.BulkItem `json:"items"`
}

// BulkCreateItems adds all items to the list in one call.
func (c *Client) BulkCreateItems(ctx context.Context, listID int64, items []domain.BulkItem) error {
	return c.do(ctx, http.MethodPost, idPath("/lists/%d/bulk-items", listID), nil, bulkItemsRequest{Items: items}, nil)
}

func (c *Client) DeleteListItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/lists/items/%d", itemID), nil, nil, nil)
}
