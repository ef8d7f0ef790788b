package domain

// List is a shopping session for one calendar date.
type List struct {
	ID        int64      `json:"id"`
	Date      string     `json:"date"`
	Status    ListStatus `json:"status"`
	TotalCost Quantity   `json:"total_cost"`
	Name      string     `json:"name"`
	ListItems []ListItem `json:"ListItems,omitempty"`
}

// DisplayName returns the list name, falling back to its date.
func (l *List) DisplayName() string {
	return CoalesceStr(l.Name, l.Date)
}

// ListItem is a product quantity on a List.
type ListItem struct {
	ID        int64    `json:"id"`
	ListID    int64    `json:"ListId,omitempty"`
	ProductID int64    `json:"ProductId"`
	Quantity  Quantity `json:"quantity"`
	Unit      string   `json:"unit"`
	IsBought  bool     `json:"is_bought,omitempty"`
	Product   *Product `json:"Product,omitempty"`
}

// BulkItem is one entry of a bulk-create request.
type BulkItem struct {
	ProductID int64   `json:"ProductId"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
}

// ListInput is the request body for creating or re-dating a List.
type ListInput struct {
	Date   string     `json:"date"`
	Name   string     `json:"name,omitempty"`
	Status ListStatus `json:"status,omitempty"`
}
