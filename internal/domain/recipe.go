package domain

type Recipe struct {
	ID                int64              `json:"id"`
	Title             string             `json:"title"`
	Category          string             `json:"category,omitempty"`
	Instructions      []string           `json:"instructions,omitempty"`
	RecipeIngredients []RecipeIngredient `json:"RecipeIngredients,omitempty"`
	Servings          int                `json:"servings,omitempty"`
	Duration          int                `json:"duration,omitempty"`
	ImageURL          string             `json:"image_url,omitempty"`
}

type RecipeIngredient struct {
	ProductID int64    `json:"ProductId"`
	Quantity  Quantity `json:"quantity"`
	Unit      string   `json:"unit"`
	Product   *Product `json:"Product,omitempty"`
}

// Name returns the ingredient's product name.
func (ri RecipeIngredient) Name() string {
	if ri.Product != nil {
		return ri.Product.Name
	}
	return ""
}
