package domain

// Amount is a quantity in a unit.
type Amount struct {
	Quantity Quantity `json:"quantity"`
	Unit     string   `json:"unit"`
}

// PlanningIngredient is one aggregated ingredient need for a list's date
// range, together with what is already on the list.
type PlanningIngredient struct {
	ProductID int64    `json:"ProductId"`
	Product   Product  `json:"Product"`
	Needs     []Amount `json:"needs"`
	OnList    *Amount  `json:"onList,omitempty"`
	Sources   []string `json:"sources,omitempty"`
}

// PrimaryNeed returns the first computed need, if any.
func (p PlanningIngredient) PrimaryNeed() (Amount, bool) {
	if len(p.Needs) == 0 {
		return Amount{}, false
	}
	return p.Needs[0], true
}

// DefaultUnit returns the unit a flat quick-add uses: the unit already on the
// list when the product is present there, else the product's native unit.
func (p PlanningIngredient) DefaultUnit() string {
	if p.OnList != nil && p.OnList.Unit != "" {
		return p.OnList.Unit
	}
	return p.Product.Unit
}

// PlanningData is the planning-data response for one list.
type PlanningData struct {
	StartDate   string               `json:"startDate"`
	EndDate     string               `json:"endDate"`
	Ingredients []PlanningIngredient `json:"ingredients"`
}
