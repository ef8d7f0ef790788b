package domain

// Menu is one planned meal slot. The backend keeps at most one Menu per
// (Date, MealType).
type Menu struct {
	ID          int64    `json:"id"`
	Date        string   `json:"date"`
	MealType    MealType `json:"meal_type"`
	Description string   `json:"description,omitempty"`
	RecipeID    *int64   `json:"RecipeId,omitempty"`
	Recipe      *Recipe  `json:"Recipe,omitempty"`
	IsEatingOut bool     `json:"is_eating_out"`
}

// Title returns the best label for the slot.
func (m *Menu) Title() string {
	if m.Recipe != nil && m.Recipe.Title != "" {
		return m.Recipe.Title
	}
	return m.Description
}

// HasRecipe reports whether a recipe is attached.
func (m *Menu) HasRecipe() bool {
	return m.RecipeID != nil || m.Recipe != nil
}

// RecipeRef returns the attached recipe id, or zero.
func (m *Menu) RecipeRef() int64 {
	if m.RecipeID != nil {
		return *m.RecipeID
	}
	if m.Recipe != nil {
		return m.Recipe.ID
	}
	return 0
}

// MenuSelection is the normalized payload emitted by the meal selector.
type MenuSelection struct {
	Description string `json:"description"`
	RecipeID    *int64 `json:"RecipeId,omitempty"`
	IsEatingOut bool   `json:"is_eating_out,omitempty"`
}

// MenuInput is the request body for creating or updating a Menu.
type MenuInput struct {
	Date        string   `json:"date"`
	MealType    MealType `json:"meal_type"`
	Description string   `json:"description"`
	RecipeID    *int64   `json:"RecipeId"`
	IsEatingOut bool     `json:"is_eating_out"`
}

// NewMenuInput builds the write payload for a slot from a selection.
func NewMenuInput(date string, meal MealType, sel MenuSelection) MenuInput {
	return MenuInput{
		Date:        date,
		MealType:    meal,
		Description: sel.Description,
		RecipeID:    sel.RecipeID,
		IsEatingOut: sel.IsEatingOut,
	}
}
