package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_UnmarshalNumberOrString(t *testing.T) {
	var item ListItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"ProductId":4,"quantity":"1.50","unit":"kg"}`), &item))
	assert.InDelta(t, 1.5, float64(item.Quantity), 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"ProductId":4,"quantity":2,"unit":"kg"}`), &item))
	assert.InDelta(t, 2.0, float64(item.Quantity), 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"ProductId":4,"quantity":null}`), &item))
	assert.Zero(t, item.Quantity)

	assert.Error(t, json.Unmarshal([]byte(`{"quantity":"lots"}`), &item))
}

func TestParseQuantity(t *testing.T) {
	f, ok := ParseQuantity(" 2,5 ")
	require.True(t, ok)
	assert.InDelta(t, 2.5, f, 1e-9)

	_, ok = ParseQuantity("")
	assert.False(t, ok)
	_, ok = ParseQuantity("abc")
	assert.False(t, ok)
}

func TestPlanningIngredient_DefaultUnit(t *testing.T) {
	p := PlanningIngredient{Product: Product{Unit: "g"}}
	assert.Equal(t, "g", p.DefaultUnit())

	p.OnList = &Amount{Quantity: 1, Unit: "Packung"}
	assert.Equal(t, "Packung", p.DefaultUnit())
}

func TestEditMode_NextCycles(t *testing.T) {
	m := ModeView
	seen := []EditMode{m}
	for i := 0; i < 4; i++ {
		m = m.Next()
		seen = append(seen, m)
	}
	assert.Equal(t, []EditMode{ModeView, ModeCreate, ModeEdit, ModeDelete, ModeView}, seen)
	assert.True(t, ModeEdit.Mutating())
	assert.False(t, ModeDelete.Mutating())
}

func TestMenu_TitlePrefersRecipe(t *testing.T) {
	m := Menu{Description: "Nudeln", Recipe: &Recipe{ID: 3, Title: "Spaghetti Carbonara"}}
	assert.Equal(t, "Spaghetti Carbonara", m.Title())
	assert.True(t, m.HasRecipe())
	assert.Equal(t, int64(3), m.RecipeRef())
}
