package cooking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/testutil"
)

func testRecipe() *domain.Recipe {
	flour := testutil.NewTestProduct("Mehl", "g")
	eggs := testutil.NewTestProduct("Eier", "Stk")
	return testutil.NewTestRecipe("Pfannkuchen",
		testutil.WithSteps("Mehl und Eier verrühren.", "Teig 10 Minuten ruhen lassen.", "Ausbacken."),
		testutil.WithIngredient(flour, 200, "g"),
		testutil.WithIngredient(eggs, 3, ""),
	)
}

func TestSession_Stepping(t *testing.T) {
	s := NewSession(testRecipe())

	assert.Equal(t, 3, s.StepCount())
	assert.Equal(t, "Schritt 1/3", s.ProgressLabel())
	assert.False(t, s.Prev())

	assert.True(t, s.Next())
	assert.Equal(t, "Teig 10 Minuten ruhen lassen.", s.CurrentStep())
	assert.True(t, s.Next())
	assert.False(t, s.Next())
	assert.True(t, s.Finished())
	assert.InDelta(t, 1.0, s.Progress(), 1e-9)

	assert.True(t, s.Prev())
	assert.Equal(t, "Schritt 2/3", s.ProgressLabel())
}

func TestSession_NoSteps(t *testing.T) {
	s := NewSession(testutil.NewTestRecipe("Salat"))
	assert.Empty(t, s.CurrentStep())
	assert.False(t, s.Next())
	assert.True(t, s.Finished())
	assert.Equal(t, "Keine Schritte", s.ProgressLabel())
}

func TestSession_IngredientChecklist(t *testing.T) {
	s := NewSession(testRecipe())

	s.ToggleIngredient(1)
	s.ToggleIngredient(7)
	assert.True(t, s.Checked(1))
	assert.Equal(t, 1, s.CheckedCount())

	s.ToggleIngredient(1)
	assert.False(t, s.Checked(1))
	assert.Zero(t, s.CheckedCount())
}

func TestIngredientLine(t *testing.T) {
	ings := testRecipe().RecipeIngredients
	assert.Equal(t, "200 g Mehl", IngredientLine(ings[0]))
	assert.Equal(t, "3 Eier", IngredientLine(ings[1]))
	assert.Equal(t, "#42", IngredientLine(domain.RecipeIngredient{ProductID: 42}))
}

func TestSession_ContextText(t *testing.T) {
	s := NewSession(testRecipe())
	s.Next()

	text := s.ContextText()
	assert.Contains(t, text, "Rezept: Pfannkuchen")
	assert.Contains(t, text, "- 200 g Mehl")
	assert.Contains(t, text, "Aktueller Schritt (Schritt 2/3): Teig 10 Minuten ruhen lassen.")
}
