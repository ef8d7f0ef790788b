// Package cooking holds the state of a guided cooking session: stepping
// through a recipe, ticking off ingredients, kitchen timers and the
// assistant conversation.
package cooking

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

// Session walks through one recipe.
type Session struct {
	Recipe  *domain.Recipe
	step    int
	checked map[int]bool
}

func NewSession(r *domain.Recipe) *Session {
	return &Session{Recipe: r, checked: make(map[int]bool)}
}

// StepCount returns the number of instruction steps.
func (s *Session) StepCount() int {
	if s.Recipe == nil {
		return 0
	}
	return len(s.Recipe.Instructions)
}

// Step returns the zero-based index of the current step.
func (s *Session) Step() int { return s.step }

// CurrentStep returns the current instruction, or "" for a recipe without
// steps.
func (s *Session) CurrentStep() string {
	if s.StepCount() == 0 {
		return ""
	}
	return strings.TrimSpace(s.Recipe.Instructions[s.step])
}

// Next advances one step and reports whether it moved.
func (s *Session) Next() bool {
	if s.step+1 >= s.StepCount() {
		return false
	}
	s.step++
	return true
}

// Prev goes back one step and reports whether it moved.
func (s *Session) Prev() bool {
	if s.step == 0 {
		return false
	}
	s.step--
	return true
}

// Finished reports whether the last step is showing.
func (s *Session) Finished() bool {
	return s.StepCount() == 0 || s.step == s.StepCount()-1
}

// Progress returns the completed fraction in [0,1], counting the current step.
func (s *Session) Progress() float64 {
	n := s.StepCount()
	if n == 0 {
		return 1
	}
	return float64(s.step+1) / float64(n)
}

// ProgressLabel is the "Schritt x/n" caption.
func (s *Session) ProgressLabel() string {
	n := s.StepCount()
	if n == 0 {
		return "Keine Schritte"
	}
	return fmt.Sprintf("Schritt %d/%d", s.step+1, n)
}

// Ingredients returns the recipe's ingredient lines.
func (s *Session) Ingredients() []domain.RecipeIngredient {
	if s.Recipe == nil {
		return nil
	}
	return s.Recipe.RecipeIngredients
}

// ToggleIngredient flips the checklist mark of ingredient i.
func (s *Session) ToggleIngredient(i int) {
	if i < 0 || i >= len(s.Ingredients()) {
		return
	}
	if s.checked[i] {
		delete(s.checked, i)
		return
	}
	s.checked[i] = true
}

func (s *Session) Checked(i int) bool { return s.checked[i] }

func (s *Session) CheckedCount() int { return len(s.checked) }

// IngredientLine formats ingredient i as "200 g Mehl".
func IngredientLine(ri domain.RecipeIngredient) string {
	name := fmt.Sprintf("#%d", ri.ProductID)
	if ri.Product != nil && ri.Product.Name != "" {
		name = ri.Product.Name
	}
	parts := make([]string, 0, 3)
	if ri.Quantity > 0 {
		parts = append(parts, ri.Quantity.String())
	}
	if ri.Unit != "" {
		parts = append(parts, ri.Unit)
	}
	parts = append(parts, name)
	return strings.Join(parts, " ")
}

// ContextText describes the recipe and the current step for the assistant.
func (s *Session) ContextText() string {
	if s.Recipe == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Rezept: %s\n", s.Recipe.Title)
	if s.Recipe.Servings > 0 {
		fmt.Fprintf(&b, "Portionen: %d\n", s.Recipe.Servings)
	}
	if ings := s.Ingredients(); len(ings) > 0 {
		b.WriteString("Zutaten:\n")
		for _, ri := range ings {
			fmt.Fprintf(&b, "- %s\n", IngredientLine(ri))
		}
	}
	if step := s.CurrentStep(); step != "" {
		fmt.Fprintf(&b, "Aktueller Schritt (%s): %s\n", s.ProgressLabel(), step)
	}
	return strings.TrimRight(b.String(), "\n")
}
