// Package selector is the meal selector state: recipe catalog filtering by
// title search and category, and the three ways a slot can be filled.
package selector

import (
	"errors"
	"sort"
	"strings"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

// AllCategories is the sentinel category that disables category filtering.
const AllCategories = "All"

// DefaultEatingOut is the description used when eating out without text.
const DefaultEatingOut = "Restaurant"

// ErrBlankDescription is returned when a manual entry has no text.
var ErrBlankDescription = errors.New("description must not be blank")

// Selector holds the state of one open meal selector.
type Selector struct {
	Date     string
	MealType domain.MealType

	recipes  []domain.Recipe
	search   string
	manual   string
	category string
}

// New opens a selector for (date, meal) with search, manual text and
// category reset.
func New(date string, meal domain.MealType) *Selector {
	return &Selector{Date: date, MealType: meal, category: AllCategories}
}

// SetCatalog replaces the recipe catalog.
func (s *Selector) SetCatalog(recipes []domain.Recipe) {
	s.recipes = recipes
}

// Catalog returns the loaded recipes.
func (s *Selector) Catalog() []domain.Recipe { return s.recipes }

func (s *Selector) Search() string { return s.search }

func (s *Selector) SetSearch(q string) { s.search = q }

func (s *Selector) Manual() string { return s.manual }

func (s *Selector) SetManual(text string) { s.manual = text }

func (s *Selector) Category() string { return s.category }

// SetCategory selects a category; unknown or empty values select All.
func (s *Selector) SetCategory(c string) {
	if c == "" {
		c = AllCategories
	}
	s.category = c
}

// CycleCategory moves the category filter by delta through Categories.
func (s *Selector) CycleCategory(delta int) {
	cats := s.Categories()
	idx := 0
	for i, c := range cats {
		if c == s.category {
			idx = i
			break
		}
	}
	n := len(cats)
	s.category = cats[((idx+delta)%n+n)%n]
}

// Categories returns All followed by the sorted, de-duplicated non-empty
// recipe categories.
func (s *Selector) Categories() []string {
	return Categories(s.recipes)
}

// Categories returns All followed by the sorted, de-duplicated non-empty
// categories of recipes.
func Categories(recipes []domain.Recipe) []string {
	seen := map[string]bool{}
	var cats []string
	for _, r := range recipes {
		c := strings.TrimSpace(r.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return append([]string{AllCategories}, cats...)
}

// Filtered returns the recipes matching the search text (case-insensitive
// substring of the title) and the category filter, in catalog order.
func (s *Selector) Filtered() []domain.Recipe {
	return Filter(s.recipes, s.search, s.category)
}

// Filter applies a title search and category to recipes.
func Filter(recipes []domain.Recipe, search, category string) []domain.Recipe {
	q := strings.ToLower(strings.TrimSpace(search))
	var out []domain.Recipe
	for _, r := range recipes {
		if category != "" && category != AllCategories && strings.TrimSpace(r.Category) != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.Title), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SubmitManual fills the slot with free text.
func (s *Selector) SubmitManual() (domain.MenuSelection, error) {
	return ManualSelection(s.manual)
}

// SubmitEatingOut marks the slot as eating out, using the manual text as the
// place when given.
func (s *Selector) SubmitEatingOut() domain.MenuSelection {
	return EatingOutSelection(s.manual)
}

// ManualSelection builds a free-text selection.
func ManualSelection(text string) (domain.MenuSelection, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.MenuSelection{}, ErrBlankDescription
	}
	return domain.MenuSelection{Description: text}, nil
}

// EatingOutSelection builds an eating-out selection.
func EatingOutSelection(text string) domain.MenuSelection {
	text = strings.TrimSpace(text)
	if text == "" {
		text = DefaultEatingOut
	}
	return domain.MenuSelection{Description: text, IsEatingOut: true}
}

// RecipeSelection builds the selection for a picked recipe.
func RecipeSelection(r domain.Recipe) domain.MenuSelection {
	id := r.ID
	return domain.MenuSelection{Description: r.Title, RecipeID: &id}
}
