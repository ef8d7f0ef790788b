package testutil

import (
	"sync/atomic"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

var testIDCounter atomic.Int64

func nextID() int64 {
	return testIDCounter.Add(1) + 1000
}

// Menu options
type MenuOption func(*domain.Menu)

func WithRecipe(r *domain.Recipe) MenuOption {
	return func(m *domain.Menu) {
		m.RecipeID = domain.Ptr(r.ID)
		m.Recipe = r
		m.Description = r.Title
	}
}

func EatingOut() MenuOption {
	return func(m *domain.Menu) {
		m.IsEatingOut = true
	}
}

func WithMenuID(id int64) MenuOption {
	return func(m *domain.Menu) {
		m.ID = id
	}
}

func NewTestMenu(date string, meal domain.MealType, description string, opts ...MenuOption) domain.Menu {
	m := domain.Menu{
		ID:          nextID(),
		Date:        date,
		MealType:    meal,
		Description: description,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// List options
type ListOption func(*domain.List)

func WithListName(name string) ListOption {
	return func(l *domain.List) {
		l.Name = name
	}
}

func WithTotalCost(cost float64) ListOption {
	return func(l *domain.List) {
		l.TotalCost = domain.Quantity(cost)
	}
}

func WithItems(items ...domain.ListItem) ListOption {
	return func(l *domain.List) {
		for i := range items {
			items[i].ListID = l.ID
		}
		l.ListItems = append(l.ListItems, items...)
	}
}

func WithListID(id int64) ListOption {
	return func(l *domain.List) {
		l.ID = id
	}
}

func NewTestList(date string, opts ...ListOption) domain.List {
	l := domain.List{
		ID:     nextID(),
		Date:   date,
		Status: domain.ListActive,
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

func NewTestProduct(name, unit string) domain.Product {
	return domain.Product{ID: nextID(), Name: name, Unit: unit}
}

// Recipe options
type RecipeOption func(*domain.Recipe)

func WithCategory(c string) RecipeOption {
	return func(r *domain.Recipe) {
		r.Category = c
	}
}

func WithSteps(steps ...string) RecipeOption {
	return func(r *domain.Recipe) {
		r.Instructions = steps
	}
}

func WithIngredient(p domain.Product, qty float64, unit string) RecipeOption {
	return func(r *domain.Recipe) {
		prod := p
		r.RecipeIngredients = append(r.RecipeIngredients, domain.RecipeIngredient{
			ProductID: p.ID,
			Quantity:  domain.Quantity(qty),
			Unit:      unit,
			Product:   &prod,
		})
	}
}

func NewTestRecipe(title string, opts ...RecipeOption) *domain.Recipe {
	r := &domain.Recipe{
		ID:       nextID(),
		Title:    title,
		Servings: 2,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestIngredient builds a planning-data row with a single need.
func NewTestIngredient(p domain.Product, qty float64, unit string, sources ...string) domain.PlanningIngredient {
	return domain.PlanningIngredient{
		ProductID: p.ID,
		Product:   p,
		Needs:     []domain.Amount{{Quantity: domain.Quantity(qty), Unit: unit}},
		Sources:   sources,
	}
}
