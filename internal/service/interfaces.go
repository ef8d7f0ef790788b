package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gabelguru/internal/api"
	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// WeekData is everything the week view renders for one ISO week.
type WeekData struct {
	Range calendar.Range
	Menus []domain.Menu
	// Lists holds only the lists dated inside Range.
	Lists []domain.List
	// Offline is set when the data came from the local cache because the
	// backend could not be reached.
	Offline   bool
	FetchedAt time.Time
}

// ListsData is the full list collection for the calendar dashboard.
type ListsData struct {
	Lists     []domain.List
	Offline   bool
	FetchedAt time.Time
}

// PlanningBundle is what the bulk planning modal loads on open.
type PlanningBundle struct {
	Data          domain.PlanningData
	Units         []string
	Products      []domain.Product
	Substitutions []domain.Substitution
}

// SaveResult reports the non-fatal parts of a planning save.
type SaveResult struct {
	ItemsCreated int
	NoteFailures int
}

// CatalogData is the recipe catalog for the meal selector.
type CatalogData struct {
	Recipes []domain.Recipe
	Offline bool
}

type WeekPlanService interface {
	LoadWeek(ctx context.Context, weekStart time.Time) (*WeekData, error)
}

type MenuService interface {
	// SaveSlot updates existing when non-nil, else creates a new menu.
	SaveSlot(ctx context.Context, existing *domain.Menu, in domain.MenuInput) (*domain.Menu, error)
	Delete(ctx context.Context, id int64) error
}

type ListService interface {
	All(ctx context.Context) (*ListsData, error)
	Get(ctx context.Context, id int64) (*domain.List, error)
	Create(ctx context.Context, date, name string) (*domain.List, error)
	Move(ctx context.Context, id int64, date string) (*domain.List, error)
	Merge(ctx context.Context, targetID, sourceID int64) error
	Delete(ctx context.Context, id int64) error
}

type PlanningService interface {
	Load(ctx context.Context, listID int64) (*PlanningBundle, error)
	Save(ctx context.Context, listID int64, notes []domain.ProductNote, items []domain.BulkItem) (*SaveResult, error)
	SetSubstitution(ctx context.Context, listID, originalID, substituteID int64) error
	ClearSubstitution(ctx context.Context, listID, originalID, substituteID int64) (*domain.PlanningData, error)
}

type RecipeService interface {
	Catalog(ctx context.Context) (*CatalogData, error)
	Get(ctx context.Context, id int64) (*domain.Recipe, error)
}

type AssistantService interface {
	Ask(ctx context.Context, history []api.ChatMessage, contextText string) (string, error)
	SpeakURL(text string) string
}

// Backend is the subset of the REST client the services call. *api.Client
// implements it.
type Backend interface {
	Menus(ctx context.Context, r calendar.Range) ([]domain.Menu, error)
	CreateMenu(ctx context.Context, in domain.MenuInput) (*domain.Menu, error)
	UpdateMenu(ctx context.Context, id int64, in domain.MenuInput) (*domain.Menu, error)
	DeleteMenu(ctx context.Context, id int64) error

	Lists(ctx context.Context) ([]domain.List, error)
	List(ctx context.Context, id int64) (*domain.List, error)
	CreateList(ctx context.Context, in domain.ListInput) (*domain.List, error)
	UpdateList(ctx context.Context, id int64, in domain.ListInput) (*domain.List, error)
	DeleteList(ctx context.Context, id int64) error
	MergeList(ctx context.Context, targetID, sourceID int64) error

	PlanningData(ctx context.Context, listID int64) (*domain.PlanningData, error)
	Substitutions(ctx context.Context, listID int64) ([]domain.Substitution, error)
	SaveSubstitution(ctx context.Context, listID, originalID, substituteID int64) error
	DeleteSubstitution(ctx context.Context, listID, originalID int64) error
	BulkCreateItems(ctx context.Context, listID int64, items []domain.BulkItem) error
	DeleteListItem(ctx context.Context, itemID int64) error

	Products(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch api.ProductPatch) error
	Units(ctx context.Context) ([]string, error)

	Recipes(ctx context.Context) ([]domain.Recipe, error)
	Recipe(ctx context.Context, id int64) (*domain.Recipe, error)

	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatReply, error)
	SpeakURL(text string) string
}

var _ Backend = (*api.Client)(nil)
