package domain

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes is the fixed slot order of a planned day.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Label returns the display name for the meal type.
func (m MealType) Label() string {
	switch m {
	case MealBreakfast:
		return "Frühstück"
	case MealLunch:
		return "Mittagessen"
	case MealDinner:
		return "Abendessen"
	case MealSnack:
		return "Snack"
	default:
		return string(m)
	}
}

// Valid reports whether m is one of the four planned slots.
func (m MealType) Valid() bool {
	for _, t := range MealTypes {
		if t == m {
			return true
		}
	}
	return false
}

type ListStatus string

const (
	ListActive   ListStatus = "active"
	ListArchived ListStatus = "archived"
)

// EditMode gates which mutation a click performs in the planning views.
type EditMode string

const (
	ModeView   EditMode = "view"
	ModeCreate EditMode = "create"
	ModeEdit   EditMode = "edit"
	ModeDelete EditMode = "delete"
)

// EditModes lists modes in the order the mode switcher cycles through them.
var EditModes = []EditMode{ModeView, ModeCreate, ModeEdit, ModeDelete}

// Next returns the mode following m in the switcher cycle.
func (m EditMode) Next() EditMode {
	for i, mode := range EditModes {
		if mode == m {
			return EditModes[(i+1)%len(EditModes)]
		}
	}
	return ModeView
}

// Mutating reports whether the mode opens editors on click.
func (m EditMode) Mutating() bool {
	return m == ModeCreate || m == ModeEdit
}
