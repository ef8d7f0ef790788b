package menuplan

import (
	"time"

	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// MaxChips is the number of meals shown on a collapsed day row.
const MaxChips = 2

// Slot is one (date, meal type) cell. Menu is nil when nothing is planned.
type Slot struct {
	Date     string
	MealType domain.MealType
	Menu     *domain.Menu
}

// Filled reports whether a menu is planned for the slot.
func (s Slot) Filled() bool { return s.Menu != nil }

// Key identifies the slot for tooltip state.
func (s Slot) Key() string { return SlotKey(s.Date, s.MealType) }

// Icon returns the slot's glyph. Eating out overrides the meal icon.
func (s Slot) Icon() string {
	if s.Menu != nil && s.Menu.IsEatingOut {
		return IconEatingOut
	}
	return MealIcon(s.MealType)
}

const (
	IconBreakfast = "☀"
	IconLunch     = "🍲"
	IconDinner    = "🍴"
	IconSnack     = "🍎"
	IconEatingOut = "🚗"
)

func MealIcon(m domain.MealType) string {
	switch m {
	case domain.MealBreakfast:
		return IconBreakfast
	case domain.MealLunch:
		return IconLunch
	case domain.MealDinner:
		return IconDinner
	case domain.MealSnack:
		return IconSnack
	default:
		return "·"
	}
}

// DayRow is the view-model of one day in the week grid.
type DayRow struct {
	Date    time.Time
	Key     string
	IsToday bool
	// Slots always has one entry per meal type in breakfast..snack order.
	Slots []Slot
	// Chips are the first MaxChips filled slots; Overflow counts the rest.
	Chips    []Slot
	Overflow int
	// List is the shopping list dated on this day, if any.
	List *domain.List
}

// FilledCount returns the number of planned meals.
func (d DayRow) FilledCount() int {
	return len(d.Chips) + d.Overflow
}

// BuildWeek derives the seven day rows of r from the fetched menus and lists.
// Menu and list dates are compared as local day keys.
func BuildWeek(r calendar.Range, menus []domain.Menu, lists []domain.List, today time.Time) []DayRow {
	todayKey := calendar.DayKey(today)
	days := r.Days()
	rows := make([]DayRow, 0, len(days))
	for _, day := range days {
		key := calendar.DayKey(day)
		row := DayRow{Date: day, Key: key, IsToday: key == todayKey}
		for _, meal := range domain.MealTypes {
			slot := Slot{Date: key, MealType: meal, Menu: FindMenu(menus, key, meal)}
			row.Slots = append(row.Slots, slot)
			if slot.Filled() {
				if len(row.Chips) < MaxChips {
					row.Chips = append(row.Chips, slot)
				} else {
					row.Overflow++
				}
			}
		}
		row.List = findList(lists, key)
		rows = append(rows, row)
	}
	return rows
}

// FindMenu returns the menu planned for (date, meal), or nil. A non-nil
// result means a selection must update that menu rather than create one.
func FindMenu(menus []domain.Menu, date string, meal domain.MealType) *domain.Menu {
	key := calendar.NormalizeKey(date)
	for i := range menus {
		if menus[i].MealType == meal && calendar.NormalizeKey(menus[i].Date) == key {
			return &menus[i]
		}
	}
	return nil
}

func findList(lists []domain.List, key string) *domain.List {
	for i := range lists {
		if calendar.NormalizeKey(lists[i].Date) == key {
			return &lists[i]
		}
	}
	return nil
}

// PlanSlot builds the write for a selection on (date, meal), returning the
// existing menu to update or nil to create.
func PlanSlot(menus []domain.Menu, date string, meal domain.MealType, sel domain.MenuSelection) (*domain.Menu, domain.MenuInput) {
	return FindMenu(menus, date, meal), domain.NewMenuInput(calendar.NormalizeKey(date), meal, sel)
}
