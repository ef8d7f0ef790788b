package menuplan

import (
	"github.com/alexanderramin/gabelguru/internal/domain"
)

const (
	// DesktopBreakpoint is the viewport width in px from which tooltips are
	// anchored to the slot instead of centred.
	DesktopBreakpoint = 768.0
	// TooltipHalfWidth keeps a desktop tooltip inside the viewport.
	TooltipHalfWidth = 160.0
)

// SlotKey is the tooltip identity of a slot.
func SlotKey(date string, meal domain.MealType) string {
	return date + "-" + string(meal)
}

// Rect is a rectangle in px.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Tooltip is the single open slot tooltip. The zero value is closed.
type Tooltip struct {
	key    string
	menu   *domain.Menu
	anchor Rect
	bounds Rect
}

// Open reports whether a tooltip is shown.
func (t *Tooltip) Open() bool { return t.key != "" }

// Key returns the slot key of the open tooltip, or "".
func (t *Tooltip) Key() string { return t.key }

// Menu returns the menu of the open tooltip.
func (t *Tooltip) Menu() *domain.Menu { return t.menu }

// Anchor returns the slot rectangle the tooltip is attached to.
func (t *Tooltip) Anchor() Rect { return t.anchor }

// Toggle opens the tooltip for slot, or closes it when that slot's tooltip is
// already open. It returns whether a tooltip is open afterwards.
func (t *Tooltip) Toggle(slot Slot, anchor Rect) bool {
	if t.key == slot.Key() {
		t.Close()
		return false
	}
	t.key = slot.Key()
	t.menu = slot.Menu
	t.anchor = anchor
	t.bounds = Rect{}
	return true
}

// SetBounds records where the tooltip was rendered so clicks inside it can
// be told apart from outside clicks.
func (t *Tooltip) SetBounds(r Rect) { t.bounds = r }

// Close hides the tooltip.
func (t *Tooltip) Close() {
	*t = Tooltip{}
}

// ClickAt handles a click that is not a slot toggle. Clicks inside the
// tooltip keep it open; any other click closes it. It reports whether the
// click landed inside.
func (t *Tooltip) ClickAt(p Point) bool {
	if !t.Open() {
		return false
	}
	if t.bounds.Contains(p) {
		return true
	}
	t.Close()
	return false
}

// OpenRecipe returns the recipe id to open in cooking mode and clears the
// tooltip in the same step. ok is false when the menu has no recipe.
func (t *Tooltip) OpenRecipe() (recipeID int64, ok bool) {
	if t.menu == nil || !t.menu.HasRecipe() {
		return 0, false
	}
	id := t.menu.RecipeRef()
	t.Close()
	return id, true
}

// Place returns the tooltip anchor point for a slot rectangle in a viewport
// of the given width. On desktop the x coordinate follows the slot centre,
// clamped so the tooltip stays on screen; on mobile it is centred.
func Place(slot Rect, viewportWidth float64) Point {
	c := slot.Center()
	p := Point{X: c.X, Y: slot.Y}
	if viewportWidth < DesktopBreakpoint {
		p.X = viewportWidth / 2
		return p
	}
	lo, hi := TooltipHalfWidth, viewportWidth-TooltipHalfWidth
	switch {
	case p.X < lo:
		p.X = lo
	case p.X > hi:
		p.X = hi
	}
	return p
}
