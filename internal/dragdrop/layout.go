// Package dragdrop implements the calendar dashboard's list drag: a long
// press on a day with a list picks it up, and releasing it over another day
// either moves the list there or merges it into that day's list.
package dragdrop

import (
	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/menuplan"
)

// Tile is one calendar day's rectangle in px.
type Tile struct {
	Date string
	Rect menuplan.Rect
}

// Layout maps screen positions to calendar days. Views rebuild it on every
// render from the same geometry they draw with.
type Layout struct {
	tiles []Tile
}

// Reset drops all tiles.
func (l *Layout) Reset() { l.tiles = l.tiles[:0] }

// Add registers the rectangle of a day.
func (l *Layout) Add(date string, r menuplan.Rect) {
	l.tiles = append(l.tiles, Tile{Date: calendar.NormalizeKey(date), Rect: r})
}

// Tiles returns the registered tiles.
func (l *Layout) Tiles() []Tile { return l.tiles }

// HitTest returns the date of the tile containing p.
func (l *Layout) HitTest(p menuplan.Point) (string, bool) {
	for _, t := range l.tiles {
		if t.Rect.Contains(p) {
			return t.Date, true
		}
	}
	return "", false
}

// RectOf returns the rectangle of date.
func (l *Layout) RectOf(date string) (menuplan.Rect, bool) {
	key := calendar.NormalizeKey(date)
	for _, t := range l.tiles {
		if t.Date == key {
			return t.Rect, true
		}
	}
	return menuplan.Rect{}, false
}
