package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gabelguru/internal/menuplan"
)

// FormatWeek renders the week grid as plain text for the week command.
func FormatWeek(label string, rows []menuplan.DayRow, offline bool) string {
	var b strings.Builder
	b.WriteString(Header(label))
	if offline {
		b.WriteString("  " + StyleYellow.Render("offline"))
	}
	b.WriteString("\n")
	for _, row := range rows {
		day := DayLabel(row.Date)
		if row.IsToday {
			day = StyleHeader.Render(day)
		} else {
			day = Bold(day)
		}
		b.WriteString(day)
		if row.List != nil {
			b.WriteString("  " + StyleBlue.Render("🛒 "+Money(row.List.TotalCost)))
		}
		b.WriteString("\n")
		for _, slot := range row.Slots {
			b.WriteString("  " + slot.Icon() + " " + PadRight(slot.MealType.Label(), 12))
			if slot.Filled() {
				b.WriteString(slot.Menu.Title())
			} else {
				b.WriteString(Dim("–"))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ChipLine renders a collapsed day's meal chips, e.g. "🍲 Pasta  🍴 Suppe  +1".
func ChipLine(row menuplan.DayRow, width int) string {
	parts := make([]string, 0, len(row.Chips)+1)
	for _, c := range row.Chips {
		parts = append(parts, c.Icon()+" "+Truncate(c.Menu.Title(), 14))
	}
	if row.Overflow > 0 {
		parts = append(parts, Dim(fmt.Sprintf("+%d", row.Overflow)))
	}
	if len(parts) == 0 {
		return Dim("nichts geplant")
	}
	return Truncate(strings.Join(parts, "  "), width)
}
