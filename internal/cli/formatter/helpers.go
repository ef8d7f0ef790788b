package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	return renderBox(ColorDim, StyleHeader, strings.ToUpper(title), content)
}

// Alert renders a blocking error panel. The title keeps its case.
func Alert(title string, err error) string {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return renderBox(ColorRed, StyleRed.Bold(true), title, StyleRed.Render(msg)+"\n\n"+Dim("enter/esc: schließen"))
}

func renderBox(border lipgloss.Color, titleStyle lipgloss.Style, title, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(titleStyle.Render(title) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

var weekdaysShort = [...]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

var monthNames = [...]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember"}

// WeekdayShort returns the two-letter German weekday, e.g. "Mo".
func WeekdayShort(t time.Time) string {
	return weekdaysShort[t.Weekday()]
}

// DayLabel renders "Mo 10.03.".
func DayLabel(t time.Time) string {
	return WeekdayShort(t) + " " + t.Format("02.01.")
}

// MonthLabel renders "März 2025".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
}

// Money formats an amount in euros with a decimal comma.
func Money(q domain.Quantity) string {
	v := math.Round(float64(q)*100) / 100
	return strings.Replace(fmt.Sprintf("%.2f €", v), ".", ",", 1)
}

// HumanTimestampFrom returns a short relative timestamp.
func HumanTimestampFrom(t, now time.Time) string {
	if t.IsZero() {
		return "nie"
	}
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("02.01. 15:04")
	case diff < time.Minute:
		return "gerade eben"
	case diff < time.Hour:
		return fmt.Sprintf("vor %d Min", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("vor %d Std", int(diff.Hours()))
	default:
		return t.Format("02.01. 15:04")
	}
}

// Truncate shortens s to width display cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
