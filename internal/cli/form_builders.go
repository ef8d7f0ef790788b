package cli

import (
	"errors"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/gabelguru/internal/calendar"
)

// dateInput returns a huh.Input for a required YYYY-MM-DD date field.
func dateInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "2025-03-10"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateDate)
}

// newListForm collects date and name for a new shopping list. The date is
// pre-filled by the caller.
func newListForm(date, name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			dateInput("Datum (YYYY-MM-DD)", *date, date),
			huh.NewInput().
				Title("Name").
				Placeholder("optional").
				Value(name),
		),
	).WithTheme(gabelHuhTheme()).WithShowHelp(false)
}

// jumpDateForm asks for a day whose week should be shown.
func jumpDateForm(date *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(dateInput("Springe zu Woche mit Datum", "", date)),
	).WithTheme(gabelHuhTheme()).WithShowHelp(false)
}

func validateDate(s string) error {
	if _, err := time.Parse(calendar.DayLayout, s); err != nil {
		return errors.New("Format YYYY-MM-DD")
	}
	return nil
}
