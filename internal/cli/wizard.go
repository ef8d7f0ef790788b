package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/gabelguru/internal/cli/formatter"
	"github.com/alexanderramin/gabelguru/internal/cooking"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// gabelHuhTheme returns a huh theme built from the active Gruvbox palette.
func gabelHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title, description string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Ja").
				Negative("Nein").
				Value(result),
		),
	).WithTheme(gabelHuhTheme()).WithShowHelp(false)
}

// wizardInputText creates a huh form for a single text input.
func wizardInputText(title, placeholder string, required bool, result *string) *huh.Form {
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(result)

	if required {
		input = input.Validate(validateRequired(title))
	}

	return huh.NewForm(
		huh.NewGroup(input),
	).WithTheme(gabelHuhTheme()).WithShowHelp(false)
}

// wizardNewTimer asks for a timer label and duration.
func wizardNewTimer(label, duration *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bezeichnung").
				Placeholder("Nudeln").
				Value(label),
			huh.NewInput().
				Title("Dauer").
				Placeholder("10 min").
				Value(duration).
				Validate(validateDuration),
		),
	).WithTheme(gabelHuhTheme()).WithShowHelp(false)
}

// wizardAdjustment edits quantity, unit and note of a planning row. Unit
// options come from the backend's unit list.
func wizardAdjustment(name string, units []string, qty, unit, note *string, suggestions []string) *huh.Form {
	unitField := huh.Field(huh.NewInput().Title("Einheit").Value(unit))
	if len(units) > 0 {
		opts := make([]huh.Option[string], 0, len(units)+1)
		opts = append(opts, huh.NewOption("–", ""))
		for _, u := range units {
			opts = append(opts, huh.NewOption(u, u))
		}
		unitField = huh.NewSelect[string]().Title("Einheit").Options(opts...).Value(unit)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Menge").
				Description(name).
				Placeholder("leer = entfernen").
				Value(qty).
				Validate(validateQuantity),
			unitField,
			huh.NewInput().
				Title("Notiz").
				Suggestions(suggestions).
				Value(note),
		),
	).WithTheme(gabelHuhTheme()).WithShowHelp(false)
}

// wizardSelectProduct picks a substitute product from options.
func wizardSelectProduct(title string, products []domain.Product, result *int64) *huh.Form {
	opts := make([]huh.Option[int64], 0, len(products))
	for _, p := range products {
		label := p.Name
		if p.Unit != "" {
			label += " (" + p.Unit + ")"
		}
		opts = append(opts, huh.NewOption(label, p.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title(title).
				Options(opts...).
				Height(12).
				Value(result),
		),
	).WithTheme(gabelHuhTheme()).WithShowHelp(false)
}

func validateRequired(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(title + " darf nicht leer sein")
		}
		return nil
	}
}

// validateDuration accepts inputs like "10 min", "1,5 Std" or "30 s".
func validateDuration(s string) error {
	if _, ok := cooking.ParseDuration(s); !ok {
		return errors.New("z.B. 10 min oder 1,5 Std")
	}
	return nil
}

// validateQuantity accepts empty or a number, with comma or dot.
func validateQuantity(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := domain.ParseQuantity(s); !ok {
		return errors.New("Zahl eingeben, z.B. 1,5")
	}
	return nil
}
