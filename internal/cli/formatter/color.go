package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

// Palette is one set of theme colors.
type Palette struct {
	Green, Yellow, Red, Blue, Purple, Dim, Fg, Header, Accent lipgloss.Color
}

// Gruvbox dark and light variants.
var (
	DarkPalette = Palette{
		Green:  "#8ec07c",
		Yellow: "#fabd2f",
		Red:    "#fb4934",
		Blue:   "#83a598",
		Purple: "#d3869b",
		Dim:    "#928374",
		Fg:     "#ebdbb2",
		Header: "#fe8019",
		Accent: "#504945",
	}
	LightPalette = Palette{
		Green:  "#427b58",
		Yellow: "#b57614",
		Red:    "#9d0006",
		Blue:   "#076678",
		Purple: "#8f3f71",
		Dim:    "#7c6f64",
		Fg:     "#3c3836",
		Header: "#af3a03",
		Accent: "#d5c4a1",
	}
)

var (
	ColorGreen  lipgloss.Color
	ColorYellow lipgloss.Color
	ColorRed    lipgloss.Color
	ColorBlue   lipgloss.Color
	ColorPurple lipgloss.Color
	ColorDim    lipgloss.Color
	ColorFg     lipgloss.Color
	ColorHeader lipgloss.Color
	ColorAccent lipgloss.Color
)

var (
	StyleGreen      lipgloss.Style
	StyleYellow     lipgloss.Style
	StyleYellowBold lipgloss.Style
	StyleRed        lipgloss.Style
	StyleBlue       lipgloss.Style
	StylePurple     lipgloss.Style
	StyleDim        lipgloss.Style
	StyleFg         lipgloss.Style
	StyleHeader     lipgloss.Style
	StyleBold       lipgloss.Style
	// StyleSelected highlights the cursor cell.
	StyleSelected lipgloss.Style
)

var darkTheme = true

func init() { Apply(DarkPalette) }

// SetDark switches between the dark and light palettes.
func SetDark(dark bool) {
	darkTheme = dark
	if dark {
		Apply(DarkPalette)
		return
	}
	Apply(LightPalette)
}

// IsDark reports whether the dark palette is active.
func IsDark() bool { return darkTheme }

// Apply installs p as the active palette.
func Apply(p Palette) {
	ColorGreen, ColorYellow, ColorRed = p.Green, p.Yellow, p.Red
	ColorBlue, ColorPurple, ColorDim = p.Blue, p.Purple, p.Dim
	ColorFg, ColorHeader, ColorAccent = p.Fg, p.Header, p.Accent

	StyleGreen = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = StyleYellow.Bold(true)
	StyleRed = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleSelected = lipgloss.NewStyle().Foreground(ColorFg).Background(ColorAccent).Bold(true)
}

// ModeStyle returns the badge style of an edit mode.
func ModeStyle(m domain.EditMode) lipgloss.Style {
	switch m {
	case domain.ModeCreate:
		return StyleGreen
	case domain.ModeEdit:
		return StyleYellow
	case domain.ModeDelete:
		return StyleRed
	default:
		return StyleDim
	}
}

// ModeBadge renders the current edit mode, e.g. "● EDIT".
func ModeBadge(m domain.EditMode) string {
	return ModeStyle(m).Bold(true).Render("● " + strings.ToUpper(string(m)))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
