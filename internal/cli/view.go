package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewWeek ViewID = iota
	ViewDashboard
	ViewSelector
	ViewPlanning
	ViewCooking
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// teardown is implemented by views that own delayed tasks or processes
// which must stop when the view leaves the stack.
type teardown interface {
	Teardown()
}

// capturesInput is implemented by views that take free text and need every
// key, bypassing global bindings such as q and :.
type capturesInput interface {
	CapturesInput() bool
}
