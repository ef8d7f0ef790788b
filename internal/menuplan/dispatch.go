package menuplan

import "github.com/alexanderramin/gabelguru/internal/domain"

// Action is what a slot click resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionToggleTooltip
	ActionOpenCooking
	ActionOpenSelector
	ActionConfirmDelete
)

func (a Action) String() string {
	switch a {
	case ActionToggleTooltip:
		return "toggle-tooltip"
	case ActionOpenCooking:
		return "open-cooking"
	case ActionOpenSelector:
		return "open-selector"
	case ActionConfirmDelete:
		return "confirm-delete"
	default:
		return "none"
	}
}

// Click is an activation of a slot. FromPointer is false for keyboard
// activation from the expanded day row.
type Click struct {
	Slot        Slot
	FromPointer bool
}

// Dispatch decides what a click does in the given edit mode.
func Dispatch(mode domain.EditMode, c Click) Action {
	switch mode {
	case domain.ModeCreate, domain.ModeEdit:
		return ActionOpenSelector
	case domain.ModeDelete:
		if c.Slot.Filled() {
			return ActionConfirmDelete
		}
		return ActionNone
	default:
		if !c.Slot.Filled() {
			return ActionNone
		}
		if !c.FromPointer && c.Slot.Menu.HasRecipe() {
			return ActionOpenCooking
		}
		return ActionToggleTooltip
	}
}
