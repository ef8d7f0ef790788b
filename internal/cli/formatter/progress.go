package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func blocks(pct float64, width int) (filled, empty int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	filled = int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return filled, width - filled
}

// RenderProgress renders a cooking progress bar like [████░░░░] 45%.
func RenderProgress(pct float64, width int) string {
	filled, empty := blocks(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}
	return fmt.Sprintf("[%s] %3.0f%%", StylePurple.Render(bar), pct*100)
}

// RenderCompactBar renders a bracketless bar for a timer's remaining share.
// The bar turns yellow below a third and red when empty. dim renders it
// muted, as for a paused timer.
func RenderCompactBar(remaining float64, width int, dim bool) string {
	filled, empty := blocks(remaining, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	switch {
	case dim:
		return StyleDim.Render(bar)
	case filled == 0:
		return StyleRed.Render(bar)
	case remaining < 0.33:
		return StyleYellow.Render(bar)
	default:
		return StyleGreen.Render(bar)
	}
}
