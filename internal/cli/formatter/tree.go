package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Done   bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Done entries get a green ✔ prefix and detail badges are
// right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Done {
			title = StyleGreen.Render("✔ ") + Dim(title)
		}
		content := prefix + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}
	return b.String()
}

// ListTree renders a list with its items below it.
func ListTree(l domain.List) string {
	items := []TreeItem{{Title: Bold(l.DisplayName()), Detail: Money(l.TotalCost)}}
	for i, it := range l.ListItems {
		name := fmt.Sprintf("#%d", it.ProductID)
		if it.Product != nil {
			name = it.Product.Name
		}
		items = append(items, TreeItem{
			Title:  name,
			Level:  1,
			IsLast: i == len(l.ListItems)-1,
			Done:   it.IsBought,
			Detail: strings.TrimSpace(it.Quantity.String() + " " + it.Unit),
		})
	}
	return RenderTree(items)
}
