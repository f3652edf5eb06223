package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one label in a tab bar.
type Tab struct {
	Label string
	Count int // shown as "Label (Count)" when >= 0
	// Dot is an optional hex colour drawn as a marker before the label, e.g.
	// the preview page colour for a theme tab.
	Dot string
}

func (t Tab) text() string {
	if t.Count >= 0 {
		return fmt.Sprintf("%s (%d)", t.Label, t.Count)
	}
	return t.Label
}

// RenderTabBar joins tabs horizontally; active selects the highlighted one.
// An out of range active highlights nothing.
func RenderTabBar(tabs []Tab, active int, activeStyle, inactiveStyle lipgloss.Style) string {
	rendered := make([]string, 0, len(tabs))
	for i, t := range tabs {
		style := inactiveStyle
		if i == active {
			style = activeStyle
		}
		label := t.text()
		if t.Dot != "" {
			label = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dot)).Render("●") + " " + label
		}
		rendered = append(rendered, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
}
