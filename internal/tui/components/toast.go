package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/brpalette/brpalette/internal/tui/colors"
)

// Toast renders a short-lived notification.
func Toast(message string, width int) string {
	if message == "" {
		return ""
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colors.StateOK).
		Foreground(colors.Text).
		Padding(0, 2)
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render("✓ " + message)
}
