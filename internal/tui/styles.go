package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/brpalette/brpalette/internal/tui/colors"
)

// Layout constants
const (
	InputWidth   = 48
	SidebarWidth = 34
	SwatchHeight = 5
	MinWidth     = 60
)

// === Layout Styles ===
var (
	// Standard pane border
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1)

	// Focus style for the active pane
	ActivePaneStyle = PaneStyle.
			BorderForeground(colors.Accent)

	// === Text Styles ===

	LogoStyle = lipgloss.NewStyle().
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(colors.Accent).
			Bold(true).
			MarginBottom(1)

	// Helper for bold titles inside panes
	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(colors.Accent).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colors.Muted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colors.StateError).
			Bold(true)

	BusyStyle = lipgloss.NewStyle().
			Foreground(colors.StateBusy)

	TabStyle = lipgloss.NewStyle().
			Foreground(colors.Muted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(colors.AccentAlt).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colors.AccentAlt).
			Padding(0, 1).
			Bold(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(colors.AccentAlt).
				Bold(true)

	RowStyle = lipgloss.NewStyle().
			Foreground(colors.Text)
)
