package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/tui/colors"
)

const (
	modalWidth      = 56
	modalStripWidth = 30
)

// ConfirmationKeyMap is the yes/no pair shown under a confirmation.
type ConfirmationKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func (k ConfirmationKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

func (k ConfirmationKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ConfirmationModal asks before a destructive action on a palette. Palette
// may be nil when the target is already gone; only the message is shown then.
type ConfirmationModal struct {
	Title   string
	Message string
	Palette *palette.Palette
	Keys    ConfirmationKeyMap
	Help    help.Model
	Accent  lipgloss.TerminalColor
	Width   int
}

// NewDeleteModal is the confirmation shown before removing a saved palette.
func NewDeleteModal(p *palette.Palette, keys ConfirmationKeyMap) ConfirmationModal {
	return ConfirmationModal{
		Title:   "Delete Palette",
		Message: "Remove this palette from your saved collection?",
		Palette: p,
		Keys:    keys,
		Help:    help.New(),
		Accent:  colors.StateError,
		Width:   modalWidth,
	}
}

// View renders the body: message, then the palette prompt and strip.
func (m ConfirmationModal) View() string {
	inner := m.innerWidth()
	lines := []string{lipgloss.NewStyle().Width(inner).Align(lipgloss.Center).Render(m.Message)}

	if m.Palette != nil {
		prompt := lipgloss.NewStyle().
			Foreground(colors.Accent).
			Bold(true).
			Render(truncate(m.Palette.Prompt, inner))
		id := lipgloss.NewStyle().Foreground(colors.Muted).Render(m.Palette.ShortID())
		strip := NewStripModel(m.Palette.Hexes(), min(modalStripWidth, inner)).View()
		lines = append(lines, "", prompt, strip, id)
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// Centered draws the modal box in the middle of a width x height area with
// the key help on its last line.
func (m ConfirmationModal) Centered(width, height int) string {
	title := lipgloss.NewStyle().Foreground(m.Accent).Bold(true).Render(m.Title)
	keys := lipgloss.NewStyle().
		Foreground(colors.Muted).
		Width(m.innerWidth()).
		Align(lipgloss.Center).
		Render(m.Help.View(m.Keys))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(m.Accent).
		Padding(1, 4).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, "", m.View(), "", keys))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// innerWidth is Width minus the border and horizontal padding.
func (m ConfirmationModal) innerWidth() int {
	w := m.Width
	if w <= 0 {
		w = modalWidth
	}
	return max(w-10, 10)
}
