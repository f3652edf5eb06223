package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StripModel draws a palette as a row of coloured blocks stretched to Width.
type StripModel struct {
	Hexes []string
	Width int // render width in cells
}

// NewStripModel creates a new palette strip
func NewStripModel(hexes []string, width int) StripModel {
	return StripModel{Hexes: hexes, Width: width}
}

// colorAt maps visual cell i onto a source colour so every colour gets an
// even share of the width.
func (m StripModel) colorAt(i, cells int) string {
	n := len(m.Hexes)
	idx := int(float64(i) * float64(n) / float64(cells))
	if idx >= n {
		idx = n - 1
	}
	return m.Hexes[idx]
}

// View renders the strip on a single line
func (m StripModel) View() string {
	if len(m.Hexes) == 0 {
		return ""
	}

	cells := m.Width
	if cells < len(m.Hexes) {
		cells = len(m.Hexes)
	}

	var s strings.Builder
	block := "█"

	// Group consecutive cells of the same colour into one styled run.
	runStart := 0
	for i := 1; i <= cells; i++ {
		if i < cells && m.colorAt(i, cells) == m.colorAt(runStart, cells) {
			continue
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colorAt(runStart, cells)))
		s.WriteString(style.Render(strings.Repeat(block, i-runStart)))
		runStart = i
	}

	return s.String()
}
