package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brpalette/brpalette/internal/colorutil"
	"github.com/brpalette/brpalette/internal/palette"
)

// Swatch renders one palette colour as a filled block labelled with its name
// and hex code in a readable contrast colour.
type Swatch struct {
	Color    palette.Color
	Width    int
	Height   int
	Selected bool
}

// View renders the swatch. Selection is shown with a thick border in the
// colour's contrast tone.
func (s Swatch) View() string {
	width, height := s.Width, s.Height
	if width < 8 {
		width = 8
	}
	if height < 3 {
		height = 3
	}

	fg := colorutil.ContrastColor(s.Color.Hex)
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(s.Color.Hex)).
		Foreground(lipgloss.Color(fg)).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Bottom)

	border := lipgloss.HiddenBorder()
	if s.Selected {
		border = lipgloss.ThickBorder()
	}
	style = style.Border(border).BorderForeground(lipgloss.Color(fg)).BorderBackground(lipgloss.Color(s.Color.Hex))

	name := truncate(s.Color.Name, width)
	hex := strings.ToUpper(s.Color.Hex)
	return style.Render(lipgloss.NewStyle().Bold(true).Render(name) + "\n" + hex)
}

// SwatchRow lays out a palette as adjacent swatches filling width.
func SwatchRow(colors []palette.Color, width, height, selected int) string {
	if len(colors) == 0 {
		return ""
	}
	// Borders take two cells per swatch.
	each := width/len(colors) - 2
	views := make([]string, len(colors))
	for i, c := range colors {
		views[i] = Swatch{Color: c, Width: each, Height: height, Selected: i == selected}.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
