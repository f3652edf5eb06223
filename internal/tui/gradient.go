package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// ApplyGradient colours text rune by rune along the given hex stops, blending
// in Luv space. Unparseable stops are skipped; with none left the text is
// returned bold but uncoloured.
func ApplyGradient(text string, stops ...string) string {
	var parsed []colorful.Color
	for _, s := range stops {
		c, err := colorful.Hex(s)
		if err == nil {
			parsed = append(parsed, c)
		}
	}

	runes := []rune(text)
	if len(parsed) == 0 || len(runes) == 0 {
		return LogoStyle.Render(text)
	}

	var b strings.Builder
	for i, r := range runes {
		// Interpolation factor t [0, 1] across the whole string
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := gradientAt(parsed, t)
		b.WriteString(LogoStyle.Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

func gradientAt(stops []colorful.Color, t float64) colorful.Color {
	if len(stops) == 1 {
		return stops[0]
	}
	segments := len(stops) - 1
	pos := t * float64(segments)
	i := int(pos)
	if i >= segments {
		return stops[segments]
	}
	return stops[i].BlendLuv(stops[i+1], pos-float64(i)).Clamped()
}
