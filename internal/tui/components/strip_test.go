package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestStrip_Empty(t *testing.T) {
	if got := NewStripModel(nil, 10).View(); got != "" {
		t.Errorf("expected empty strip, got %q", got)
	}
}

func TestStrip_WidthAndShares(t *testing.T) {
	hexes := []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#00ffff"}
	model := NewStripModel(hexes, 20)

	out := model.View()
	if w := lipgloss.Width(out); w != 20 {
		t.Fatalf("expected width 20, got %d", w)
	}

	counts := map[string]int{}
	for i := 0; i < 20; i++ {
		counts[model.colorAt(i, 20)]++
	}
	for _, h := range hexes {
		if counts[h] != 4 {
			t.Errorf("colour %s got %d cells, want 4", h, counts[h])
		}
	}
}

func TestStrip_NarrowerThanPalette(t *testing.T) {
	hexes := []string{"#111111", "#222222", "#333333", "#444444", "#555555"}
	out := NewStripModel(hexes, 2).View()
	if w := lipgloss.Width(out); w != 5 {
		t.Errorf("strip should widen to one cell per colour, got %d", w)
	}
	if strings.Count(out, "█") != 5 {
		t.Errorf("expected 5 blocks, got %q", out)
	}
}
