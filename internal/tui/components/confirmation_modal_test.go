package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/brpalette/brpalette/internal/palette"
)

var confirmKeys = ConfirmationKeyMap{
	Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
	Cancel:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
}

func TestDeleteModal_ShowsPalette(t *testing.T) {
	p := palette.New("Misty forest morning", rowColors)
	out := NewDeleteModal(&p, confirmKeys).Centered(80, 24)

	for _, want := range []string{"Delete Palette", "Remove this palette", "Misty forest morning", p.ShortID(), "yes", "no"} {
		if !strings.Contains(out, want) {
			t.Errorf("modal is missing %q", want)
		}
	}
	if h := lipgloss.Height(out); h != 24 {
		t.Errorf("expected the modal placed in 24 rows, got %d", h)
	}
}

func TestDeleteModal_WithoutPalette(t *testing.T) {
	out := NewDeleteModal(nil, confirmKeys).View()
	if !strings.Contains(out, "Remove this palette") {
		t.Errorf("unexpected body %q", out)
	}
	if strings.Contains(out, "█") {
		t.Error("no strip should be drawn without a palette")
	}
}
