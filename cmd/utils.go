package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/brpalette/brpalette/internal/app"
	"github.com/brpalette/brpalette/internal/colorutil"
	"github.com/brpalette/brpalette/internal/palette"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	mutedColor   = color.New(color.Faint)
)

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func printError(w io.Writer, format string, args ...any) {
	_, _ = errorColor.Fprintf(w, "Error: "+format+"\n", args...)
}

func printInfo(w io.Writer, format string, args ...any) {
	_, _ = infoColor.Fprintf(w, format+"\n", args...)
}

// printPalette writes a palette as a title line followed by one swatch line
// per colour.
func printPalette(w io.Writer, p palette.Palette) {
	_, _ = color.New(color.Bold).Fprintf(w, "%s", p.Prompt)
	_, _ = mutedColor.Fprintf(w, "  [%s]\n", p.ShortID())
	for _, c := range p.Colors {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(c.Hex)).
			Foreground(lipgloss.Color(colorutil.ContrastColor(c.Hex))).
			Render(" " + strings.ToUpper(c.Hex) + " ")
		_, _ = fmt.Fprintf(w, "  %s  %s\n", swatch, c.Name)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolvePalette finds a palette by share link, full ID or short ID.
func resolvePalette(saved []palette.Palette, ref string) (palette.Palette, error) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, palette.ShareMarker) {
		return palette.DecodeShareLink(ref)
	}
	p, err := palette.Lookup(saved, ref)
	if errors.Is(err, palette.ErrNoMatch) {
		return palette.Palette{}, fmt.Errorf("%w: %s", app.ErrNotFound, ref)
	}
	return p, err
}

// themeFlag reads a --theme value. Empty means fallback, the app theme.
func themeFlag(value string, fallback palette.Theme) (palette.Theme, error) {
	if value == "" {
		return fallback, nil
	}
	t, ok := palette.ParseTheme(value)
	if !ok {
		return "", fmt.Errorf("invalid theme %q (want light or dark)", value)
	}
	return t, nil
}
