// Package palette defines the palette data model shared by generation, storage,
// sharing and rendering.
package palette

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Size is the number of colours in a generated palette.
const Size = 5

// SharedPrompt marks palettes that were imported from a share link.
const SharedPrompt = "Shared Palette"

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Color is a single named colour. Hex is "#rrggbb".
type Color struct {
	Hex  string `json:"hex" yaml:"hex" toml:"hex"`
	Name string `json:"name" yaml:"name" toml:"name"`
}

// Palette is an ordered set of named colours plus the description that produced it.
type Palette struct {
	ID     string  `json:"id" yaml:"id" toml:"id"`
	Prompt string  `json:"prompt" yaml:"prompt" toml:"prompt"`
	Colors []Color `json:"colors" yaml:"colors" toml:"colors"`
}

// Theme is the light/dark mode a palette is generated or previewed for.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme normalizes s. Anything other than "light" or "dark" is rejected.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func (t Theme) String() string { return string(t) }

// ValidHex reports whether s is a "#rrggbb" colour.
func ValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// NewID returns a unique, creation-time ordered palette ID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// New builds a palette with a fresh ID. The colour slice is copied.
func New(prompt string, colors []Color) Palette {
	return Palette{
		ID:     NewID(),
		Prompt: prompt,
		Colors: append([]Color(nil), colors...),
	}
}

// Hexes returns the colour codes in order.
func (p Palette) Hexes() []string {
	out := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.Hex
	}
	return out
}

// Clone returns a deep copy.
func (p Palette) Clone() Palette {
	p.Colors = append([]Color(nil), p.Colors...)
	return p
}

// ShortID is the last eight characters of the ID. The leading characters of a
// time-ordered ID repeat for palettes created close together; the tail is random.
func (p Palette) ShortID() string {
	if len(p.ID) > 8 {
		return p.ID[len(p.ID)-8:]
	}
	return p.ID
}

// Find returns the palette whose ID is exactly id.
func Find(list []Palette, id string) (Palette, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return Palette{}, false
}

// Lookup resolves a user-typed reference: an exact ID first, then a full ID
// or short ID compared without case. More than one loose match is an
// AmbiguousRefError; none is ErrNoMatch.
func Lookup(list []Palette, ref string) (Palette, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Palette{}, ErrNoMatch
	}
	if p, ok := Find(list, ref); ok {
		return p, nil
	}

	var matches []Palette
	for _, p := range list {
		if strings.EqualFold(p.ID, ref) || strings.EqualFold(p.ShortID(), ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return Palette{}, ErrNoMatch
	case 1:
		return matches[0], nil
	}
	ids := make([]string, len(matches))
	for i, p := range matches {
		ids[i] = p.ID
	}
	return Palette{}, &AmbiguousRefError{Ref: ref, IDs: ids}
}

// ErrNoMatch means no palette answers to a reference.
var ErrNoMatch = errors.New("no palette matches")

// AmbiguousRefError lists every palette a reference could mean.
type AmbiguousRefError struct {
	Ref string
	IDs []string
}

func (e *AmbiguousRefError) Error() string {
	return fmt.Sprintf("%q matches %d palettes (%s); use the full ID", e.Ref, len(e.IDs), strings.Join(e.IDs, ", "))
}
