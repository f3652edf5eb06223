// Package preview maps a palette onto sample UI elements: page, card, input,
// toggle and three buttons, each with hover and focus colours.
package preview

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/brpalette/brpalette/internal/colorutil"
	"github.com/brpalette/brpalette/internal/palette"
)

const (
	hoverShade    = -10
	darkPageShade = -80
	// focusAlpha matches the "40" alpha suffix of the focus ring colour.
	focusAlpha = 0x40
	mutedAlpha = 0.7
)

// Button colours at rest and on hover.
type Button struct {
	Background      string
	Foreground      string
	Border          string
	HoverBackground string
	HoverForeground string
}

// Scheme is every colour the preview needs, derived from the palette roles
// background, text, subtle, interactive, primary (in that order).
type Scheme struct {
	Mode palette.Theme

	Page      string
	Text      string
	MutedText string

	CardBackground string
	CardText       string

	InputBackground  string
	InputBorder      string
	InputText        string
	InputFocusBorder string
	// FocusRing is the primary colour with alpha, "#rrggbb40".
	FocusRing string
	// FocusRingOnPage is FocusRing composited over the page, for terminals
	// without alpha.
	FocusRingOnPage string

	ToggleOn  string
	ToggleOff string

	Primary   Button
	Secondary Button
	Outline   Button
}

// NewScheme derives the preview colours for p in mode. It reports false when p
// has fewer than five colours; nothing should be rendered then.
func NewScheme(p palette.Palette, mode palette.Theme) (Scheme, bool) {
	if len(p.Colors) < palette.Size {
		return Scheme{}, false
	}
	bg := p.Colors[0].Hex
	text := p.Colors[1].Hex
	subtle := p.Colors[2].Hex
	interactive := p.Colors[3].Hex
	primary := p.Colors[4].Hex

	page := bg
	if mode == palette.Dark {
		page = colorutil.ShadeColor(bg, darkPageShade)
	}

	return Scheme{
		Mode:      mode,
		Page:      page,
		Text:      text,
		MutedText: blend(page, text, mutedAlpha),

		CardBackground: subtle,
		CardText:       colorutil.ContrastColor(subtle),

		InputBackground:  bg,
		InputBorder:      subtle,
		InputText:        text,
		InputFocusBorder: primary,
		FocusRing:        primary + "40",
		FocusRingOnPage:  blend(page, primary, focusAlpha/255.0),

		ToggleOn:  interactive,
		ToggleOff: subtle,

		Primary: Button{
			Background:      primary,
			Foreground:      colorutil.ContrastColor(primary),
			HoverBackground: colorutil.ShadeColor(primary, hoverShade),
			HoverForeground: colorutil.ContrastColor(primary),
		},
		Secondary: Button{
			Background:      interactive,
			Foreground:      colorutil.ContrastColor(interactive),
			HoverBackground: colorutil.ShadeColor(interactive, hoverShade),
			HoverForeground: colorutil.ContrastColor(interactive),
		},
		Outline: Button{
			Background:      page,
			Foreground:      primary,
			Border:          primary,
			HoverBackground: primary,
			HoverForeground: colorutil.ContrastColor(primary),
		},
	}, true
}

// blend composites top over base at alpha. Unparseable input yields base.
func blend(base, top string, alpha float64) string {
	b, err := colorful.Hex(base)
	if err != nil {
		return base
	}
	t, err := colorful.Hex(top)
	if err != nil {
		return base
	}
	return b.BlendRgb(t, alpha).Clamped().Hex()
}
