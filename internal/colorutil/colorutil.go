// Package colorutil holds the lenient hex colour helpers used to pick readable text
// colours and hover shades. Malformed input never produces an error.
package colorutil

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// DefaultText is returned by ContrastColor for input it cannot parse.
	DefaultText = "#111827"
	// DarkText is used on light backgrounds.
	DarkText = "#1f2937"
	// LightText is used on dark backgrounds.
	LightText = "#f9fafb"
)

// ContrastColor returns a text colour that reads well on top of hex.
func ContrastColor(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return DefaultText
	}
	if Luminance(r, g, b) > 0.5 {
		return DarkText
	}
	return LightText
}

// Luminance is the weighted channel sum used by ContrastColor, in [0, 1].
func Luminance(r, g, b int) float64 {
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 255
}

// ShadeColor scales every channel of hex by (100+percent)/100. Negative percent
// darkens, positive lightens. Channels clamp to [0, 255]. Input that is not
// "#rgb" or "#rrggbb" is returned unchanged.
func ShadeColor(hex string, percent int) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	factor := float64(100+percent) / 100
	return fmt.Sprintf("#%02x%02x%02x", scale(r, factor), scale(g, factor), scale(b, factor))
}

func scale(channel int, factor float64) int {
	v := int(math.Floor(float64(channel)*factor + 0.5))
	return max(0, min(255, v))
}

// parseHex accepts "#rgb" and "#rrggbb" (any case).
func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) == 0 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	digits := hex[1:]
	switch len(digits) {
	case 3:
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}

	var channels [3]int
	for i := range channels {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		channels[i] = int(v)
	}
	return channels[0], channels[1], channels[2], true
}
