package palette

import (
	"fmt"
	"regexp"
	"strings"
)

// ShareMarker prefixes the URL fragment that carries a share token.
const ShareMarker = "#palette="

var shareTokenPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ShareLinkParseError describes why a fragment is not a valid share link.
type ShareLinkParseError struct {
	Input  string
	Reason string
}

func (e *ShareLinkParseError) Error() string {
	return fmt.Sprintf("invalid share link %q: %s", e.Input, e.Reason)
}

// ShareToken encodes the palette as comma separated hex codes without '#'.
func ShareToken(p Palette) string {
	hexes := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexes[i] = strings.TrimPrefix(c.Hex, "#")
	}
	return strings.Join(hexes, ",")
}

// ShareLink appends the share fragment to baseURL. Any existing fragment on
// baseURL is dropped.
func ShareLink(baseURL string, p Palette) string {
	if i := strings.IndexByte(baseURL, '#'); i >= 0 {
		baseURL = baseURL[:i]
	}
	return baseURL + ShareMarker + ShareToken(p)
}

// DecodeShareLink parses a full link or a bare "#palette=..." fragment into a
// palette named "Color 1".."Color N" with the shared-palette prompt.
func DecodeShareLink(link string) (Palette, error) {
	link = strings.TrimSpace(link)
	i := strings.IndexByte(link, '#')
	if i < 0 {
		return Palette{}, &ShareLinkParseError{Input: link, Reason: "missing fragment"}
	}
	fragment := link[i:]
	if !strings.HasPrefix(fragment, ShareMarker) {
		return Palette{}, &ShareLinkParseError{Input: link, Reason: "fragment does not start with " + ShareMarker}
	}

	tokens := strings.Split(strings.TrimPrefix(fragment, ShareMarker), ",")
	colors := make([]Color, 0, len(tokens))
	for n, tok := range tokens {
		if !shareTokenPattern.MatchString(tok) {
			return Palette{}, &ShareLinkParseError{Input: link, Reason: fmt.Sprintf("token %d %q is not a 6-digit hex code", n+1, tok)}
		}
		colors = append(colors, Color{Hex: "#" + tok, Name: fmt.Sprintf("Color %d", n+1)})
	}
	return New(SharedPrompt, colors), nil
}
