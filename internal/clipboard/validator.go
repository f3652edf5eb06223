package clipboard

import (
	"net/url"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/brpalette/brpalette/internal/palette"
)

var (
	clipboardReadAll  = clipboard.ReadAll
	clipboardWriteAll = clipboard.WriteAll
)

const maxLinkLength = 2048

type Validator struct {
	allowedSchemes map[string]bool
}

func NewValidator() *Validator {
	return &Validator{
		allowedSchemes: map[string]bool{"http": true, "https": true},
	}
}

// ExtractShareLink returns text trimmed when it is a decodable share link,
// either a full http(s) URL or a bare "#palette=" fragment, and "" otherwise.
func (v *Validator) ExtractShareLink(text string) string {
	text = strings.TrimSpace(text)

	// Quick reject: too long, contains newlines, or no fragment at all
	if text == "" || len(text) > maxLinkLength || strings.ContainsAny(text, "\n\r") {
		return ""
	}
	if !strings.Contains(text, palette.ShareMarker) {
		return ""
	}

	if !strings.HasPrefix(text, palette.ShareMarker) {
		parsed, err := url.Parse(text)
		if err != nil || parsed.Host == "" || !v.allowedSchemes[parsed.Scheme] {
			return ""
		}
	}

	if _, err := palette.DecodeShareLink(text); err != nil {
		return ""
	}
	return text
}

// ReadShareLink returns the share link on the clipboard, or "".
func ReadShareLink() string {
	text, err := clipboardReadAll()
	if err != nil {
		return ""
	}
	validator := NewValidator()
	return validator.ExtractShareLink(text)
}

// Copy places text on the system clipboard.
func Copy(text string) error {
	return clipboardWriteAll(text)
}
