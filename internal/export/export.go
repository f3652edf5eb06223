// Package export writes a palette in formats other tools can consume.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/brpalette/brpalette/internal/palette"
)

// Format is an export encoding.
type Format string

const (
	JSON Format = "json"
	CSS  Format = "css"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// Formats lists the supported formats in help order.
var Formats = []Format{JSON, CSS, TOML, YAML}

// ParseFormat accepts a format name, case-insensitively. "yml" is an alias.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		return YAML, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want json, css, toml or yaml)", s)
}

// document is the shape shared by the structured formats.
type document struct {
	Palette palette.Palette `json:"palette" yaml:"palette" toml:"palette"`
}

// Write encodes p to w in format f.
func Write(w io.Writer, p palette.Palette, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case JSON:
		data, err = json.MarshalIndent(p, "", "  ")
		data = append(data, '\n')
	case CSS:
		data = cssVariables(p)
	case TOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(document{Palette: p})
		data = buf.Bytes()
	case YAML:
		data, err = yaml.Marshal(document{Palette: p})
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", f, err)
	}
	_, err = w.Write(data)
	return err
}

// Read decodes a palette previously written in a structured format.
func Read(data []byte, f Format) (palette.Palette, error) {
	var doc document
	var err error
	switch f {
	case JSON:
		err = json.Unmarshal(data, &doc.Palette)
	case TOML:
		err = toml.Unmarshal(data, &doc)
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return palette.Palette{}, fmt.Errorf("export: %s cannot be read back", f)
	}
	if err != nil {
		return palette.Palette{}, fmt.Errorf("export: decode %s: %w", f, err)
	}
	return doc.Palette, nil
}

var nonIdent = regexp.MustCompile(`[^a-z0-9]+`)

// cssVariables renders the palette as custom properties on :root. Names that
// slug to nothing or repeat fall back to color-N.
func cssVariables(p palette.Palette) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "/* %s */\n:root {\n", strings.ReplaceAll(p.Prompt, "*/", "* /"))
	seen := make(map[string]bool, len(p.Colors))
	for i, c := range p.Colors {
		name := strings.Trim(nonIdent.ReplaceAllString(strings.ToLower(c.Name), "-"), "-")
		if name == "" || seen[name] {
			name = fmt.Sprintf("color-%d", i+1)
		}
		seen[name] = true
		fmt.Fprintf(&b, "  --%s: %s;\n", name, strings.ToLower(c.Hex))
	}
	b.WriteString("}\n")
	return []byte(b.String())
}
