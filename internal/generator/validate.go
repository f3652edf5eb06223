package generator

import (
	"encoding/json"
	"fmt"

	"github.com/brpalette/brpalette/internal/palette"
)

// decodeDocument parses the model text. Any syntactically valid JSON is
// accepted here; non-objects simply have no fields.
func decodeDocument(text string) (map[string]any, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &ValidationError{Reason: reasonInvalidData}
	}
	obj, _ := doc.(map[string]any)
	return obj, nil
}

// parsePaletteResponse validates {"colors": [5 x {hex, name}]}.
func parsePaletteResponse(text string) ([]palette.Color, error) {
	doc, err := decodeDocument(text)
	if err != nil {
		return nil, err
	}
	entries, ok := doc["colors"].([]any)
	if !ok || len(entries) != palette.Size {
		return nil, &ValidationError{Reason: reasonExpectedFive}
	}
	return parseColors(entries, reasonInvalidColor)
}

// parseVariationsResponse validates {"palettes": [n x {"colors": [...]}]}.
func parseVariationsResponse(text string, want int) ([][]palette.Color, error) {
	doc, err := decodeDocument(text)
	if err != nil {
		return nil, &ValidationError{Reason: reasonInvalidFormat}
	}
	entries, ok := doc["palettes"].([]any)
	if !ok {
		return nil, &ValidationError{Reason: reasonInvalidFormat}
	}
	if len(entries) != want {
		return nil, &ValidationError{Reason: reasonExpectedFour}
	}

	out := make([][]palette.Color, 0, len(entries))
	for i, entry := range entries {
		obj, _ := entry.(map[string]any)
		colors, ok := obj["colors"].([]any)
		if !ok || len(colors) != palette.Size {
			return nil, &ValidationError{Reason: fmt.Sprintf(reasonVariationColor, i+1), Entry: rawEntry(entry)}
		}
		parsed, err := parseColors(colors, reasonInvalidVarHex)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// parseColors stops at the first entry whose hex or name is unusable.
func parseColors(entries []any, reason string) ([]palette.Color, error) {
	colors := make([]palette.Color, 0, len(entries))
	for _, entry := range entries {
		obj, _ := entry.(map[string]any)
		hex, hexOK := obj["hex"].(string)
		name, nameOK := obj["name"].(string)
		if !hexOK || !nameOK || !palette.ValidHex(hex) {
			return nil, &ValidationError{Reason: reason, Entry: rawEntry(entry)}
		}
		colors = append(colors, palette.Color{Hex: hex, Name: name})
	}
	return colors, nil
}

func rawEntry(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
