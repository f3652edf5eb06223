package generator

import (
	"fmt"
	"strings"

	"github.com/brpalette/brpalette/internal/genai"
	"github.com/brpalette/brpalette/internal/palette"
)

func palettePrompt(description string, theme palette.Theme) string {
	return fmt.Sprintf(`You are an expert color palette generator for designers. Based on the following description, create a beautiful and cohesive color palette suitable for a %s theme. The palette must consist of exactly %d colors. Assign a semantic name to each color (e.g., "Background", "Text", "Subtle", "Interactive", "Primary").

Description: %q

Provide the response in the specified JSON format. The hex codes must be valid and start with '#'. The names should be concise and descriptive.`,
		theme, palette.Size, description)
}

func variationsPrompt(base palette.Palette, theme palette.Theme) string {
	pairs := make([]string, len(base.Colors))
	for i, c := range base.Colors {
		pairs[i] = c.Name + ": " + c.Hex
	}
	return fmt.Sprintf(`You are an expert color palette generator. I have a color palette for the theme %q. The original colors are: %s.

Please generate %d subtle, beautiful variations of this palette. Each variation should maintain the original theme's essence but offer slightly different shades or accent colors suitable for a %s theme.

Each variation must consist of exactly %d colors, each with a semantic name and hex code.

Provide the response in the specified JSON format. Ensure the hex codes are valid and start with '#'.`,
		base.Prompt, strings.Join(pairs, ", "), VariationCount, theme, palette.Size)
}

func colorSchema(nameHelp string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"hex":  {Type: genai.TypeString, Description: `The hex code of the color, e.g., "#RRGGBB".`},
			"name": {Type: genai.TypeString, Description: nameHelp},
		},
		Required: []string{"hex", "name"},
	}
}

func colorsSchema(desc, nameHelp string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: desc,
		Items:       colorSchema(nameHelp),
	}
}

func paletteSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"colors": colorsSchema(
				fmt.Sprintf("An array of %d color objects, each with a hex code and a semantic name.", palette.Size),
				`A semantic name for the color (e.g., "Background").`,
			),
		},
		Required: []string{"colors"},
	}
}

func variationsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"palettes": {
				Type:        genai.TypeArray,
				Description: fmt.Sprintf("An array of %d palette variations.", VariationCount),
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"colors": colorsSchema(
							fmt.Sprintf("An array of %d color objects, each with a hex code and name.", palette.Size),
							"A semantic name for the color.",
						),
					},
					Required: []string{"colors"},
				},
			},
		},
		Required: []string{"palettes"},
	}
}
