// Package generator turns a mood description into validated palettes by asking
// the generative model for structured JSON.
package generator

import (
	"context"
	"errors"
	"time"

	"github.com/brpalette/brpalette/internal/genai"
	"github.com/brpalette/brpalette/internal/metrics"
	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/utils"
)

// VariationCount is the number of alternatives requested per base palette.
const VariationCount = 4

// Options tune the model requests.
type Options struct {
	Model                string
	PaletteTemperature   float64
	VariationTemperature float64
}

// DefaultOptions matches the tuning the prompts were written for.
func DefaultOptions() Options {
	return Options{
		Model:                genai.DefaultModel,
		PaletteTemperature:   0.8,
		VariationTemperature: 0.9,
	}
}

// Generator builds palette and variation requests. It holds no per-request
// state; callers serialize requests themselves.
type Generator struct {
	model   genai.Model
	opts    Options
	metrics *metrics.Metrics
}

// New returns a Generator backed by model. Zero option fields take defaults.
func New(model genai.Model, opts Options) *Generator {
	def := DefaultOptions()
	if opts.Model == "" {
		opts.Model = def.Model
	}
	if opts.PaletteTemperature == 0 {
		opts.PaletteTemperature = def.PaletteTemperature
	}
	if opts.VariationTemperature == 0 {
		opts.VariationTemperature = def.VariationTemperature
	}
	return &Generator{model: model, opts: opts}
}

// WithMetrics records request outcomes on m.
func (g *Generator) WithMetrics(m *metrics.Metrics) *Generator {
	g.metrics = m
	return g
}

// GeneratePalette asks for exactly five semantically named colours for theme.
func (g *Generator) GeneratePalette(ctx context.Context, description string, theme palette.Theme) (palette.Palette, error) {
	start := time.Now()
	text, err := g.model.GenerateJSON(ctx, genai.Request{
		Model:       g.opts.Model,
		Prompt:      palettePrompt(description, theme),
		Schema:      paletteSchema(),
		Temperature: g.opts.PaletteTemperature,
	})
	if err == nil {
		var colors []palette.Color
		colors, err = parsePaletteResponse(text)
		if err == nil {
			g.observe(metrics.KindPalette, nil, start)
			return palette.New(description, colors), nil
		}
	}

	g.observe(metrics.KindPalette, err, start)
	utils.Debug("Error generating palette for %q: %v", description, err)
	return palette.Palette{}, mapFailure(err, MsgPaletteFailed)
}

// GenerateVariations asks for four alternatives to base that keep its theme.
// Every variation inherits base.Prompt and gets its own ID.
func (g *Generator) GenerateVariations(ctx context.Context, base palette.Palette, theme palette.Theme) ([]palette.Palette, error) {
	start := time.Now()
	text, err := g.model.GenerateJSON(ctx, genai.Request{
		Model:       g.opts.Model,
		Prompt:      variationsPrompt(base, theme),
		Schema:      variationsSchema(),
		Temperature: g.opts.VariationTemperature,
	})
	if err == nil {
		var sets [][]palette.Color
		sets, err = parseVariationsResponse(text, VariationCount)
		if err == nil {
			g.observe(metrics.KindVariations, nil, start)
			out := make([]palette.Palette, len(sets))
			for i, colors := range sets {
				out[i] = palette.New(base.Prompt, colors)
			}
			return out, nil
		}
	}

	g.observe(metrics.KindVariations, err, start)
	utils.Debug("Error generating variations for %s: %v", base.ShortID(), err)
	return nil, mapFailure(err, MsgVariationsFailed)
}

func mapFailure(err error, generic string) error {
	if genai.IsRateLimited(err) {
		return &RateLimitError{RetryAfter: genai.RetryAfter(err), Err: err}
	}
	return &GenerationFailure{Message: generic, Err: err}
}

func (g *Generator) observe(kind string, err error, start time.Time) {
	outcome := metrics.OutcomeOK
	var ve *ValidationError
	switch {
	case err == nil:
	case genai.IsRateLimited(err):
		outcome = metrics.OutcomeRateLimited
	case errors.As(err, &ve):
		outcome = metrics.OutcomeInvalid
	default:
		outcome = metrics.OutcomeFailed
	}
	g.metrics.ObserveRequest(kind, outcome, time.Since(start))
}
