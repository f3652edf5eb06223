package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brpalette/brpalette/internal/genai"
	"github.com/brpalette/brpalette/internal/metrics"
	"github.com/brpalette/brpalette/internal/palette"
)

const fiveColors = `{"colors":[
	{"hex":"#F5EFE6","name":"Background"},
	{"hex":"#2B2D42","name":"Text"},
	{"hex":"#D9E4EC","name":"Subtle"},
	{"hex":"#5FA8D3","name":"Interactive"},
	{"hex":"#F4A259","name":"Primary"}]}`

// fakeModel returns canned text and records the last request.
type fakeModel struct {
	text string
	err  error
	last genai.Request
}

func (f *fakeModel) GenerateJSON(ctx context.Context, req genai.Request) (string, error) {
	f.last = req
	return f.text, f.err
}

func TestGeneratePalette_Success(t *testing.T) {
	model := &fakeModel{text: fiveColors}
	g := New(model, Options{})

	p, err := g.GeneratePalette(context.Background(), "Serene coastal sunrise", palette.Dark)
	require.NoError(t, err)

	assert.Equal(t, "Serene coastal sunrise", p.Prompt)
	require.Len(t, p.Colors, palette.Size)
	for _, c := range p.Colors {
		assert.True(t, palette.ValidHex(c.Hex), c.Hex)
	}
	assert.Equal(t, palette.Color{Hex: "#F5EFE6", Name: "Background"}, p.Colors[0])
	assert.Equal(t, palette.Color{Hex: "#F4A259", Name: "Primary"}, p.Colors[4])
	assert.NotEmpty(t, p.ID)

	assert.Equal(t, genai.DefaultModel, model.last.Model)
	assert.Equal(t, 0.8, model.last.Temperature)
	assert.Contains(t, model.last.Prompt, "dark theme")
	assert.Contains(t, model.last.Prompt, `"Serene coastal sunrise"`)
	assert.Equal(t, []string{"colors"}, model.last.Schema.Required)
}

func TestGeneratePalette_UniqueIDs(t *testing.T) {
	g := New(&fakeModel{text: fiveColors}, Options{})
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		p, err := g.GeneratePalette(context.Background(), "same", palette.Light)
		require.NoError(t, err)
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestGeneratePalette_ValidationFailures(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantReason string
		wantEntry  string
	}{
		{"not json", `{"colors": [`, "invalid data format", ""},
		{"missing colors", `{"palette": []}`, "expected 5 colors", ""},
		{"colors not array", `{"colors": "red"}`, "expected 5 colors", ""},
		{"top level array", `[1,2,3]`, "expected 5 colors", ""},
		{"four colors", `{"colors":[
			{"hex":"#000000","name":"A"},{"hex":"#111111","name":"B"},
			{"hex":"#222222","name":"C"},{"hex":"#333333","name":"D"}]}`, "expected 5 colors", ""},
		{"six colors", `{"colors":[
			{"hex":"#000000","name":"A"},{"hex":"#111111","name":"B"},
			{"hex":"#222222","name":"C"},{"hex":"#333333","name":"D"},
			{"hex":"#444444","name":"E"},{"hex":"#555555","name":"F"}]}`, "expected 5 colors", ""},
		{"numeric hex", `{"colors":[
			{"hex":"#000000","name":"A"},{"hex":123456,"name":"B"},
			{"hex":"#222222","name":"C"},{"hex":"#333333","name":"D"},
			{"hex":"#444444","name":"E"}]}`, "invalid color object", `{"hex":123456,"name":"B"}`},
		{"missing name", `{"colors":[
			{"hex":"#000000","name":"A"},{"hex":"#111111","name":"B"},
			{"hex":"#222222"},{"hex":"#333333","name":"D"},
			{"hex":"#444444","name":"E"}]}`, "invalid color object", `{"hex":"#222222"}`},
		{"shorthand hex", `{"colors":[
			{"hex":"#000","name":"A"},{"hex":"#111111","name":"B"},
			{"hex":"#222222","name":"C"},{"hex":"#333333","name":"D"},
			{"hex":"#444444","name":"E"}]}`, "invalid color object", `{"hex":"#000","name":"A"}`},
		{"first violation wins", `{"colors":[
			{"hex":"#000000","name":"A"},{"hex":"nope","name":"B"},
			{"hex":"bad","name":"C"},{"hex":"#333333","name":"D"},
			{"hex":"#444444","name":"E"}]}`, "invalid color object", `{"hex":"nope","name":"B"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(&fakeModel{text: tt.text}, Options{})
			_, err := g.GeneratePalette(context.Background(), "x", palette.Light)
			require.Error(t, err)

			var gf *GenerationFailure
			require.True(t, errors.As(err, &gf), "want GenerationFailure, got %T", err)
			assert.Equal(t, MsgPaletteFailed, err.Error())

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want ValidationError cause")
			assert.Equal(t, tt.wantReason, ve.Reason)
			if tt.wantEntry != "" {
				assert.JSONEq(t, tt.wantEntry, string(ve.Entry))
			}
		})
	}
}

func TestGeneratePalette_RateLimited(t *testing.T) {
	cause := &genai.StatusError{Code: http.StatusTooManyRequests, RetryAfter: 30 * time.Second}
	g := New(&fakeModel{err: cause}, Options{})

	_, err := g.GeneratePalette(context.Background(), "x", palette.Light)
	var rl *RateLimitError
	require.True(t, errors.As(err, &rl))
	assert.Equal(t, MsgRateLimited, err.Error())
	assert.Equal(t, 30*time.Second, rl.RetryAfter)
	assert.ErrorIs(t, err, cause)
}

func TestGeneratePalette_TransportFailure(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	g := New(&fakeModel{err: cause}, Options{})

	_, err := g.GeneratePalette(context.Background(), "x", palette.Light)
	var gf *GenerationFailure
	require.True(t, errors.As(err, &gf))
	assert.Equal(t, MsgPaletteFailed, gf.Message)
	assert.ErrorIs(t, err, cause)

	var rl *RateLimitError
	assert.False(t, errors.As(err, &rl))
}

func TestGeneratePalette_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	g := New(&fakeModel{text: fiveColors}, Options{}).WithMetrics(m)
	_, err := g.GeneratePalette(context.Background(), "x", palette.Light)
	require.NoError(t, err)

	g = New(&fakeModel{text: "{}"}, Options{}).WithMetrics(m)
	_, err = g.GeneratePalette(context.Background(), "x", palette.Light)
	require.Error(t, err)

	g = New(&fakeModel{err: &genai.StatusError{Code: 429}}, Options{}).WithMetrics(m)
	_, err = g.GeneratePalette(context.Background(), "x", palette.Light)
	require.Error(t, err)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	for _, outcome := range []string{metrics.OutcomeOK, metrics.OutcomeInvalid, metrics.OutcomeRateLimited} {
		want := fmt.Sprintf(`brpalette_generation_requests_total{kind="palette",outcome="%s"} 1`, outcome)
		assert.Contains(t, string(body), want)
	}
}

func TestPalettePrompt_MentionsSemanticNames(t *testing.T) {
	prompt := palettePrompt("a playful brand for kids", palette.Light)
	for _, want := range []string{"light theme", "exactly 5 colors", "Background", "Primary", "start with '#'"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
