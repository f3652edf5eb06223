package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brpalette/brpalette/internal/app"
	"github.com/brpalette/brpalette/internal/config"
	"github.com/brpalette/brpalette/internal/genai"
	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/version"
)

const (
	fiveColors = `{"colors":[
	{"hex":"#F5EFE6","name":"Background"},
	{"hex":"#2B2D42","name":"Text"},
	{"hex":"#D9E4EC","name":"Subtle"},
	{"hex":"#5FA8D3","name":"Interactive"},
	{"hex":"#F4A259","name":"Primary"}]}`

	sharedLink = "https://brpalette.app/#palette=F5EFE6,2B2D42,D9E4EC,5FA8D3,F4A259"
)

// fakeModel answers palette and variation requests with fixed JSON.
type fakeModel struct {
	mu       sync.Mutex
	requests []genai.Request
	err      error
}

func (f *fakeModel) GenerateJSON(ctx context.Context, req genai.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	if req.Schema != nil && req.Schema.Properties["palettes"] != nil {
		sets := make([]string, 4)
		for i := range sets {
			sets[i] = variationColors(i + 1)
		}
		return `{"palettes":[` + strings.Join(sets, ",") + `]}`, nil
	}
	return fiveColors, nil
}

func variationColors(seed int) string {
	entries := make([]string, palette.Size)
	for i := range entries {
		entries[i] = fmt.Sprintf(`{"hex":"#%02x%02x%02x","name":"V%d"}`, seed*16, i*20, 180+i, i+1)
	}
	return `{"colors":[` + strings.Join(entries, ",") + `]}`
}

func isolateCLI(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("config dir isolation relies on XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"GEMINI_API_KEY", "API_KEY", "BRPALETTE_MODEL", "BRPALETTE_MODEL_URL", "BRPALETTE_LISTEN"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		globalSettings = config.DefaultSettings()
		globalEnv = config.Env{}
	})
}

func setupCLI(t *testing.T) *fakeModel {
	t.Helper()
	isolateCLI(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	fm := &fakeModel{}
	original := newModel
	newModel = func(*config.Settings, config.Env) (genai.Model, error) { return fm, nil }
	t.Cleanup(func() { newModel = original })
	return fm
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	require.NoError(t, err, "brpalette %s\n%s", strings.Join(args, " "), out)
	return out
}

func TestGenerate_PrintsPaletteAndLink(t *testing.T) {
	fm := setupCLI(t)

	out := mustRun(t, "generate", "serene", "coastal")

	assert.Contains(t, out, "serene coastal")
	assert.Contains(t, out, "#F5EFE6")
	assert.Contains(t, out, "Interactive")
	assert.Contains(t, out, "https://brpalette.app/#palette=F5EFE6,2B2D42,D9E4EC,5FA8D3,F4A259")

	require.Len(t, fm.requests, 1)
	assert.Contains(t, fm.requests[0].Prompt, "serene coastal")
	assert.Equal(t, 0.8, fm.requests[0].Temperature)
}

func TestGenerate_InvalidTheme(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "generate", "x", "--theme", "sepia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid theme")
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	isolateCLI(t)

	_, err := runCLI(t, "generate", "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, genai.ErrMissingAPIKey)
}

func TestGenerate_FailureMessage(t *testing.T) {
	fm := setupCLI(t)
	fm.err = &genai.StatusError{Code: 500, Message: "backend down"}

	_, err := runCLI(t, "generate", "storm")
	require.Error(t, err)
	assert.Equal(t, "Failed to generate palette from AI. The model may be unavailable or the request was blocked.", err.Error())
}

func TestSavedLifecycle(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "generate", "misty", "forest", "--save", "--json")
	var p palette.Palette
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	require.NotEmpty(t, p.ID)
	short := p.ShortID()

	list := mustRun(t, "saved", "ls")
	assert.Contains(t, list, short)
	assert.Contains(t, list, "misty forest")

	show := mustRun(t, "saved", "show", short)
	assert.Contains(t, show, "Background")

	link := mustRun(t, "share", short)
	assert.Equal(t, palette.ShareLink(config.DefaultShareBaseURL, p)+"\n", link)

	rm := mustRun(t, "saved", "rm", short)
	assert.Contains(t, rm, "Palette deleted.")

	assert.Contains(t, mustRun(t, "saved"), "No saved palettes yet.")
}

func TestSaved_UnknownID(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "saved", "show", "deadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestResolvePalette_AmbiguousShortID(t *testing.T) {
	saved := []palette.Palette{
		{ID: "1712345678902-1234abcd", Prompt: "b"},
		{ID: "1712345678901-1234abcd", Prompt: "a"},
	}

	_, err := resolvePalette(saved, "1234abcd")
	var amb *palette.AmbiguousRefError
	require.ErrorAs(t, err, &amb)
	assert.Len(t, amb.IDs, 2)
	assert.NotErrorIs(t, err, app.ErrNotFound)

	p, err := resolvePalette(saved, "1712345678901-1234abcd")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Prompt)

	_, err = resolvePalette(saved, "ffffffff")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestShareDecode(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "share", "decode", sharedLink)
	assert.Contains(t, out, palette.SharedPrompt)
	assert.Contains(t, out, "Color 1")
	assert.Contains(t, out, "#F4A259")

	_, err := runCLI(t, "share", "decode", "https://brpalette.app/#palette=F5EFE6,nothex")
	require.Error(t, err)
	var parseErr *palette.ShareLinkParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestVary_FromSavedPalette(t *testing.T) {
	fm := setupCLI(t)

	mustRun(t, "share", "decode", sharedLink, "--save")
	var saved []palette.Palette
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "saved", "--json")), &saved))
	require.Len(t, saved, 1)

	out := mustRun(t, "vary", saved[0].ShortID(), "--theme", "dark", "--json")
	var variations []palette.Palette
	require.NoError(t, json.Unmarshal([]byte(out), &variations))
	require.Len(t, variations, 4)
	for _, v := range variations {
		assert.Equal(t, palette.SharedPrompt, v.Prompt)
		assert.NotEqual(t, saved[0].ID, v.ID)
	}

	require.Len(t, fm.requests, 1)
	assert.Equal(t, 0.9, fm.requests[0].Temperature)
	assert.Contains(t, fm.requests[0].Prompt, "#F5EFE6")
}

func TestExportAndImport(t *testing.T) {
	setupCLI(t)

	mustRun(t, "share", "decode", sharedLink, "--save")
	var saved []palette.Palette
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "saved", "--json")), &saved))
	short := saved[0].ShortID()

	css := mustRun(t, "export", short, "--format", "css")
	assert.Contains(t, css, ":root {")
	assert.Contains(t, css, "--color-1: #f5efe6;")

	file := filepath.Join(t.TempDir(), "palette.yaml")
	mustRun(t, "export", short, "-f", "yaml", "-o", file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "palette:")

	mustRun(t, "saved", "rm", short)
	out := mustRun(t, "import", file)
	assert.Contains(t, out, "Palette saved!")

	out = mustRun(t, "import", file)
	assert.Contains(t, out, "Palette already saved.")

	assert.Contains(t, mustRun(t, "saved", "ls"), short)
}

func TestExport_UnknownFormat(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "export", sharedLink, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestPreview_ShareLink(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "preview", sharedLink, "--width", "60")
	assert.Contains(t, out, "Primary Action")
	assert.Contains(t, out, "Card Title")

	_, err := runCLI(t, "preview", "#palette=112233,445566")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 5 colors")
}

func TestContrastAndShade(t *testing.T) {
	setupCLI(t)

	assert.Equal(t, "#f9fafb\n", mustRun(t, "contrast", "#000000"))
	assert.Equal(t, "#1f2937\n", mustRun(t, "contrast", "#FFFFFF"))
	assert.Equal(t, "#111827\n", mustRun(t, "contrast", "nope"))

	assert.Equal(t, "#5697be\n", mustRun(t, "shade", "#5FA8D3", "-10"))
	assert.Equal(t, "#ffffff\n", mustRun(t, "shade", "#ffffff", "20"))

	_, err := runCLI(t, "shade", "#ffffff", "ten")
	require.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	setupCLI(t)

	paths := mustRun(t, "config", "path")
	assert.Contains(t, paths, config.GetSettingsPath())
	assert.Contains(t, paths, config.GetDBPath())

	show := mustRun(t, "config", "show")
	assert.Contains(t, show, "[General]")
	assert.Contains(t, show, "[Model]")
	assert.Contains(t, show, config.DefaultPrompt)
	assert.Contains(t, show, "set")

	initOut := mustRun(t, "config", "init")
	assert.Contains(t, initOut, "Wrote")
	assert.FileExists(t, config.GetSettingsPath())
	assert.Contains(t, mustRun(t, "config", "init"), "already exist")
}

func TestConfigShow_EnvOverrides(t *testing.T) {
	setupCLI(t)
	t.Setenv("BRPALETTE_MODEL", "gemini-test")

	out := mustRun(t, "config", "show", "--json")
	var s config.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "gemini-test", s.Model.Name)
}

func TestThemeResolution(t *testing.T) {
	assert.Equal(t, palette.Dark, settingsTheme("dark"))
	assert.Equal(t, palette.Light, settingsTheme("light"))
	assert.Equal(t, palette.Light, settingsTheme("system"))

	theme, err := themeFlag("", palette.Dark)
	require.NoError(t, err)
	assert.Equal(t, palette.Dark, theme)

	theme, err = themeFlag("LIGHT", palette.Dark)
	require.NoError(t, err)
	assert.Equal(t, palette.Light, theme)
}

func TestVersion(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "version")
	assert.Contains(t, out, "brpalette "+Version)

	out = mustRun(t, "version", "--check")
	assert.Contains(t, out, "update check skipped")
}

func TestVersion_CheckFindsRelease(t *testing.T) {
	setupCLI(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v9.0.0","html_url":"https://example.com/v9"}`))
	}))
	t.Cleanup(srv.Close)

	origVersion, origChecker := Version, newChecker
	Version = "1.0.0"
	newChecker = func() *version.Checker { return &version.Checker{URL: srv.URL, Client: srv.Client()} }
	t.Cleanup(func() { Version, newChecker = origVersion, origChecker })

	out := mustRun(t, "version", "--check")
	assert.Contains(t, out, "v9.0.0 is available")
	assert.Contains(t, out, "https://example.com/v9")
}
