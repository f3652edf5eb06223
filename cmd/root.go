package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/brpalette/brpalette/internal/app"
	"github.com/brpalette/brpalette/internal/clipboard"
	"github.com/brpalette/brpalette/internal/config"
	"github.com/brpalette/brpalette/internal/genai"
	"github.com/brpalette/brpalette/internal/generator"
	"github.com/brpalette/brpalette/internal/metrics"
	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/store"
	"github.com/brpalette/brpalette/internal/tui"
	"github.com/brpalette/brpalette/internal/utils"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Loaded once per invocation by initializeGlobalState
var (
	globalSettings = config.DefaultSettings()
	globalEnv      config.Env
)

// newModel builds the generative model client. Tests swap it for a fake.
var newModel = func(s *config.Settings, env config.Env) (genai.Model, error) {
	client, err := genai.NewClient(genai.Config{
		APIKey:  env.Key(),
		BaseURL: s.Model.BaseURL,
		Timeout: s.Model.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brpalette [share-link]",
	Short: "AI colour palettes from a mood description",
	Long: `brpalette turns a free-text mood description into a five colour palette,
suggests variations, previews it on sample UI elements and keeps your favourites.

Run without arguments to open the interactive palette studio. Pass a share link
to open that palette instead of generating one.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()

		link := ""
		if len(args) == 1 {
			link = args[0]
		} else if fromClip, _ := cmd.Flags().GetBool("from-clipboard"); fromClip {
			link = clipboard.ReadShareLink()
		}

		svc, err := openServices(true, detectTheme(globalSettings.General.Theme))
		if err != nil {
			return err
		}
		defer svc.Close()

		return startTUI(cmd.Context(), svc, link)
	},
}

// startTUI initializes and runs the TUI program
func startTUI(ctx context.Context, svc *services, link string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.InitialRootModel(ctx, svc.ctrl, tui.Options{
		ShareLink:      link,
		ShareBaseURL:   globalSettings.General.ShareBaseURL,
		CopyOnGenerate: globalSettings.General.CopyOnGenerate,
		Version:        Version,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// services bundles everything a command needs to act on palettes.
type services struct {
	metrics *metrics.Metrics
	store   *store.DB
	gen     *generator.Generator
	ctrl    *app.Controller
}

// openServices opens the palette store and wires the controller. With
// needModel the API key must be configured; otherwise a missing key only
// surfaces if a command actually asks for a palette.
func openServices(needModel bool, theme palette.Theme) (*services, error) {
	model, err := newModel(globalSettings, globalEnv)
	if err != nil {
		if needModel {
			if errors.Is(err, genai.ErrMissingAPIKey) {
				return nil, fmt.Errorf("%w or add it to %s", err, filepath.Join(config.GetAppDir(), ".env"))
			}
			return nil, err
		}
		missing := err
		model = genai.ModelFunc(func(context.Context, genai.Request) (string, error) {
			return "", missing
		})
	}

	m := metrics.New()
	gen := generator.New(model, generator.Options{
		Model:                globalSettings.Model.Name,
		PaletteTemperature:   globalSettings.Model.PaletteTemperature,
		VariationTemperature: globalSettings.Model.VariationTemperature,
	}).WithMetrics(m)

	db, err := store.Open(config.GetDBPath(), config.GetLockPath())
	if err != nil {
		return nil, fmt.Errorf("opening palette store: %w", err)
	}

	ctrl, err := app.New(gen, db, app.Options{
		DefaultPrompt: globalSettings.General.DefaultPrompt,
		Theme:         theme,
		Metrics:       m,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading saved palettes: %w", err)
	}

	return &services{metrics: m, store: db, gen: gen, ctrl: ctrl}, nil
}

func (s *services) Close() {
	if err := s.store.Close(); err != nil {
		utils.Debug("Error closing store: %v", err)
	}
}

// detectTheme resolves the theme preference for the interactive UI. "system"
// follows the terminal background.
func detectTheme(pref string) palette.Theme {
	if pref == config.ThemeSystem || pref == "" {
		if termenv.HasDarkBackground() {
			return palette.Dark
		}
		return palette.Light
	}
	return settingsTheme(pref)
}

// settingsTheme resolves the preference without touching the terminal.
func settingsTheme(pref string) palette.Theme {
	if t, ok := palette.ParseTheme(pref); ok {
		return t
	}
	return palette.Light
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("from-clipboard", false, "Open the share link currently on the clipboard")
	rootCmd.SetVersionTemplate("brpalette version {{.Version}}\n")
}

// initializeGlobalState sets up directories, logging and settings
func initializeGlobalState() {
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create app directories: %v\n", err)
	}

	// Config logging
	utils.ConfigureDebug(config.GetLogsDir())

	settings, env, err := config.Load()
	if err != nil {
		utils.Debug("Error loading settings: %v", err)
	}
	globalSettings = settings
	globalEnv = env

	// Clean up old logs
	utils.CleanupLogs(settings.General.LogRetentionCount)
	utils.Debug("brpalette %s (%s) starting", Version, BuildTime)
}
