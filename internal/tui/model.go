package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brpalette/brpalette/internal/app"
	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/preview"
	"github.com/brpalette/brpalette/internal/tui/colors"
)

type UIState int //Defines UIState as int to be used in rootModel

const (
	PaletteState       UIState = iota //PaletteState is 0 increments after each line
	InputState                        //InputState is 1
	VariationsState                   //VariationsState is 2
	SavedState                        //SavedState is 3
	PreviewState                      //PreviewState is 4
	ConfirmDeleteState                //ConfirmDeleteState is 5
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 2800 * time.Millisecond

// Options configure the root model.
type Options struct {
	// ShareLink is loaded instead of generating the default prompt.
	ShareLink      string
	ShareBaseURL   string
	CopyOnGenerate bool
	Version        string
}

type RootModel struct {
	ctrl *app.Controller
	ctx  context.Context
	opts Options

	width  int
	height int
	state  UIState
	// state to return to from modal states
	prevState UIState

	snap     app.State
	inFlight bool

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	// Navigation
	swatchCursor    int
	variationCursor int
	savedCursor     int

	// Preview interaction, independent of the app theme
	previewMode   palette.Theme
	previewHover  int // index into preview.Elements, -1 for none
	previewToggle bool

	toast    string
	toastSeq uint64

	pendingDelete string
}

// InitialRootModel builds the model around ctrl. ctx bounds every model
// request started from the UI.
func InitialRootModel(ctx context.Context, ctrl *app.Controller, opts Options) RootModel {
	input := textinput.New()
	input.Placeholder = "Describe a mood, place or feeling..."
	input.Width = InputWidth
	input.CharLimit = 200
	input.Prompt = "› "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = BusyStyle

	snap := ctrl.Snapshot()
	applyTheme(snap.Theme)

	return RootModel{
		ctrl:         ctrl,
		ctx:          ctx,
		opts:         opts,
		state:        PaletteState,
		snap:         snap,
		inFlight:     true,
		input:        input,
		spinner:      s,
		help:         help.New(),
		previewMode:  snap.Theme,
		previewHover: -1,
		toastSeq:     snap.Notification.Seq,
	}
}

func (m RootModel) Init() tea.Cmd {
	ctrl, ctx, link := m.ctrl, m.ctx, m.opts.ShareLink
	return tea.Batch(
		func() tea.Msg {
			return generateDoneMsg{err: ctrl.Init(ctx, link)}
		},
		m.spinner.Tick,
	)
}

// applyTheme points every AdaptiveColor at the app theme rather than the
// terminal background.
func applyTheme(t palette.Theme) {
	lipgloss.SetHasDarkBackground(t == palette.Dark)
}

// previewElement is the hovered preview element, or ElementNone.
func (m RootModel) previewElement() preview.Element {
	if m.previewHover < 0 || m.previewHover >= len(preview.Elements) {
		return preview.ElementNone
	}
	return preview.Elements[m.previewHover]
}

// headerStops are the gradient stops for the title: the current palette when
// there is one, the chrome accent otherwise.
func (m RootModel) headerStops() []string {
	if m.snap.Current != nil && len(m.snap.Current.Colors) > 0 {
		return m.snap.Current.Hexes()
	}
	if m.snap.Theme == palette.Dark {
		return []string{colors.GradientStart.Dark, colors.GradientEnd.Dark}
	}
	return []string{colors.GradientStart.Light, colors.GradientEnd.Light}
}
