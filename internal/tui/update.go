package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brpalette/brpalette/internal/app"
	"github.com/brpalette/brpalette/internal/clipboard"
	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/preview"
	"github.com/brpalette/brpalette/internal/utils"
)

var copyToClipboard = clipboard.Copy

// generateDoneMsg is sent when a palette request (or startup load) finishes.
type generateDoneMsg struct {
	err error
}

// variationsDoneMsg is sent when a variations request finishes.
type variationsDoneMsg struct {
	err error
}

// toastExpiredMsg hides the toast if no newer notification replaced it.
type toastExpiredMsg struct {
	seq uint64
}

// Update handles messages and updates the model
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case generateDoneMsg:
		m.inFlight = false
		if msg.err != nil {
			utils.Debug("Palette generation failed: %v", msg.err)
		} else {
			m.swatchCursor = 0
		}
		cmds = append(cmds, m.sync())
		if msg.err == nil && m.opts.CopyOnGenerate && m.snap.Current != nil {
			m.copyShareLink()
			cmds = append(cmds, m.sync())
		}
		return m, tea.Batch(cmds...)

	case variationsDoneMsg:
		m.inFlight = false
		m.variationCursor = 0
		if msg.err != nil {
			utils.Debug("Variation generation failed: %v", msg.err)
		}
		return m, m.sync()

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input housekeeping
	if m.state == InputState {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case PaletteState:
		return m.updatePalette(msg)
	case InputState:
		return m.updateInput(msg)
	case VariationsState:
		return m.updateVariations(msg)
	case SavedState:
		return m.updateSaved(msg)
	case PreviewState:
		return m.updatePreview(msg)
	case ConfirmDeleteState:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m RootModel) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := Keys.Palette
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Prompt):
		m.state = InputState
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Variations):
		m.state = VariationsState
		return m, m.startVariations()

	case key.Matches(msg, keys.Save):
		if _, err := m.ctrl.SaveCurrent(); err != nil {
			utils.Debug("Save failed: %v", err)
		}
		return m, m.sync()

	case key.Matches(msg, keys.Share):
		m.copyShareLink()
		return m, m.sync()

	case key.Matches(msg, keys.Copy):
		if m.snap.Current == nil || len(m.snap.Current.Colors) == 0 {
			return m, nil
		}
		hex := m.snap.Current.Colors[m.swatchCursor].Hex
		m.copyText(hex, app.MsgColorCopied)
		return m, m.sync()

	case key.Matches(msg, keys.Theme):
		theme, err := m.ctrl.ToggleTheme()
		if err != nil {
			utils.Debug("Theme toggle failed: %v", err)
		}
		m.previewMode = theme
		m.ctrl.Notify(app.MsgThemeSwitched)
		return m, m.sync()

	case key.Matches(msg, keys.Preview):
		m.state = PreviewState
		m.previewMode = m.snap.Theme
		m.previewHover = -1
		return m, nil

	case key.Matches(msg, keys.NextPane):
		m.state = SavedState
		return m, nil

	case key.Matches(msg, keys.Left):
		if m.swatchCursor > 0 {
			m.swatchCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Right):
		if m.snap.Current != nil && m.swatchCursor < len(m.snap.Current.Colors)-1 {
			m.swatchCursor++
		}
		return m, nil
	}
	return m, nil
}

func (m RootModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, Keys.Input.Submit):
		prompt := m.input.Value()
		m.input.Blur()
		m.state = PaletteState
		return m, m.startGenerate(prompt)

	case key.Matches(msg, Keys.Input.Cancel):
		m.input.Blur()
		m.state = PaletteState
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m RootModel) updateVariations(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := Keys.Variations
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.variationCursor > 0 {
			m.variationCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.variationCursor < len(m.snap.Variations)-1 {
			m.variationCursor++
		}

	case key.Matches(msg, keys.Apply):
		if err := m.ctrl.SelectVariation(m.variationCursor); err != nil {
			return m, nil
		}
		m.state = PaletteState
		m.swatchCursor = 0
		return m, m.sync()

	case key.Matches(msg, keys.Retry):
		return m, m.startVariations()

	case key.Matches(msg, keys.Switch):
		m.state = SavedState

	case key.Matches(msg, keys.Back):
		m.state = PaletteState
	}
	return m, nil
}

func (m RootModel) updateSaved(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := Keys.Saved
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.savedCursor > 0 {
			m.savedCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.savedCursor < len(m.snap.Saved)-1 {
			m.savedCursor++
		}

	case key.Matches(msg, keys.Load):
		p, ok := m.selectedSaved()
		if !ok {
			return m, nil
		}
		if err := m.ctrl.Load(p.ID); err != nil {
			utils.Debug("Load %s failed: %v", p.ID, err)
			return m, m.sync()
		}
		m.state = PaletteState
		m.swatchCursor = 0
		return m, m.sync()

	case key.Matches(msg, keys.Delete):
		p, ok := m.selectedSaved()
		if !ok {
			return m, nil
		}
		m.pendingDelete = p.ID
		m.prevState = SavedState
		m.state = ConfirmDeleteState

	case key.Matches(msg, keys.Reload):
		if err := m.ctrl.ReloadSaved(); err != nil {
			utils.Debug("Reload saved failed: %v", err)
		}
		return m, m.sync()

	case key.Matches(msg, keys.Switch), key.Matches(msg, keys.Back):
		m.state = PaletteState
	}
	return m, nil
}

func (m RootModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := Keys.Preview
	n := len(preview.Elements)
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.NextElement):
		m.previewHover = (m.previewHover + 1) % n

	case key.Matches(msg, keys.PrevElement):
		if m.previewHover <= 0 {
			m.previewHover = n - 1
		} else {
			m.previewHover--
		}

	case key.Matches(msg, keys.Toggle):
		m.previewToggle = !m.previewToggle

	case key.Matches(msg, keys.Theme):
		m.previewMode = m.previewMode.Toggle()

	case key.Matches(msg, keys.Back):
		m.state = PaletteState
	}
	return m, nil
}

func (m RootModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Confirm.Confirm):
		id := m.pendingDelete
		m.pendingDelete = ""
		m.state = m.prevState
		if err := m.ctrl.Delete(id); err != nil && !errors.Is(err, app.ErrNotFound) {
			utils.Debug("Delete %s failed: %v", id, err)
		}
		return m, m.sync()

	case key.Matches(msg, Keys.Confirm.Cancel):
		m.pendingDelete = ""
		m.state = m.prevState
	}
	return m, nil
}

// startGenerate kicks off a palette request unless one is already running.
func (m *RootModel) startGenerate(prompt string) tea.Cmd {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" || m.busy() {
		return nil
	}
	m.inFlight = true
	m.snap.Loading = true
	m.snap.Error = ""
	m.snap.Current = nil
	m.snap.Variations = nil

	ctrl, ctx := m.ctrl, m.ctx
	return tea.Batch(
		func() tea.Msg {
			return generateDoneMsg{err: ctrl.Generate(ctx, prompt)}
		},
		m.spinner.Tick,
	)
}

// startVariations requests variations of the current palette.
func (m *RootModel) startVariations() tea.Cmd {
	if m.snap.Current == nil || m.busy() {
		return nil
	}
	m.inFlight = true
	m.snap.VariationsLoading = true
	m.snap.Error = ""
	m.snap.Variations = nil
	m.variationCursor = 0

	ctrl, ctx := m.ctrl, m.ctx
	return tea.Batch(
		func() tea.Msg {
			return variationsDoneMsg{err: ctrl.GenerateVariations(ctx)}
		},
		m.spinner.Tick,
	)
}

func (m *RootModel) copyShareLink() {
	link, err := m.ctrl.ShareLink(m.opts.ShareBaseURL)
	if err != nil {
		return
	}
	m.copyText(link, app.MsgLinkCopied)
}

func (m *RootModel) copyText(text, success string) {
	if err := copyToClipboard(text); err != nil {
		utils.Debug("Clipboard write failed: %v", err)
		m.ctrl.Notify(app.MsgCopyFailed)
		return
	}
	m.ctrl.Notify(success)
}

// sync refreshes the snapshot and schedules expiry for a new notification.
func (m *RootModel) sync() tea.Cmd {
	m.snap = m.ctrl.Snapshot()
	applyTheme(m.snap.Theme)

	m.swatchCursor = clampCursor(m.swatchCursor, m.currentLen())
	m.variationCursor = clampCursor(m.variationCursor, len(m.snap.Variations))
	m.savedCursor = clampCursor(m.savedCursor, len(m.snap.Saved))

	n := m.snap.Notification
	if n.Seq == m.toastSeq {
		return nil
	}
	m.toastSeq = n.Seq
	m.toast = n.Message
	seq := n.Seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m RootModel) busy() bool {
	return m.inFlight || m.snap.Busy()
}

func (m RootModel) currentLen() int {
	if m.snap.Current == nil {
		return 0
	}
	return len(m.snap.Current.Colors)
}

func (m RootModel) selectedSaved() (palette.Palette, bool) {
	if m.savedCursor < 0 || m.savedCursor >= len(m.snap.Saved) {
		return palette.Palette{}, false
	}
	return m.snap.Saved[m.savedCursor], true
}

func clampCursor(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
