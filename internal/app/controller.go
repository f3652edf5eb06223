// Package app holds the application state shared by the TUI and the HTTP API:
// theme, current palette, variations, saved collection and notifications.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/brpalette/brpalette/internal/metrics"
	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/utils"
)

var (
	ErrBusy      = errors.New("a generation request is already in progress")
	ErrNoPalette = errors.New("no current palette")
	ErrNotFound  = errors.New("palette not found")
)

// Notification messages.
const (
	MsgSaved         = "Palette saved!"
	MsgNotSaved      = "Palette already saved or no palette to save."
	MsgDeleted       = "Palette deleted."
	MsgLoaded        = "Palette loaded!"
	MsgVariation     = "Variation applied!"
	MsgSharedLoaded  = "Shared palette loaded!"
	MsgLinkCopied    = "Share link copied to clipboard!"
	MsgColorCopied   = "Color copied!"
	MsgCopyFailed    = "Could not access the clipboard."
	MsgThemeSwitched = "Theme switched."
)

// DefaultPrompt is generated on startup when no share link is given.
const DefaultPrompt = "Serene coastal sunrise"

// Generator produces palettes; *generator.Generator satisfies it.
type Generator interface {
	GeneratePalette(ctx context.Context, description string, theme palette.Theme) (palette.Palette, error)
	GenerateVariations(ctx context.Context, base palette.Palette, theme palette.Theme) ([]palette.Palette, error)
}

// Store persists the saved collection and theme; *store.DB satisfies it.
type Store interface {
	SavedPalettes() ([]palette.Palette, error)
	UpdateSaved(fn func([]palette.Palette) ([]palette.Palette, error)) ([]palette.Palette, error)
	Theme() (palette.Theme, bool, error)
	SetTheme(palette.Theme) error
}

// Options configure a Controller.
type Options struct {
	// DefaultPrompt replaces the built-in startup description when set.
	DefaultPrompt string
	// Theme is used when the store has no persisted theme.
	Theme   palette.Theme
	Metrics *metrics.Metrics
}

// Controller serializes all state changes. Model calls run without the lock
// held; the loading flags keep a second request from starting meanwhile.
type Controller struct {
	gen     Generator
	store   Store
	metrics *metrics.Metrics
	prompt  string

	mu                sync.Mutex
	theme             palette.Theme
	current           *palette.Palette
	loading           bool
	variationsLoading bool
	errMsg            string
	variations        []palette.Palette
	saved             []palette.Palette
	note              Notification
}

// New loads the saved collection and theme from st.
func New(gen Generator, st Store, opts Options) (*Controller, error) {
	c := &Controller{
		gen:     gen,
		store:   st,
		metrics: opts.Metrics,
		prompt:  opts.DefaultPrompt,
		theme:   opts.Theme,
	}
	if c.prompt == "" {
		c.prompt = DefaultPrompt
	}
	if c.theme == "" {
		c.theme = palette.Light
	}

	theme, ok, err := st.Theme()
	if err != nil {
		return nil, err
	}
	if ok {
		c.theme = theme
	}

	saved, err := st.SavedPalettes()
	if err != nil {
		return nil, err
	}
	c.saved = saved
	c.metrics.SetSaved(len(saved))
	return c, nil
}

// Init loads the palette carried by a share link, or generates the default
// description when there is none. A malformed link is logged and ignored.
func (c *Controller) Init(ctx context.Context, fragment string) error {
	if strings.TrimSpace(fragment) != "" {
		p, err := palette.DecodeShareLink(fragment)
		if err == nil {
			c.LoadShared(p)
			return nil
		}
		utils.Debug("Failed to parse palette from URL: %v", err)
	}
	return c.Generate(ctx, c.prompt)
}

// Generate replaces the current palette with one generated from prompt. An
// empty prompt is a no-op.
func (c *Controller) Generate(ctx context.Context, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil
	}

	c.mu.Lock()
	if c.loading || c.variationsLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.loading = true
	c.errMsg = ""
	c.variations = nil
	c.current = nil
	theme := c.theme
	c.mu.Unlock()

	p, err := c.gen.GeneratePalette(ctx, prompt, theme)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.current = &p
	return nil
}

// GenerateVariations fetches alternatives for the current palette.
func (c *Controller) GenerateVariations(ctx context.Context) error {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return ErrNoPalette
	}
	if c.loading || c.variationsLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.variationsLoading = true
	c.errMsg = ""
	c.variations = nil
	base := c.current.Clone()
	theme := c.theme
	c.mu.Unlock()

	out, err := c.gen.GenerateVariations(ctx, base, theme)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.variationsLoading = false
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.variations = out
	return nil
}

// SelectVariation makes variation i the current palette.
func (c *Controller) SelectVariation(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.variations) {
		return ErrNotFound
	}
	p := c.variations[i].Clone()
	c.current = &p
	c.variations = nil
	c.notifyLocked(MsgVariation)
	return nil
}

// SaveCurrent prepends the current palette to the saved collection. It reports
// false when there is nothing to save or the palette is already saved.
func (c *Controller) SaveCurrent() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		c.notifyLocked(MsgNotSaved)
		return false, nil
	}
	return c.saveLocked(c.current.Clone())
}

// Save prepends p to the saved collection unless a palette with the same ID
// is already there. The current palette is left alone.
func (c *Controller) Save(p palette.Palette) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked(p.Clone())
}

func (c *Controller) saveLocked(p palette.Palette) (bool, error) {
	added := false
	out, err := c.store.UpdateSaved(func(list []palette.Palette) ([]palette.Palette, error) {
		if _, ok := palette.Find(list, p.ID); ok {
			return list, nil
		}
		added = true
		return append([]palette.Palette{p}, list...), nil
	})
	if err != nil {
		utils.Debug("Error saving palette %s: %v", p.ID, err)
		return false, err
	}

	c.setSavedLocked(out)
	if !added {
		c.notifyLocked(MsgNotSaved)
		return false, nil
	}
	c.notifyLocked(MsgSaved)
	return true, nil
}

// Delete removes the saved palette with id.
func (c *Controller) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	out, err := c.store.UpdateSaved(func(list []palette.Palette) ([]palette.Palette, error) {
		kept := make([]palette.Palette, 0, len(list))
		for _, p := range list {
			if p.ID == id {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		return kept, nil
	})
	if err != nil {
		utils.Debug("Error deleting palette %s: %v", id, err)
		return err
	}

	c.setSavedLocked(out)
	if !found {
		return ErrNotFound
	}
	c.notifyLocked(MsgDeleted)
	return nil
}

// Load makes the saved palette with id current.
func (c *Controller) Load(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := palette.Find(c.saved, id)
	if !ok {
		return ErrNotFound
	}
	p = p.Clone()
	c.current = &p
	c.variations = nil
	c.errMsg = ""
	c.notifyLocked(MsgLoaded)
	return nil
}

// LoadShared makes a palette decoded from a share link current.
func (c *Controller) LoadShared(p palette.Palette) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p = p.Clone()
	c.current = &p
	c.variations = nil
	c.errMsg = ""
	c.notifyLocked(MsgSharedLoaded)
}

// ShareLink encodes the current palette onto baseURL.
func (c *Controller) ShareLink(baseURL string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return "", ErrNoPalette
	}
	return palette.ShareLink(baseURL, *c.current), nil
}

// ToggleTheme flips and persists the theme. The new theme applies from the
// next request on.
func (c *Controller) ToggleTheme() (palette.Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.theme = c.theme.Toggle()
	if err := c.store.SetTheme(c.theme); err != nil {
		utils.Debug("Error persisting theme: %v", err)
		return c.theme, err
	}
	return c.theme, nil
}

// ReloadSaved picks up changes another process made to the saved collection.
func (c *Controller) ReloadSaved() error {
	saved, err := c.store.SavedPalettes()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.setSavedLocked(saved)
	c.mu.Unlock()
	return nil
}

// Notify records a notification raised outside the controller, such as a
// clipboard copy.
func (c *Controller) Notify(msg string) {
	c.mu.Lock()
	c.notifyLocked(msg)
	c.mu.Unlock()
}

// Snapshot returns a copy of the state safe to read without the lock.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Theme:             c.theme,
		Loading:           c.loading,
		VariationsLoading: c.variationsLoading,
		Error:             c.errMsg,
		Notification:      c.note,
		Saved:             clonePalettes(c.saved),
		Variations:        clonePalettes(c.variations),
	}
	if c.current != nil {
		p := c.current.Clone()
		s.Current = &p
	}
	return s
}

func (c *Controller) notifyLocked(msg string) {
	c.note = Notification{Message: msg, Seq: c.note.Seq + 1}
}

func (c *Controller) setSavedLocked(saved []palette.Palette) {
	c.saved = saved
	c.metrics.SetSaved(len(saved))
}

func clonePalettes(in []palette.Palette) []palette.Palette {
	if in == nil {
		return nil
	}
	out := make([]palette.Palette, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
