package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/brpalette/brpalette/internal/tui/components"
)

// KeyMap defines the keybindings for the entire application
type KeyMap struct {
	Palette    PaletteKeyMap
	Input      InputKeyMap
	Variations VariationsKeyMap
	Saved      SavedKeyMap
	Preview    PreviewKeyMap
	Confirm    components.ConfirmationKeyMap
}

// PaletteKeyMap defines keybindings for the main palette view
type PaletteKeyMap struct {
	Prompt     key.Binding
	Variations key.Binding
	Save       key.Binding
	Share      key.Binding
	Copy       key.Binding
	Theme      key.Binding
	Preview    key.Binding
	NextPane   key.Binding
	Left       key.Binding
	Right      key.Binding
	Quit       key.Binding
}

// InputKeyMap defines keybindings for the description input
type InputKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// VariationsKeyMap defines keybindings for choosing a variation
type VariationsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Apply  key.Binding
	Retry  key.Binding
	Back   key.Binding
	Quit   key.Binding
	Switch key.Binding
}

// SavedKeyMap defines keybindings for the saved palettes list
type SavedKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Load   key.Binding
	Delete key.Binding
	Reload key.Binding
	Back   key.Binding
	Quit   key.Binding
	Switch key.Binding
}

// PreviewKeyMap defines keybindings for the UI preview
type PreviewKeyMap struct {
	NextElement key.Binding
	PrevElement key.Binding
	Toggle      key.Binding
	Theme       key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// Keys contains all the keybindings for the application
var Keys = KeyMap{
	Palette: PaletteKeyMap{
		Prompt: key.NewBinding(
			key.WithKeys("/", "i"),
			key.WithHelp("/", "describe"),
		),
		Variations: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "variations"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Share: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "copy link"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "copy hex"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "saved"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev colour"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next colour"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	},
	Input: InputKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	},
	Variations: VariationsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Retry: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "regenerate"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "saved"),
		),
	},
	Saved: SavedKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "palette"),
		),
	},
	Preview: PreviewKeyMap{
		NextElement: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab", "next element"),
		),
		PrevElement: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab", "prev element"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "preview theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "p"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	},
	Confirm: components.ConfirmationKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "delete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "keep"),
		),
	},
}

// ShortHelp returns keybindings to show in the mini help view
func (k PaletteKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prompt, k.Variations, k.Save, k.Share, k.Copy, k.Preview, k.NextPane, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k PaletteKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prompt, k.Variations, k.Save, k.Share},
		{k.Left, k.Right, k.Copy, k.Theme},
		{k.Preview, k.NextPane, k.Quit},
	}
}

func (k InputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k InputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (k VariationsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Apply, k.Retry, k.Back}
}

func (k VariationsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Apply},
		{k.Retry, k.Switch, k.Back, k.Quit},
	}
}

func (k SavedKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Load, k.Delete, k.Switch}
}

func (k SavedKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Load, k.Delete},
		{k.Reload, k.Switch, k.Back, k.Quit},
	}
}

func (k PreviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextElement, k.Toggle, k.Theme, k.Back}
}

func (k PreviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextElement, k.PrevElement, k.Toggle},
		{k.Theme, k.Back, k.Quit},
	}
}
