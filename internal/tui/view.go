package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/preview"
	"github.com/brpalette/brpalette/internal/tui/colors"
	"github.com/brpalette/brpalette/internal/tui/components"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	stripWidth    = 12
)

func (m RootModel) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	if width < MinWidth {
		width = MinWidth
	}

	if m.state == ConfirmDeleteState {
		return m.confirmView(width, height)
	}

	sideBySide := width >= MinWidth+SidebarWidth
	mainWidth := width
	if sideBySide {
		mainWidth = width - SidebarWidth
	}

	var main string
	switch m.state {
	case VariationsState:
		main = m.variationsView(mainWidth)
	case PreviewState:
		main = m.previewView(mainWidth)
	default:
		main = m.paletteView(mainWidth)
	}

	var body string
	if sideBySide {
		body = lipgloss.JoinHorizontal(lipgloss.Top, main, m.savedView(SidebarWidth))
	} else if m.state == SavedState {
		body = m.savedView(width)
	} else {
		body = main
	}

	sections := []string{m.headerView(width), m.promptView(), body}
	if toast := components.Toast(m.toast, width); toast != "" {
		sections = append(sections, toast)
	}
	h := m.help
	h.Width = width
	sections = append(sections, MutedStyle.Render(h.View(m.helpKeys())))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m RootModel) headerView(width int) string {
	title := ApplyGradient("brpalette", m.headerStops()...)
	info := MutedStyle.Render(fmt.Sprintf("  %s theme", m.snap.Theme))
	if m.opts.Version != "" {
		info += MutedStyle.Render("  v" + strings.TrimPrefix(m.opts.Version, "v"))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(title + info)
}

func (m RootModel) promptView() string {
	if m.state == InputState {
		return m.input.View()
	}
	if m.snap.Current != nil {
		return MutedStyle.Render("Press / to describe a new palette")
	}
	return MutedStyle.Render("Press / to describe a palette")
}

func (m RootModel) paneStyle(active bool, width int) lipgloss.Style {
	style := PaneStyle
	if active {
		style = ActivePaneStyle
	}
	// border + padding
	return style.Width(width - 2)
}

func (m RootModel) paletteView(width int) string {
	active := m.state == PaletteState || m.state == InputState || m.state == PreviewState
	inner := width - 4

	var content string
	switch {
	case m.snap.Loading:
		content = m.spinner.View() + BusyStyle.Render(" Generating your palette...")
	case m.snap.Error != "" && m.snap.Current == nil:
		content = ErrorStyle.Width(inner).Render(m.snap.Error)
	case m.snap.Current == nil:
		content = MutedStyle.Render("No palette yet.")
	default:
		p := m.snap.Current
		title := TitleStyle.Render(p.Prompt)
		if m.snap.CurrentSaved() {
			title += lipgloss.NewStyle().Foreground(colors.StateOK).Render(" ★ saved")
		}
		rows := []string{title, components.SwatchRow(p.Colors, inner, SwatchHeight, m.swatchCursor)}
		if m.snap.Error != "" {
			rows = append(rows, ErrorStyle.Width(inner).Render(m.snap.Error))
		}
		content = lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	return m.paneStyle(active, width).Render(
		PaneTitleStyle.Render("Palette") + "\n" + content,
	)
}

func (m RootModel) variationsView(width int) string {
	inner := width - 4
	var rows []string
	switch {
	case m.snap.VariationsLoading:
		rows = append(rows, m.spinner.View()+BusyStyle.Render(" Generating variations..."))
	case m.snap.Error != "":
		rows = append(rows, ErrorStyle.Width(inner).Render(m.snap.Error))
	case len(m.snap.Variations) == 0:
		rows = append(rows, MutedStyle.Render("No variations yet. Press v to generate."))
	default:
		for i, v := range m.snap.Variations {
			marker, style := "  ", RowStyle
			if i == m.variationCursor {
				marker, style = "› ", SelectedRowStyle
			}
			strip := components.NewStripModel(v.Hexes(), inner-14).View()
			rows = append(rows, style.Render(marker)+strip+style.Render(fmt.Sprintf(" Variation %d", i+1)))
		}
	}

	return m.paneStyle(true, width).Render(
		PaneTitleStyle.Render("Variations") + "\n" + strings.Join(rows, "\n"),
	)
}

func (m RootModel) savedView(width int) string {
	inner := width - 4
	var rows []string
	if len(m.snap.Saved) == 0 {
		rows = append(rows, MutedStyle.Render("No saved palettes yet."))
	}
	current := ""
	if m.snap.Current != nil {
		current = m.snap.Current.ID
	}
	for i, p := range m.snap.Saved {
		style := RowStyle
		marker := "  "
		if m.state == SavedState && i == m.savedCursor {
			style = SelectedRowStyle
			marker = "› "
		} else if p.ID == current {
			marker = "• "
		}
		labelWidth := inner - stripWidth - 3
		if labelWidth < 4 {
			labelWidth = 4
		}
		label := lipgloss.NewStyle().MaxWidth(labelWidth).Render(p.Prompt)
		rows = append(rows, style.Render(marker)+components.NewStripModel(p.Hexes(), stripWidth).View()+" "+style.Render(label))
	}

	title := components.RenderTabBar([]components.Tab{{Label: "Saved", Count: len(m.snap.Saved)}}, 0, ActiveTabStyle, TabStyle)
	return m.paneStyle(m.state == SavedState, width).Render(title + "\n" + strings.Join(rows, "\n"))
}

func (m RootModel) previewView(width int) string {
	tabs := []components.Tab{
		{Label: "Light", Count: -1},
		{Label: "Dark", Count: -1},
	}
	if m.snap.Current != nil {
		for i, mode := range []palette.Theme{palette.Light, palette.Dark} {
			if scheme, ok := preview.NewScheme(*m.snap.Current, mode); ok {
				tabs[i].Dot = scheme.Page
			}
		}
	}
	active := 0
	if m.previewMode == palette.Dark {
		active = 1
	}
	bar := components.RenderTabBar(tabs, active, ActiveTabStyle, TabStyle)

	var content string
	if m.snap.Current == nil {
		content = MutedStyle.Render("No palette to preview.")
	} else if scheme, ok := preview.NewScheme(*m.snap.Current, m.previewMode); ok {
		content = preview.Render(scheme, preview.RenderOptions{
			Width:    width - 4,
			Hover:    m.previewElement(),
			ToggleOn: m.previewToggle,
		})
	} else {
		content = MutedStyle.Render("Preview needs a palette with at least 5 colours.")
	}

	return m.paneStyle(true, width).Render(
		PaneTitleStyle.Render("UI Preview") + "  " + bar + "\n" + content,
	)
}

func (m RootModel) confirmView(width, height int) string {
	var target *palette.Palette
	if p, ok := palette.Find(m.snap.Saved, m.pendingDelete); ok {
		target = &p
	}
	return components.NewDeleteModal(target, Keys.Confirm).Centered(width, height)
}

func (m RootModel) helpKeys() help.KeyMap {
	switch m.state {
	case InputState:
		return Keys.Input
	case VariationsState:
		return Keys.Variations
	case SavedState:
		return Keys.Saved
	case PreviewState:
		return Keys.Preview
	case ConfirmDeleteState:
		return Keys.Confirm
	}
	return Keys.Palette
}
