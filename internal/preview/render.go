package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Element is an interactive sample element that can be hovered.
type Element int

const (
	ElementNone Element = iota
	ElementPrimary
	ElementSecondary
	ElementOutline
	ElementInput
	ElementToggle
)

// Elements lists the focusable elements in tab order.
var Elements = []Element{ElementInput, ElementToggle, ElementPrimary, ElementSecondary, ElementOutline}

// RenderOptions is the interaction state of the preview.
type RenderOptions struct {
	Width    int
	Hover    Element
	ToggleOn bool
}

const (
	sampleTitle = "The Quick Brown Fox"
	sampleBody  = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."
	cardTitle   = "Card Title"
	cardBody    = "This is a card component. It's useful for displaying grouped content and creating visual hierarchy on a page."
)

// Render draws the sample page for s.
func Render(s Scheme, opts RenderOptions) string {
	width := opts.Width
	if width < 40 {
		width = 40
	}
	inner := width - 4

	page := lipgloss.NewStyle().
		Background(lipgloss.Color(s.Page)).
		Foreground(lipgloss.Color(s.Text)).
		Padding(1, 2).
		Width(width)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.Text)).
		Background(lipgloss.Color(s.Page)).
		Render(sampleTitle)

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.MutedText)).
		Background(lipgloss.Color(s.Page)).
		Width(inner).
		Render(sampleBody)

	card := lipgloss.NewStyle().
		Background(lipgloss.Color(s.CardBackground)).
		Foreground(lipgloss.Color(s.CardText)).
		Padding(1, 2).
		Width(inner).
		Render(lipgloss.NewStyle().Bold(true).Render(cardTitle) + "\n" + cardBody)

	rows := []string{
		title,
		body,
		"",
		card,
		"",
		renderInput(s, inner, opts.Hover == ElementInput),
		renderToggle(s, opts.ToggleOn, opts.Hover == ElementToggle),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderButton(s.Primary, "Primary Action", opts.Hover == ElementPrimary, false),
			pageGap(s),
			renderButton(s.Secondary, "Secondary", opts.Hover == ElementSecondary, false),
			pageGap(s),
			renderButton(s.Outline, "Outline", opts.Hover == ElementOutline, true),
		),
	}
	return page.Render(strings.Join(rows, "\n"))
}

func pageGap(s Scheme) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(s.Page)).Render(" ")
}

func renderButton(b Button, label string, hover, outline bool) string {
	bg, fg := b.Background, b.Foreground
	if hover {
		bg, fg = b.HoverBackground, b.HoverForeground
	}
	style := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg))
	if outline {
		style = style.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(b.Border)).
			BorderBackground(lipgloss.Color(b.Background))
	} else {
		// keep the same height as the bordered outline button
		style = style.Margin(1, 0).MarginBackground(lipgloss.Color(b.Background))
	}
	return style.Render(label)
}

func renderInput(s Scheme, width int, focused bool) string {
	border := s.InputBorder
	if focused {
		border = s.InputFocusBorder
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(s.InputBackground)).
		Foreground(lipgloss.Color(s.InputText)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(s.Page)).
		Width(width - 2)
	if focused {
		style = style.BorderBackground(lipgloss.Color(s.FocusRingOnPage))
	}
	return style.Render("Enter your name...")
}

func renderToggle(s Scheme, on, focused bool) string {
	track := s.ToggleOff
	knob := "●   "
	if on {
		track = s.ToggleOn
		knob = "   ●"
	}
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Text)).
		Background(lipgloss.Color(s.Page)).
		Render("Enable Notifications ")
	sw := lipgloss.NewStyle().
		Background(lipgloss.Color(track)).
		Foreground(lipgloss.Color("#ffffff"))
	if focused {
		sw = sw.Underline(true)
	}
	return label + sw.Render(knob)
}
