package colors

import "github.com/charmbracelet/lipgloss"

// === Chrome Palette ===
// The app's own colours. The generated palette is drawn with its literal hex
// values; these only frame it. Light/Dark follow the app theme through
// lipgloss.SetHasDarkBackground.
var (
	Accent    = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#a5b4fc"}
	AccentAlt = lipgloss.AdaptiveColor{Light: "#db2777", Dark: "#f9a8d4"}
	Surface   = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#111827"} // Background
	Border    = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
	Muted     = lipgloss.AdaptiveColor{
		Light: "#6b7280",
		Dark:  "#9ca3af",
	} // Secondary text
	Text = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
)

// === Semantic State Colors ===
var (
	StateError = lipgloss.AdaptiveColor{
		Light: "#b91c1c",
		Dark:  "#f87171",
	}
	StateBusy = lipgloss.AdaptiveColor{
		Light: "#b45309",
		Dark:  "#fbbf24",
	}
	StateOK = lipgloss.AdaptiveColor{
		Light: "#15803d",
		Dark:  "#4ade80",
	}
)

// === Gradient Fallback ===
// Used for the title when no palette is loaded yet.
var (
	GradientStart = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#a5b4fc"}
	GradientEnd   = lipgloss.AdaptiveColor{Light: "#db2777", Dark: "#f9a8d4"}
)
