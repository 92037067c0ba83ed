// Package ui provides the terminal interface for the e-library client:
// page models, the sidebar, and the shared visual styling.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"elibrary/internal/catalog"
)

// Color palette. Light mode mirrors the web client's warm paper look; dark
// mode flips to a navy base.
var (
	LightBackground = lipgloss.Color("#f8f7f4")
	LightForeground = lipgloss.Color("#1e2a38")
	LightPrimary    = lipgloss.Color("#1e5245")
	LightAccent     = lipgloss.Color("#d98e32")
	LightMuted      = lipgloss.Color("#8a93a0")
	LightBorder     = lipgloss.Color("#d8dce2")

	DarkBackground = lipgloss.Color("#141d2b")
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#6fbfa8")
	DarkAccent     = lipgloss.Color("#e0a458")
	DarkMuted      = lipgloss.Color("#5a6678")
	DarkBorder     = lipgloss.Color("#2a3850")

	// Semantic colors, shared by both modes.
	ColorError   = lipgloss.Color("#e53935")
	ColorSuccess = lipgloss.Color("#43a047")
	ColorWarning = lipgloss.Color("#ffc107")
)

// Theme holds the active color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light color scheme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark color scheme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ThemeByName resolves a configured theme name, defaulting to light.
func ThemeByName(name string) Theme {
	if name == "dark" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles bundles the lipgloss styles used across pages.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Header   lipgloss.Style
	Body     lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style
	Panel    lipgloss.Style

	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme:    theme,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground).Underline(true),
		Body:     lipgloss.NewStyle().Foreground(theme.Foreground),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Error:    lipgloss.NewStyle().Foreground(ColorError),
		Success:  lipgloss.NewStyle().Foreground(ColorSuccess),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Background).Background(theme.Primary),
		Badge:    lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		SidebarItem:   lipgloss.NewStyle().Foreground(theme.Muted).Padding(0, 1),
		SidebarActive: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(0, 1),
	}
}

// CategoryPill renders a category name in its shelf palette. The palette
// comes from the catalog sample set; unknown categories fall back to the
// muted style.
func (s Styles) CategoryPill(name string) string {
	for _, cat := range catalog.SampleCategories() {
		if cat.Name == name {
			return lipgloss.NewStyle().
				Foreground(lipgloss.Color(cat.Foreground)).
				Background(lipgloss.Color(cat.Background)).
				Padding(0, 1).
				Render(name)
		}
	}
	return s.Muted.Render(name)
}
