package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors the chrome around the canvas. Scene colors always come
// from the engine and are never themed.
type Theme struct {
	Name   string
	Header lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Alert  lipgloss.Color
}

var (
	ThemeSlate = Theme{
		Name:   "slate",
		Header: lipgloss.Color("86"),
		Text:   lipgloss.Color("252"),
		Muted:  lipgloss.Color("242"),
		Accent: lipgloss.Color("213"),
		Alert:  lipgloss.Color("203"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Header: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#00cc00"),
		Muted:  lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#88ff88"),
		Alert:  lipgloss.Color("#ffff00"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Header: lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#feca57"),
		Alert:  lipgloss.Color("#ff4757"),
	}

	CurrentTheme = ThemeSlate

	Themes = []Theme{ThemeSlate, ThemePhosphor, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to slate.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSlate
}

// SetTheme changes the current theme.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeSlate
}

// ThemeNames returns the available theme names.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
