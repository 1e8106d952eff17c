package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/export"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Bar        lipgloss.Color
	Comparing  lipgloss.Color
	Swapping   lipgloss.Color
	Sorted     lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:       "classic",
		Bar:        lipgloss.Color("#00ccff"),
		Comparing:  lipgloss.Color("#ffcc00"), // Yellow
		Swapping:   lipgloss.Color("#ff4444"), // Red
		Sorted:     lipgloss.Color("#00ff88"),
		Accent:     lipgloss.Color("#00ffff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Bar:        lipgloss.Color("#ff00ff"), // Magenta
		Comparing:  lipgloss.Color("#00ffff"), // Cyan
		Swapping:   lipgloss.Color("#ffff00"), // Yellow
		Sorted:     lipgloss.Color("#00ff00"),
		Accent:     lipgloss.Color("#ff00ff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Bar:        lipgloss.Color("#00cc00"), // Green phosphor
		Comparing:  lipgloss.Color("#88ff88"),
		Swapping:   lipgloss.Color("#ffff00"),
		Sorted:     lipgloss.Color("#00ff00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Bar:        lipgloss.Color("#0077be"), // Ocean blue
		Comparing:  lipgloss.Color("#ffd700"),
		Swapping:   lipgloss.Color("#ff4444"),
		Sorted:     lipgloss.Color("#00ff88"),
		Accent:     lipgloss.Color("#00a8cc"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Bar:        lipgloss.Color("#ff6b6b"), // Coral
		Comparing:  lipgloss.Color("#feca57"),
		Swapping:   lipgloss.Color("#ff9ff3"),
		Sorted:     lipgloss.Color("#5fd068"),
		Accent:     lipgloss.Color("#feca57"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to classic
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t in Themes
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Palette converts the theme to SVG export colors
func (t Theme) Palette() export.Palette {
	return export.Palette{
		Background: string(t.Background),
		Bar:        string(t.Bar),
		Comparing:  string(t.Comparing),
		Swapping:   string(t.Swapping),
		Text:       string(t.Text),
	}
}
