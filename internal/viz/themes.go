package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the scroll demo.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Row    lipgloss.Color
	RowAlt lipgloss.Color
	Edge   lipgloss.Color // overscroll gap
	Thumb  lipgloss.Color
	Track  lipgloss.Color
	Chart  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Title:  lipgloss.Color("#ff00ff"),
		Row:    lipgloss.Color("#ffffff"),
		RowAlt: lipgloss.Color("#00ffff"),
		Edge:   lipgloss.Color("#ff8800"),
		Thumb:  lipgloss.Color("#ffff00"),
		Track:  lipgloss.Color("#333333"),
		Chart:  lipgloss.Color("#00ffff"),
		Label:  lipgloss.Color("#888899"),
		Value:  lipgloss.Color("#00ccff"),
		Muted:  lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Title:  lipgloss.Color("#88ff88"),
		Row:    lipgloss.Color("#00ff00"),
		RowAlt: lipgloss.Color("#00cc00"),
		Edge:   lipgloss.Color("#ffff00"),
		Thumb:  lipgloss.Color("#88ff88"),
		Track:  lipgloss.Color("#003300"),
		Chart:  lipgloss.Color("#00ff00"),
		Label:  lipgloss.Color("#00aa00"),
		Value:  lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Title:  lipgloss.Color("#ffffff"),
		Row:    lipgloss.Color("#ffffff"),
		RowAlt: lipgloss.Color("#cccccc"),
		Edge:   lipgloss.Color("#0088ff"),
		Thumb:  lipgloss.Color("#ffffff"),
		Track:  lipgloss.Color("#444444"),
		Chart:  lipgloss.Color("#cccccc"),
		Label:  lipgloss.Color("#888888"),
		Value:  lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#555555"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Title:  lipgloss.Color("#00a8cc"),
		Row:    lipgloss.Color("#e0f0ff"),
		RowAlt: lipgloss.Color("#88c8ee"),
		Edge:   lipgloss.Color("#ffd700"),
		Thumb:  lipgloss.Color("#0077be"),
		Track:  lipgloss.Color("#001a33"),
		Chart:  lipgloss.Color("#00a8cc"),
		Label:  lipgloss.Color("#4488aa"),
		Value:  lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#335577"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Title:  lipgloss.Color("#ff6b6b"),
		Row:    lipgloss.Color("#fff5f5"),
		RowAlt: lipgloss.Color("#feca57"),
		Edge:   lipgloss.Color("#ff9ff3"),
		Thumb:  lipgloss.Color("#ff6b6b"),
		Track:  lipgloss.Color("#2d1b2e"),
		Chart:  lipgloss.Color("#feca57"),
		Label:  lipgloss.Color("#8b6b8c"),
		Value:  lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#5b3b5c"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
