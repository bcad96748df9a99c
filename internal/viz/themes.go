package viz

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Progress bar gradient.
	BarFrom lipgloss.Color
	BarTo   lipgloss.Color
}

var (
	ThemeSky = Theme{
		Name:      "sky",
		Primary:   lipgloss.Color("#5fafff"),
		Secondary: lipgloss.Color("#87d7ff"),
		Accent:    lipgloss.Color("#ff946b"),
		Text:      lipgloss.Color("#e4eeff"),
		Muted:     lipgloss.Color("#6c7fa6"),
		Success:   lipgloss.Color("#76ac6c"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff5f5f"),
		BarFrom:   lipgloss.Color("#ff946b"),
		BarTo:     lipgloss.Color("#ffe4d8"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
		BarFrom:   lipgloss.Color("#005500"),
		BarTo:     lipgloss.Color("#00ff00"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
		BarFrom:   lipgloss.Color("#888888"),
		BarTo:     lipgloss.Color("#ffffff"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Success:   lipgloss.Color("#5fd068"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
		BarFrom:   lipgloss.Color("#FF8C00"),
		BarTo:     lipgloss.Color("#FF5F1F"),
	}

	Themes = []Theme{ThemeSky, ThemeRetroGreen, ThemeMinimal, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
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

// nextTheme cycles to the theme after name.
func nextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
