package components

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette of the interface.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var themes = map[string]Theme{
	"classic": {
		Name:    "classic",
		Primary: lipgloss.Color("63"),
		Muted:   lipgloss.Color("244"),
		Text:    lipgloss.Color("252"),
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("214"),
		Error:   lipgloss.Color("196"),
	},
	"medintel": {
		Name:    "medintel",
		Primary: lipgloss.Color("37"),
		Muted:   lipgloss.Color("245"),
		Text:    lipgloss.Color("255"),
		Success: lipgloss.Color("35"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("203"),
	},
}

var (
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	TextStyle     lipgloss.Style
	HintStyle     lipgloss.Style
	SuccessStyle  lipgloss.Style
	WarningStyle  lipgloss.Style
	ErrorStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	BadgeStyle    lipgloss.Style

	current Theme
)

func init() {
	apply(themes["classic"])
}

// UseTheme switches every style to the named palette.
func UseTheme(name string) error {
	t, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	apply(t)
	return nil
}

// Current returns the active palette.
func Current() Theme { return current }

// FormTheme returns the huh theme matching the active palette.
func FormTheme() *huh.Theme {
	if current.Name == "medintel" {
		return huh.ThemeCharm()
	}
	return huh.ThemeBase()
}

func apply(t Theme) {
	current = t

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		MarginBottom(1)

	TextStyle = lipgloss.NewStyle().Foreground(t.Text)

	HintStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	BadgeStyle = lipgloss.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.Color("255")).
		Padding(0, 1)
}
