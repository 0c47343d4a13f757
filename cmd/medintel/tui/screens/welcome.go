package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/medintel/cmd/medintel/tui/components"
)

var slides = []struct{ title, body string }{
	{"SlideMissionTitle", "SlideMissionBody"},
	{"SlideHowItWorksTitle", "SlideHowItWorksBody"},
	{"SlideSafetyTitle", "SlideSafetyBody"},
}

// WelcomeScreen shows the introduction carousel
type WelcomeScreen struct {
	env *Env
}

// NewWelcomeScreen creates the carousel screen
func NewWelcomeScreen(env *Env) *WelcomeScreen {
	return &WelcomeScreen{env: env}
}

// Init implements tea.Model
func (s *WelcomeScreen) Init() tea.Cmd { return nil }

// Refresh implements Screen
func (s *WelcomeScreen) Refresh() tea.Cmd { return nil }

// Update implements tea.Model
func (s *WelcomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right", "l", "enter", " ":
			if _, err := s.env.RT.Next(); err != nil {
				return s, errorCmd(err)
			}
		case "left", "h", "esc":
			if _, err := s.env.RT.Back(); err != nil {
				return s, errorCmd(err)
			}
		}
	}
	return s, nil
}

// View implements tea.Model
func (s *WelcomeScreen) View() string {
	w := s.env.RT.Wizard()
	if w == nil {
		return ""
	}
	l := s.env.L
	i := w.Index()
	slide := slides[i]

	dots := make([]string, len(slides))
	for j := range slides {
		if j == i {
			dots[j] = components.SelectedStyle.Render("●")
		} else {
			dots[j] = components.HintStyle.Render("○")
		}
	}

	button := l.T("Next")
	if i == len(slides)-1 {
		button = l.T("GetStarted")
	}

	width := 60
	if s.env.Width > 0 && s.env.Width < 64 {
		width = s.env.Width - 4
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render(l.T(slide.title)),
		components.TextStyle.Width(width).Render(l.T(slide.body)),
		"",
		strings.Join(dots, " "),
		"",
		components.BadgeStyle.Render(button),
		"",
		components.HintStyle.Render("←/→: "+l.T("Back")+"/"+l.T("Next")+" | Ctrl+C: "+l.T("Quit")),
	)
}
