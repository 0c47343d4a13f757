package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/medintel/cmd/medintel/tui/components"
	"github.com/mrsinham/medintel/internal/nav"
)

var roleChoices = []struct {
	role        nav.Role
	title, desc string
}{
	{nav.RolePatient, "RolePatient", "RolePatientDesc"},
	{nav.RoleCaregiver, "RoleCaregiver", "RoleCaregiverDesc"},
}

// RoleScreen asks whether the user is a patient or a caregiver
type RoleScreen struct {
	env    *Env
	cursor int
}

// NewRoleScreen creates the role selection screen
func NewRoleScreen(env *Env) *RoleScreen {
	return &RoleScreen{env: env}
}

// Init implements tea.Model
func (s *RoleScreen) Init() tea.Cmd { return nil }

// Refresh implements Screen
func (s *RoleScreen) Refresh() tea.Cmd { return nil }

// Update implements tea.Model
func (s *RoleScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(roleChoices)-1 {
				s.cursor++
			}
		case "enter":
			if err := s.env.RT.SelectRole(roleChoices[s.cursor].role); err != nil {
				return s, errorCmd(err)
			}
		case "esc":
			if _, err := s.env.RT.Back(); err != nil {
				return s, errorCmd(err)
			}
		}
	}
	return s, nil
}

// Cursor returns the highlighted choice
func (s *RoleScreen) Cursor() int { return s.cursor }

// View implements tea.Model
func (s *RoleScreen) View() string {
	l := s.env.L
	lines := []string{components.TitleStyle.Render(l.T("RoleTitle"))}
	for i, c := range roleChoices {
		marker := "  "
		title := components.TextStyle.Render(l.T(c.title))
		if i == s.cursor {
			marker = components.SelectedStyle.Render("> ")
			title = components.SelectedStyle.Render(l.T(c.title))
		}
		lines = append(lines, marker+title, "    "+components.HintStyle.Render(l.T(c.desc)), "")
	}
	lines = append(lines, components.HintStyle.Render("↑/↓: "+l.T("Move")+" | Enter: "+l.T("Select")+" | Esc: "+l.T("Back")))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
