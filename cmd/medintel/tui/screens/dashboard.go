package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/medintel/cmd/medintel/tui/components"
	"github.com/mrsinham/medintel/internal/dashboard"
	"github.com/mrsinham/medintel/internal/nav"
)

var statusKeys = map[dashboard.Status]string{
	dashboard.StatusTaken:    "StatusTaken",
	dashboard.StatusUpcoming: "StatusUpcoming",
	dashboard.StatusMissed:   "StatusMissed",
}

// DashboardScreen shows today's doses
type DashboardScreen struct {
	env      *Env
	cursor   int
	progress progress.Model
}

// NewDashboardScreen creates the dashboard screen
func NewDashboardScreen(env *Env) *DashboardScreen {
	p := progress.New(
		progress.WithSolidFill(string(components.Current().Primary)),
		progress.WithoutPercentage(),
	)
	p.Width = 40
	return &DashboardScreen{env: env, progress: p}
}

// Init implements tea.Model
func (s *DashboardScreen) Init() tea.Cmd { return nil }

// Refresh implements Screen
func (s *DashboardScreen) Refresh() tea.Cmd { return nil }

// Update implements tea.Model
func (s *DashboardScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	board := s.env.RT.Board()
	if board == nil {
		return s, nil
	}
	meds := board.Medications()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.progress.Width = min(40, max(10, msg.Width-20))
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(meds)-1 {
				s.cursor++
			}
		case "enter", "t":
			if len(meds) > 0 {
				if err := s.env.RT.MarkTaken(meds[s.cursor].ID); err != nil {
					return s, errorCmd(err)
				}
			}
		case "a":
			if err := s.env.RT.AddPrescription(); err != nil {
				return s, errorCmd(err)
			}
		case "o":
			if err := s.env.RT.Logout(); err != nil {
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

// Cursor returns the highlighted dose
func (s *DashboardScreen) Cursor() int { return s.cursor }

// View implements tea.Model
func (s *DashboardScreen) View() string {
	board := s.env.RT.Board()
	if board == nil {
		return ""
	}
	l := s.env.L

	greeting := l.TData("Greeting", map[string]any{
		"Greeting": l.T(dashboard.GreetingKey(s.env.RT.Now().Hour())),
		"Name":     board.UserName,
	})
	header := components.TitleStyle.Render(greeting) + " " + components.BadgeStyle.Render(l.T(roleTitle(board.Role)))

	lines := []string{header}
	if board.Role == nav.RoleCaregiver {
		if p := s.env.RT.Router().PatientName(); p != "" {
			lines = append(lines, components.SubtitleStyle.Render(l.TData("CaringFor", map[string]any{"Name": p})))
		}
	}

	meds := board.Medications()
	lines = append(lines,
		s.progress.ViewAs(board.Progress()/100),
		l.TData("TodayProgress", map[string]any{"Taken": board.Taken(), "Total": len(meds)}),
	)
	if next, ok := board.NextDose(); ok {
		lines = append(lines, components.WarningStyle.Render(l.TData("NextDose", map[string]any{
			"Name": next.Name, "Dosage": next.Dosage, "Time": next.Time,
		})))
	} else {
		lines = append(lines, components.SuccessStyle.Render(l.T("AllDosesTaken")))
	}
	lines = append(lines, "")

	for i, m := range meds {
		marker := "  "
		if i == s.cursor {
			marker = components.SelectedStyle.Render("> ")
		}
		status := l.T(statusKeys[m.Status])
		if m.Status == dashboard.StatusTaken {
			status = components.SuccessStyle.Render("✓ " + status)
		} else if m.NextDue != "" {
			status += " " + components.HintStyle.Render(l.TData("DueIn", map[string]any{"Due": m.NextDue}))
		}
		lines = append(lines, fmt.Sprintf("%s%-8s %-14s %-6s %s", marker, m.Time, m.Name, m.Dosage, status))
	}

	if added := s.env.RT.Added(); len(added) > 0 {
		lines = append(lines, "", components.SubtitleStyle.Render(l.T("AddedThisSession")))
		for _, m := range added {
			lines = append(lines, fmt.Sprintf("  %s %s  %s", m.Name, m.Dose, strings.Join(m.Times, ", ")))
		}
	}

	lines = append(lines, "", components.HintStyle.Render(
		"↑/↓: "+l.T("Move")+" | Enter: "+l.T("MarkTaken")+" | a: "+l.T("UploadTitle")+" | o: "+l.T("LogOut")+" | Esc: "+l.T("Back")))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func roleTitle(r nav.Role) string {
	if r == nav.RoleCaregiver {
		return "BadgeCaregiver"
	}
	return "BadgePatient"
}
