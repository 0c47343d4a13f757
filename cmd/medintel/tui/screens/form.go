package screens

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/medintel/cmd/medintel/tui/components"
	"github.com/mrsinham/medintel/internal/flow"
	"github.com/mrsinham/medintel/internal/nav"
	"github.com/mrsinham/medintel/internal/wizards"
)

// FormScreen renders the current step of a form wizard: sign-in, sign-up,
// both onboardings and manual medication entry.
type FormScreen struct {
	env       *Env
	wizard    flow.Stepper
	form      *huh.Form
	binding   *binding
	helpPanel *components.HelpPanel
	spinner   spinner.Model

	index   int
	request flow.RequestState
	hint    string
}

// NewFormScreen creates the screen for the runtime's active wizard
func NewFormScreen(env *Env) *FormScreen {
	s := &FormScreen{
		env:       env,
		wizard:    env.RT.Wizard(),
		helpPanel: components.NewHelpPanel(env.L),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.helpPanel.SetSize(env.Width/3, env.Height/2)
	s.index = s.wizard.Index()
	s.request = s.wizard.Request()
	s.build()
	return s
}

func (s *FormScreen) build() {
	s.binding = newBinding()
	fields := buildFields(s.wizard.Name(), s.wizard.StepName(), s.wizard.Data(), s.env.L, s.binding, s.env.RT.Now())
	s.form = huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(false).
		WithShowErrors(true).
		WithTheme(components.FormTheme())
}

// Init implements tea.Model
func (s *FormScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *FormScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			s.binding.commit(s.wizard.Data())
			if _, err := s.env.RT.Back(); err != nil {
				return s, errorCmd(err)
			}
			return s, s.Refresh()
		case "ctrl+n":
			if s.env.RT.Screen() == nav.SignIn {
				if err := s.env.RT.OpenSignUp(); err != nil {
					return s, errorCmd(err)
				}
				return s, nil
			}
		case "ctrl+a":
			if s.wizard.Name() == "manual-entry" {
				s.binding.commit(s.wizard.Data())
				wizards.AddReminder(s.wizard.Data())
				s.build()
				return s, s.form.Init()
			}
		case "ctrl+d":
			if s.wizard.Name() == "manual-entry" {
				s.binding.commit(s.wizard.Data())
				d := s.wizard.Data()
				wizards.RemoveReminder(d, len(d.Strings(wizards.FieldMedTimes))-1)
				s.build()
				return s, s.form.Init()
			}
		}
		if s.wizard.Request() == flow.RequestPending {
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	case spinner.TickMsg:
		if s.wizard.Request() != flow.RequestPending {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		return s, s.submit()
	}

	return s, cmd
}

// submit hands the completed form to the wizard.
func (s *FormScreen) submit() tea.Cmd {
	s.binding.commit(s.wizard.Data())
	s.hint = ""
	out, err := s.env.RT.Next()
	if err != nil {
		return errorCmd(err)
	}
	switch out {
	case flow.OutcomeRefused:
		id, ok := refusalHints[stepKey(s.wizard.Name(), s.wizard.StepName())]
		if !ok {
			id = "Required"
		}
		s.hint = s.env.L.TData(id, map[string]any{"Length": wizards.OTPLength})
		s.build()
		return s.form.Init()
	case flow.OutcomeSubmitRequired:
		s.request = flow.RequestPending
		return s.spinner.Tick
	}
	return s.Refresh()
}

// Refresh implements Screen
func (s *FormScreen) Refresh() tea.Cmd {
	if s.wizard != s.env.RT.Wizard() {
		return nil
	}
	if s.wizard.Disposed() {
		return nil
	}
	req := s.wizard.Request()
	switch {
	case s.wizard.Index() != s.index:
		s.index = s.wizard.Index()
		s.request = req
		s.hint = ""
		s.build()
		return s.form.Init()
	case req == flow.RequestFailed && s.request != flow.RequestFailed:
		s.request = req
		s.hint = s.env.L.TData("RequestFailed", map[string]any{"Error": s.wizard.Err()})
		s.build()
		return s.form.Init()
	case req == flow.RequestPending && s.request != flow.RequestPending:
		s.request = req
		return s.spinner.Tick
	}
	s.request = req
	return nil
}

// View implements tea.Model
func (s *FormScreen) View() string {
	l := s.env.L
	key := stepKey(s.wizard.Name(), s.wizard.StepName())
	title := components.TitleStyle.Render(l.T(stepTitles[key]))

	parts := []string{title}
	if s.wizard.Len() > 1 {
		parts = append(parts, components.SubtitleStyle.Render(l.TData("StepOf", map[string]any{
			"Current": s.wizard.Index() + 1,
			"Total":   s.wizard.Len(),
		})))
	}
	if s.wizard.Request() == flow.RequestPending {
		parts = append(parts, s.spinner.View()+" "+l.T("Submitting"))
	} else {
		parts = append(parts, s.form.View())
	}
	if s.hint != "" {
		parts = append(parts, components.ErrorStyle.Render(s.hint))
	}
	if panel := s.helpPanel.View(); panel != "" {
		parts = append(parts, "", panel)
	}
	parts = append(parts, "", components.HintStyle.Render(s.keys()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *FormScreen) keys() string {
	keys := "Tab: " + s.env.L.T("NextField") + " | Enter: " + s.env.L.T("Continue") + " | Esc: " + s.env.L.T("Back")
	switch s.wizard.Name() {
	case "sign-in":
		keys += " | Ctrl+N: " + s.env.L.T("SignUpTitle")
	case "manual-entry":
		keys += " | Ctrl+A: " + s.env.L.T("AddReminder") + " | Ctrl+D: " + s.env.L.T("RemoveReminder")
	}
	return keys
}

// Hint returns the message shown under the form
func (s *FormScreen) Hint() string { return s.hint }

// Form returns the huh form of the current step
func (s *FormScreen) Form() *huh.Form { return s.form }

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Error: err} }
}
