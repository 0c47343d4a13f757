package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/medintel/cmd/medintel/tui/components"
	"github.com/mrsinham/medintel/internal/flow"
	"github.com/mrsinham/medintel/internal/prescription"
	"github.com/mrsinham/medintel/internal/wizards"
)

var prescriptionTitles = map[wizards.PrescriptionStep]string{
	wizards.PrescriptionUpload:     "UploadTitle",
	wizards.PrescriptionProcessing: "ProcessingTitle",
	wizards.PrescriptionAnalysis:   "AnalysisTitle",
	wizards.PrescriptionSafety:     "SafetyTitle",
	wizards.PrescriptionTimeline:   "TimelineTitle",
	wizards.PrescriptionSuccess:    "SuccessTitle",
}

// PrescriptionScreen walks through capturing a prescription. Manual entry
// is shown in place of the upload step while open.
type PrescriptionScreen struct {
	env      *Env
	progress progress.Model
	spinner  spinner.Model
	manual   *FormScreen
	meds     []prescription.Medication
}

// NewPrescriptionScreen creates the prescription capture screen
func NewPrescriptionScreen(env *Env) *PrescriptionScreen {
	p := progress.New(progress.WithSolidFill(string(components.Current().Primary)))
	p.Width = 40
	return &PrescriptionScreen{
		env:      env,
		progress: p,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Pulse)),
		meds:     prescription.Extract(),
	}
}

func (s *PrescriptionScreen) step() wizards.PrescriptionStep {
	if w := s.env.RT.Wizard(); w != nil {
		return wizards.PrescriptionStep(w.StepName())
	}
	return wizards.PrescriptionUpload
}

// Init implements tea.Model
func (s *PrescriptionScreen) Init() tea.Cmd { return nil }

// Refresh implements Screen
func (s *PrescriptionScreen) Refresh() tea.Cmd {
	switch {
	case s.env.RT.ManualEntryOpen() && s.manual == nil:
		s.manual = NewFormScreen(s.env)
		return s.manual.Init()
	case !s.env.RT.ManualEntryOpen():
		s.manual = nil
	case s.manual != nil:
		return s.manual.Refresh()
	}
	if s.step() == wizards.PrescriptionProcessing {
		return s.spinner.Tick
	}
	return nil
}

// Update implements tea.Model
func (s *PrescriptionScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.manual != nil {
		_, cmd := s.manual.Update(msg)
		return s, tea.Batch(cmd, s.Refresh())
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.progress.Width = min(40, max(10, msg.Width-20))
	case spinner.TickMsg:
		if s.step() != wizards.PrescriptionProcessing {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "right", "l":
			if _, err := s.env.RT.Next(); err != nil {
				return s, errorCmd(err)
			}
			return s, s.Refresh()
		case "esc", "left", "h":
			if _, err := s.env.RT.Back(); err != nil {
				return s, errorCmd(err)
			}
			return s, s.Refresh()
		case "s":
			s.env.RT.Skip()
		case "m":
			if s.step() == wizards.PrescriptionUpload {
				if err := s.env.RT.OpenManualEntry(); err != nil {
					return s, errorCmd(err)
				}
				return s, s.Refresh()
			}
		}
	}
	return s, nil
}

// Manual returns the manual entry form while it is open
func (s *PrescriptionScreen) Manual() *FormScreen { return s.manual }

// View implements tea.Model
func (s *PrescriptionScreen) View() string {
	if s.manual != nil {
		return s.manual.View()
	}
	l := s.env.L
	step := s.step()

	lines := []string{
		components.TitleStyle.Render(l.T(prescriptionTitles[step])),
		s.progress.ViewAs(float64(step.Progress()) / 100),
		"",
	}

	switch step {
	case wizards.PrescriptionUpload:
		lines = append(lines,
			components.TextStyle.Render(l.T("UploadBody")),
			"",
			components.BadgeStyle.Render(l.T("ScanPrescription"))+"  "+components.HintStyle.Render(l.T("EnterManually")),
		)
	case wizards.PrescriptionProcessing:
		line := s.spinner.View() + " " + l.T("ProcessingTitle")
		if w := s.env.RT.Wizard(); w != nil && w.Request() == flow.RequestFailed {
			line = components.ErrorStyle.Render(l.TData("RequestFailed", map[string]any{"Error": w.Err()}))
		}
		lines = append(lines, line, components.HintStyle.Render(l.T("SkipHint")))
	case wizards.PrescriptionAnalysis:
		for _, m := range s.meds {
			name := components.SelectedStyle.Render(m.Name)
			if m.Antibiotic {
				name += " " + components.WarningStyle.Render("("+l.T("Antibiotic")+")")
			}
			lines = append(lines, name,
				fmt.Sprintf("  %s · %s · %s", m.Dose, m.Frequency(), m.Duration()),
				"  "+strings.Join(m.Times, ", "))
		}
	case wizards.PrescriptionSafety:
		for _, n := range prescription.Check(s.meds) {
			mark := components.SuccessStyle.Render("✓")
			if n.Severity == prescription.SeverityInfo {
				mark = components.WarningStyle.Render("!")
			}
			lines = append(lines, mark+" "+components.TextStyle.Render(n.Title), "  "+components.HintStyle.Render(n.Detail))
		}
	case wizards.PrescriptionTimeline:
		for _, d := range prescription.Timeline(s.meds) {
			lines = append(lines, fmt.Sprintf("%-9s %s  %s", d.Time, d.Name, components.HintStyle.Render(d.Note)))
		}
	case wizards.PrescriptionSuccess:
		lines = append(lines, components.SuccessStyle.Render("✓ "+l.T("SuccessBody")))
	}

	lines = append(lines, "", components.HintStyle.Render("Enter: "+l.T("Next")+" | Esc: "+l.T("Back")))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
