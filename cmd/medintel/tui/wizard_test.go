package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrsinham/medintel/cmd/medintel/tui/screens"
	"github.com/mrsinham/medintel/internal/app"
	"github.com/mrsinham/medintel/internal/config"
	"github.com/mrsinham/medintel/internal/flow"
	"github.com/mrsinham/medintel/internal/locale"
	"github.com/mrsinham/medintel/internal/nav"
	"github.com/mrsinham/medintel/internal/task"
	"github.com/mrsinham/medintel/internal/wizards"
)

func newTestRuntime(t *testing.T, screen string) *app.Runtime {
	t.Helper()
	rt, err := app.New(context.Background(), app.Options{
		Config: config.Default(),
		Now:    func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) },
		Work:   func(string, string) task.Func { return task.Delay(0) },
	})
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	t.Cleanup(rt.Close)
	if screen != "" {
		if err := rt.Navigate(screen); err != nil {
			t.Fatalf("Navigate(%s) failed: %v", screen, err)
		}
	}
	return rt
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(w *Wizard, keys ...string) {
	for _, k := range keys {
		w.Update(key(k))
	}
}

func TestWizard_CarouselKeysReachSignIn(t *testing.T) {
	rt := newTestRuntime(t, "")
	w := NewWizard(rt, locale.MustNew("en"), nil)

	if _, ok := w.Screen().(*screens.WelcomeScreen); !ok {
		t.Fatalf("initial screen = %T, want *screens.WelcomeScreen", w.Screen())
	}
	send(w, "right", "right")
	if rt.Screen() != nav.Welcome {
		t.Errorf("Screen = %s after two slides, want welcome", rt.Screen())
	}
	send(w, "right")
	if rt.Screen() != nav.SignIn {
		t.Errorf("Screen = %s, want sign-in", rt.Screen())
	}
	if _, ok := w.Screen().(*screens.FormScreen); !ok {
		t.Errorf("screen = %T, want *screens.FormScreen", w.Screen())
	}
}

func TestWizard_JobResultNavigates(t *testing.T) {
	rt := newTestRuntime(t, "sign-in")
	w := NewWizard(rt, locale.MustNew("en"), nil)

	d := rt.Wizard().Data()
	d.Set(wizards.FieldEmail, "lan@example.com")
	d.Set(wizards.FieldPassword, "secret")
	out, err := rt.Next()
	if err != nil || out != flow.OutcomeSubmitRequired {
		t.Fatalf("Next() = %v, %v; want submit-required", out, err)
	}

	jobs := rt.TakeJobs()
	if len(jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(jobs))
	}
	msg := runJob(jobs[0])()
	done, ok := msg.(screens.JobDoneMsg)
	if !ok {
		t.Fatalf("runJob produced %T, want screens.JobDoneMsg", msg)
	}
	if done.Err != nil {
		t.Errorf("job error = %v, want nil", done.Err)
	}

	w.Update(done)
	if rt.Screen() != nav.RoleSelection {
		t.Errorf("Screen = %s, want role-selection", rt.Screen())
	}
	if _, ok := w.Screen().(*screens.RoleScreen); !ok {
		t.Errorf("screen = %T, want *screens.RoleScreen", w.Screen())
	}
}

func TestWizard_RoleSelection(t *testing.T) {
	rt := newTestRuntime(t, "role-selection")
	w := NewWizard(rt, locale.MustNew("en"), nil)

	send(w, "down", "enter")
	if rt.Screen() != nav.CaregiverOnboarding {
		t.Errorf("Screen = %s, want caregiver-onboarding", rt.Screen())
	}
	if rt.Role() != nav.RoleCaregiver {
		t.Errorf("Role = %s, want caregiver", rt.Role())
	}

	send(w, "esc")
	if rt.Screen() != nav.RoleSelection {
		t.Errorf("Screen = %s after esc, want role-selection", rt.Screen())
	}
}

func TestWizard_Dashboard(t *testing.T) {
	rt := newTestRuntime(t, "")
	if err := rt.Router().CompleteOnboarding(nav.Profile{Role: nav.RolePatient, UserName: "Mai"}); err != nil {
		t.Fatal(err)
	}
	w := NewWizard(rt, locale.MustNew("en"), nil)

	view := w.View()
	if !strings.Contains(view, "Good morning, Mai") {
		t.Errorf("dashboard view should greet Mai in the morning:\n%s", view)
	}

	send(w, "down", "enter")
	if got := rt.Board().Taken(); got != 2 {
		t.Errorf("Taken() = %d, want 2", got)
	}

	send(w, "a")
	if rt.Screen() != nav.PrescriptionFlow {
		t.Fatalf("Screen = %s, want prescription-flow", rt.Screen())
	}
	send(w, "esc")
	if rt.Screen() != nav.Dashboard {
		t.Errorf("Screen = %s, want dashboard", rt.Screen())
	}

	send(w, "o")
	if rt.Screen() != nav.Welcome {
		t.Errorf("Screen = %s after logout, want welcome", rt.Screen())
	}
}

func TestWizard_DashboardInVietnamese(t *testing.T) {
	rt := newTestRuntime(t, "")
	if err := rt.Router().CompleteOnboarding(nav.Profile{Role: nav.RoleCaregiver, UserName: "Minh", PatientName: "Lan"}); err != nil {
		t.Fatal(err)
	}
	w := NewWizard(rt, locale.MustNew("vi"), nil)

	view := w.View()
	for _, want := range []string{"Chào buổi sáng, Minh", "Đang chăm sóc Lan"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q:\n%s", want, view)
		}
	}
}

func TestWizard_PrescriptionSkipAndManualEntry(t *testing.T) {
	rt := newTestRuntime(t, "prescription-flow")
	w := NewWizard(rt, locale.MustNew("en"), nil)

	send(w, "m")
	ps, ok := w.Screen().(*screens.PrescriptionScreen)
	if !ok {
		t.Fatalf("screen = %T, want *screens.PrescriptionScreen", w.Screen())
	}
	if ps.Manual() == nil || !rt.ManualEntryOpen() {
		t.Fatal("manual entry should be open")
	}
	send(w, "esc")
	if ps.Manual() != nil || rt.ManualEntryOpen() {
		t.Fatal("manual entry should be closed")
	}

	send(w, "enter")
	if got := rt.Wizard().StepName(); got != string(wizards.PrescriptionProcessing) {
		t.Fatalf("step = %s, want processing", got)
	}
	if rt.Wizard().Request() != flow.RequestPending {
		t.Errorf("Request = %s, want pending", rt.Wizard().Request())
	}

	send(w, "s")
	if got := rt.Wizard().StepName(); got != string(wizards.PrescriptionAnalysis) {
		t.Errorf("step = %s after skip, want analysis", got)
	}
	if !strings.Contains(w.View(), "Amoxicillin 250mg") {
		t.Error("analysis should list Amoxicillin")
	}
}

func TestWizard_CtrlCCancels(t *testing.T) {
	rt := newTestRuntime(t, "")
	w := NewWizard(rt, locale.MustNew("en"), nil)

	_, cmd := w.Update(key("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if w.View() != "Cancelled.\n" {
		t.Errorf("View() = %q, want Cancelled.", w.View())
	}
}

func TestWizard_ErrorMsgStops(t *testing.T) {
	rt := newTestRuntime(t, "")
	w := NewWizard(rt, locale.MustNew("en"), nil)

	boom := errors.New("boom")
	w.Update(screens.ErrorMsg{Error: boom})
	if !errors.Is(w.Err(), boom) {
		t.Errorf("Err() = %v, want boom", w.Err())
	}
}
