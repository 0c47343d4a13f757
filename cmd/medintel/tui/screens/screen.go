package screens

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrsinham/medintel/internal/app"
	"github.com/mrsinham/medintel/internal/locale"
	"github.com/mrsinham/medintel/internal/nav"
)

// JobDoneMsg carries the result of a submission run off the update loop.
type JobDoneMsg struct {
	Job *app.Job
	Err error
}

// ErrorMsg is sent when the application cannot continue
type ErrorMsg struct {
	Error error
}

// Env is shared by every screen. The orchestrator keeps the size current.
type Env struct {
	RT     *app.Runtime
	L      *locale.Localizer
	Width  int
	Height int
}

// Screen is a view of the runtime's active screen.
type Screen interface {
	tea.Model
	// Refresh re-reads runtime state after it changed outside the screen,
	// e.g. when a submission result was delivered.
	Refresh() tea.Cmd
}

// For builds the view of the runtime's active screen.
func For(env *Env) Screen {
	switch env.RT.Screen() {
	case nav.Welcome:
		return NewWelcomeScreen(env)
	case nav.RoleSelection:
		return NewRoleScreen(env)
	case nav.Dashboard:
		return NewDashboardScreen(env)
	case nav.PrescriptionFlow:
		return NewPrescriptionScreen(env)
	}
	return NewFormScreen(env)
}
