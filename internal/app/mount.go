package app

import (
	"github.com/mrsinham/medintel/internal/dashboard"
	"github.com/mrsinham/medintel/internal/flow"
	"github.com/mrsinham/medintel/internal/nav"
	"github.com/mrsinham/medintel/internal/task"
)

// mount is the live state of the active screen. It is rebuilt from scratch
// every time the router changes screen.
type mount struct {
	id     int
	screen nav.Screen
	scope  *task.Scope

	// wizard drives the screen, nil for role selection and the dashboard.
	wizard flow.Stepper
	// manual is the manual medication entry opened over the prescription wizard.
	manual flow.Stepper
	board  *dashboard.Board

	// inflight is the most recent submission started on this screen.
	inflight *Job
}

// active returns the wizard receiving user input.
func (m *mount) active() flow.Stepper {
	if m.manual != nil {
		return m.manual
	}
	return m.wizard
}

func (m *mount) close() {
	if m.manual != nil {
		m.manual.Dispose()
	}
	if m.wizard != nil {
		m.wizard.Dispose()
	}
	m.scope.Close()
}

// Job is a submission waiting to be executed by the host.
type Job struct {
	mountID int
	ticket  string
	wizard  string
	step    string
	work    task.Func
	scope   *task.Scope
}

// Wizard names the wizard that started the job.
func (j *Job) Wizard() string { return j.wizard }

// Step names the step being submitted.
func (j *Job) Step() string { return j.step }

// Ticket identifies the request.
func (j *Job) Ticket() string { return j.ticket }

// Run executes the job's work within its screen's scope. It may be called on
// any goroutine; its result must be handed back with Runtime.Finish.
func (j *Job) Run() error {
	return j.scope.Run(j.work)
}
