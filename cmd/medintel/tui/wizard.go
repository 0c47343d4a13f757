// Package tui is the terminal interface of medintel.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mrsinham/medintel/cmd/medintel/tui/components"
	"github.com/mrsinham/medintel/cmd/medintel/tui/screens"
	"github.com/mrsinham/medintel/internal/app"
	"github.com/mrsinham/medintel/internal/config"
	"github.com/mrsinham/medintel/internal/locale"
)

// Wizard is the main orchestrator of the interface. It follows the runtime's
// active screen and runs submissions as commands.
type Wizard struct {
	rt     *app.Runtime
	env    *screens.Env
	logger *zap.Logger

	screen  screens.Screen
	mountID int

	// Final state
	cancelled bool
	err       error
}

// NewWizard creates the orchestrator over rt.
func NewWizard(rt *app.Runtime, l *locale.Localizer, logger *zap.Logger) *Wizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Wizard{
		rt:     rt,
		env:    &screens.Env{RT: rt, L: l},
		logger: logger,
	}
	w.mountID = rt.MountID()
	w.screen = screens.For(w.env)
	return w
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.screen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.env.Width = msg.Width
		w.env.Height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			w.cancelled = true
			return w, tea.Quit
		}
	case screens.JobDoneMsg:
		out := w.rt.Finish(msg.Job, msg.Err)
		w.logger.Debug("submission finished",
			zap.String("wizard", msg.Job.Wizard()),
			zap.String("step", msg.Job.Step()),
			zap.String("request_id", msg.Job.Ticket()),
			zap.Stringer("outcome", out))
		return w, w.sync()
	case screens.ErrorMsg:
		w.err = msg.Error
		w.logger.Error("aborting", zap.Error(msg.Error))
		return w, tea.Quit
	}

	model, cmd := w.screen.Update(msg)
	if s, ok := model.(screens.Screen); ok {
		w.screen = s
	}
	return w, tea.Batch(cmd, w.sync())
}

// sync follows the runtime after it changed: it swaps the screen when a new
// one was mounted and turns queued submissions into commands.
func (w *Wizard) sync() tea.Cmd {
	if err := w.rt.Err(); err != nil {
		w.err = err
		return tea.Quit
	}

	var cmds []tea.Cmd
	if w.rt.MountID() != w.mountID {
		w.mountID = w.rt.MountID()
		w.screen = screens.For(w.env)
		cmds = append(cmds, w.screen.Init(), w.screen.Refresh())
	} else {
		cmds = append(cmds, w.screen.Refresh())
	}

	for _, job := range w.rt.TakeJobs() {
		cmds = append(cmds, runJob(job))
	}
	return tea.Batch(cmds...)
}

func runJob(job *app.Job) tea.Cmd {
	return func() tea.Msg {
		return screens.JobDoneMsg{Job: job, Err: job.Run()}
	}
}

// View implements tea.Model.
func (w *Wizard) View() string {
	if w.cancelled {
		return w.env.L.T("Cancelled") + "\n"
	}
	header := components.BadgeStyle.Render("MedIntel") + " " +
		components.HintStyle.Render(w.rt.Screen().String())
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", w.screen.View()),
	)
}

// Screen returns the view of the active screen.
func (w *Wizard) Screen() screens.Screen { return w.screen }

// Err returns the error that stopped the interface, if any.
func (w *Wizard) Err() error { return w.err }

// Run starts the interactive interface.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if err := components.UseTheme(cfg.Theme); err != nil {
		return err
	}
	l, err := locale.New(cfg.Language)
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}
	rt, err := app.New(ctx, app.Options{Config: cfg, Logger: logger})
	if err != nil {
		return fmt.Errorf("starting runtime: %w", err)
	}
	defer rt.Close()

	wizard := NewWizard(rt, l, logger)
	p := tea.NewProgram(wizard, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running interface: %w", err)
	}

	if w, ok := finalModel.(*Wizard); ok {
		if w.cancelled {
			return nil
		}
		return w.err
	}
	return nil
}
