// Package app composes the router with the wizard or dashboard mounted on
// the active screen. It is the headless core driven by the terminal UI and
// by the scenario tests.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mrsinham/medintel/internal/config"
	"github.com/mrsinham/medintel/internal/dashboard"
	"github.com/mrsinham/medintel/internal/flow"
	"github.com/mrsinham/medintel/internal/form"
	"github.com/mrsinham/medintel/internal/nav"
	"github.com/mrsinham/medintel/internal/prescription"
	"github.com/mrsinham/medintel/internal/task"
	"github.com/mrsinham/medintel/internal/wizards"
)

var (
	// ErrNoWizard is returned by wizard actions on a screen without one.
	ErrNoWizard = errors.New("no wizard on this screen")
	// ErrWrongScreen is returned by actions not offered on the active screen.
	ErrWrongScreen = errors.New("action not available on this screen")
)

// WorkFunc chooses the simulated remote call backing a submission.
type WorkFunc func(wizard, step string) task.Func

// Options configures a Runtime.
type Options struct {
	Config *config.Config
	Logger *zap.Logger
	// Now is the clock used for default birth years and greetings.
	Now func() time.Time
	// Work overrides the simulated calls, mainly for tests.
	Work WorkFunc
}

// Runtime owns the router and the mounted screen. It is not safe for
// concurrent use: only Job.Run may be called from another goroutine.
type Runtime struct {
	router *nav.Router
	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time
	work   WorkFunc

	ctx     context.Context
	mount   *mount
	nextID  int
	jobs    []*Job
	added   []prescription.Medication
	lastErr error
}

// New creates a runtime mounted on the welcome screen.
func New(ctx context.Context, opts Options) (*Runtime, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	router, err := nav.NewRouter(
		nav.WithDefaultUserName(cfg.DefaultUserName),
		nav.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		router: router,
		cfg:    cfg,
		logger: logger,
		now:    now,
		work:   opts.Work,
		ctx:    ctx,
	}
	if rt.work == nil {
		rt.work = rt.defaultWork
	}
	router.OnChange(func(from, to nav.Screen) { rt.remount(to) })
	rt.remount(router.Current())
	return rt, nil
}

func (rt *Runtime) defaultWork(wizard, step string) task.Func {
	if step == string(wizards.PrescriptionProcessing) {
		return task.Delay(rt.cfg.Processing())
	}
	return task.Delay(rt.cfg.Submit())
}

// Screen returns the active screen.
func (rt *Runtime) Screen() nav.Screen { return rt.router.Current() }

// Router exposes the router for read access.
func (rt *Runtime) Router() *nav.Router { return rt.router }

// Role returns the session role.
func (rt *Runtime) Role() nav.Role { return rt.router.Role() }

// UserName returns the session user name.
func (rt *Runtime) UserName() string { return rt.router.UserName() }

// Wizard returns the wizard receiving input, or nil.
func (rt *Runtime) Wizard() flow.Stepper { return rt.mount.active() }

// ManualEntryOpen reports whether manual medication entry is shown.
func (rt *Runtime) ManualEntryOpen() bool { return rt.mount.manual != nil }

// Board returns the dashboard state when the dashboard is active.
func (rt *Runtime) Board() *dashboard.Board { return rt.mount.board }

// Added returns medications saved through manual entry this session.
func (rt *Runtime) Added() []prescription.Medication {
	out := make([]prescription.Medication, len(rt.added))
	copy(out, rt.added)
	return out
}

// MountID changes every time a screen is mounted.
func (rt *Runtime) MountID() int { return rt.mount.id }

// Err returns the last navigation error raised from a wizard callback.
func (rt *Runtime) Err() error { return rt.lastErr }

// Now returns the runtime clock's current time.
func (rt *Runtime) Now() time.Time { return rt.now() }

// Close disposes the mounted screen and cancels its work.
func (rt *Runtime) Close() {
	rt.mount.close()
	rt.jobs = nil
}

// Navigate jumps to the screen named id.
func (rt *Runtime) Navigate(id string) error {
	return rt.router.NavigateTo(id)
}

// Next advances the active wizard. When the step must be submitted, a job is
// queued instead and OutcomeSubmitRequired is returned.
func (rt *Runtime) Next() (flow.Outcome, error) {
	w := rt.Wizard()
	if w == nil {
		return flow.OutcomeInert, fmt.Errorf("next on %s: %w", rt.Screen(), ErrNoWizard)
	}
	out := w.Next()
	if out == flow.OutcomeSubmitRequired {
		if err := rt.submit(w); err != nil {
			return out, err
		}
	}
	rt.afterStep(w, out)
	return out, nil
}

// Back retreats the active wizard, or follows the router's back table on
// screens without one.
func (rt *Runtime) Back() (flow.Outcome, error) {
	w := rt.Wizard()
	if w == nil {
		if err := rt.router.GoBack(); err != nil {
			return flow.OutcomeInert, err
		}
		return flow.OutcomeCancelled, nil
	}
	out := w.Back()
	rt.afterStep(w, out)
	return out, nil
}

// Submit queues the submission of the active wizard's current step.
func (rt *Runtime) Submit() error {
	w := rt.Wizard()
	if w == nil {
		return fmt.Errorf("submit on %s: %w", rt.Screen(), ErrNoWizard)
	}
	return rt.submit(w)
}

func (rt *Runtime) submit(w flow.Stepper) error {
	ticket, err := w.BeginSubmit()
	if err != nil {
		return fmt.Errorf("submit %s/%s: %w", w.Name(), w.StepName(), err)
	}
	j := &Job{
		mountID: rt.mount.id,
		ticket:  ticket,
		wizard:  w.Name(),
		step:    w.StepName(),
		work:    rt.work(w.Name(), w.StepName()),
		scope:   rt.mount.scope,
	}
	rt.mount.inflight = j
	rt.jobs = append(rt.jobs, j)
	return nil
}

// TakeJobs returns the queued submissions and clears the queue.
func (rt *Runtime) TakeJobs() []*Job {
	jobs := rt.jobs
	rt.jobs = nil
	return jobs
}

// Finish delivers the result of a job. Results for a screen that has since
// been unmounted, or for a request that was superseded, are dropped.
func (rt *Runtime) Finish(j *Job, err error) flow.Outcome {
	if j.mountID != rt.mount.id || errors.Is(err, task.ErrClosed) {
		rt.logger.Debug("dropping result of unmounted screen",
			zap.String("wizard", j.wizard), zap.String("request_id", j.ticket))
		return flow.OutcomeDisposed
	}
	w := rt.Wizard()
	if w == nil || w.Name() != j.wizard {
		return flow.OutcomeDisposed
	}
	out := w.Resolve(j.ticket, err)
	rt.afterStep(w, out)
	return out
}

// RunJobs executes every queued job inline, including jobs queued by the
// results of earlier ones, and returns the last outcome.
func (rt *Runtime) RunJobs() flow.Outcome {
	out := flow.OutcomeInert
	for len(rt.jobs) > 0 {
		for _, j := range rt.TakeJobs() {
			out = rt.Finish(j, j.Run())
		}
	}
	return out
}

// Skip resolves an auto-submitted step immediately, e.g. to skip the
// scanning animation.
func (rt *Runtime) Skip() flow.Outcome {
	w := rt.Wizard()
	if w == nil || !w.AutoSubmit() || w.Request() != flow.RequestPending {
		return flow.OutcomeInert
	}
	ticket := rt.pendingTicket(w)
	for i, j := range rt.jobs {
		if j.ticket == ticket {
			rt.jobs = append(rt.jobs[:i], rt.jobs[i+1:]...)
			break
		}
	}
	out := w.Resolve(ticket, nil)
	rt.afterStep(w, out)
	return out
}

// pendingTicket returns the ticket of w's request in flight, whether or not
// the host has already taken its job.
func (rt *Runtime) pendingTicket(w flow.Stepper) string {
	if rt.mount.inflight != nil && rt.mount.inflight.wizard == w.Name() {
		return rt.mount.inflight.ticket
	}
	return ""
}

// afterStep starts the submission of a freshly entered auto-submit step.
func (rt *Runtime) afterStep(w flow.Stepper, out flow.Outcome) {
	if w.Disposed() || !out.Moved() {
		return
	}
	if w.AutoSubmit() && w.Request() == flow.RequestIdle {
		if err := rt.submit(w); err != nil {
			rt.logger.Warn("auto submit failed", zap.Error(err))
		}
	}
}

// SelectRole records the role on the role selection screen.
func (rt *Runtime) SelectRole(role nav.Role) error {
	if rt.Screen() != nav.RoleSelection {
		return fmt.Errorf("select role on %s: %w", rt.Screen(), ErrWrongScreen)
	}
	return rt.router.SelectRole(role)
}

// OpenSignUp follows the sign-up link of the sign-in screen.
func (rt *Runtime) OpenSignUp() error {
	if rt.Screen() != nav.SignIn {
		return fmt.Errorf("open sign-up on %s: %w", rt.Screen(), ErrWrongScreen)
	}
	return rt.router.Navigate(nav.SignUp)
}

// MarkTaken marks a dashboard dose as taken.
func (rt *Runtime) MarkTaken(id string) error {
	if rt.mount.board == nil {
		return fmt.Errorf("mark taken on %s: %w", rt.Screen(), ErrWrongScreen)
	}
	return rt.mount.board.MarkTaken(id)
}

// AddPrescription opens the prescription wizard from the dashboard.
func (rt *Runtime) AddPrescription() error {
	if rt.Screen() != nav.Dashboard {
		return fmt.Errorf("add prescription on %s: %w", rt.Screen(), ErrWrongScreen)
	}
	return rt.router.Navigate(nav.PrescriptionFlow)
}

// Logout ends the session from the dashboard.
func (rt *Runtime) Logout() error {
	if rt.Screen() != nav.Dashboard {
		return fmt.Errorf("logout on %s: %w", rt.Screen(), ErrWrongScreen)
	}
	return rt.router.Logout()
}

// OpenManualEntry replaces scanning with manual entry on the upload step.
func (rt *Runtime) OpenManualEntry() error {
	w := rt.mount.wizard
	if rt.Screen() != nav.PrescriptionFlow || rt.mount.manual != nil ||
		w == nil || w.StepName() != string(wizards.PrescriptionUpload) {
		return fmt.Errorf("manual entry on %s: %w", rt.Screen(), ErrWrongScreen)
	}
	c, err := flow.New(wizards.ManualDefinition(), form.New(wizards.ManualDefaults()))
	if err != nil {
		return err
	}
	c.SetLogger(rt.logger)
	c.OnCancel(func() { rt.mount.manual = nil })
	c.OnComplete(func(map[string]any) {
		med := prescription.FromManualEntry(c.Data())
		rt.added = append(rt.added, med)
		rt.logger.Info("medication added", zap.String("id", med.ID), zap.String("name", med.Name))
		rt.navigate(nav.Dashboard)
	})
	rt.mount.manual = c
	return nil
}

func (rt *Runtime) navigate(s nav.Screen) {
	if err := rt.router.Navigate(s); err != nil {
		rt.lastErr = err
		rt.logger.Error("navigation failed", zap.Error(err))
	}
}

func (rt *Runtime) goBack() {
	if err := rt.router.GoBack(); err != nil {
		rt.lastErr = err
		rt.logger.Error("navigation failed", zap.Error(err))
	}
}

// remount tears down the previous screen and builds the new one at its
// first step.
func (rt *Runtime) remount(s nav.Screen) {
	if rt.mount != nil {
		rt.mount.close()
	}
	rt.jobs = nil
	rt.nextID++
	m := &mount{
		id:     rt.nextID,
		screen: s,
		scope:  task.NewScope(rt.ctx),
	}
	rt.mount = m

	var err error
	m.wizard, err = rt.buildWizard(s)
	if err != nil {
		rt.lastErr = err
		rt.logger.Error("mounting screen", zap.Stringer("screen", s), zap.Error(err))
	}
	if s == nav.Dashboard {
		m.board = dashboard.New(rt.router.Role(), rt.router.UserName())
	}
	rt.logger.Debug("screen mounted", zap.Stringer("screen", s), zap.Int("mount", m.id))
}

func (rt *Runtime) buildWizard(s nav.Screen) (flow.Stepper, error) {
	year := rt.now().Year()
	switch s {
	case nav.Welcome:
		c, err := flow.New(wizards.CarouselDefinition(), nil)
		if err != nil {
			return nil, err
		}
		c.OnComplete(func(map[string]any) { rt.navigate(nav.SignIn) })
		c.OnCancel(rt.goBack)
		return rt.attach(c), nil

	case nav.SignIn:
		c, err := flow.New(wizards.SignInDefinition(), form.New(wizards.SignInDefaults()))
		if err != nil {
			return nil, err
		}
		c.OnComplete(func(map[string]any) { rt.navigate(nav.RoleSelection) })
		c.OnCancel(rt.goBack)
		return rt.attach(c), nil

	case nav.SignUp:
		c, err := flow.New(wizards.SignUpDefinition(), form.New(wizards.SignUpDefaults()))
		if err != nil {
			return nil, err
		}
		c.OnComplete(func(map[string]any) { rt.navigate(nav.RoleSelection) })
		c.OnCancel(func() { rt.navigate(nav.SignIn) })
		return rt.attach(c), nil

	case nav.PatientOnboarding:
		c, err := flow.New(wizards.PatientDefinition(), form.New(wizards.PatientDefaults(year)))
		if err != nil {
			return nil, err
		}
		c.OnComplete(func(p map[string]any) {
			rt.completeOnboarding(nav.Profile{
				Role:     nav.RolePatient,
				UserName: stringField(p, wizards.FieldFullName),
			})
		})
		c.OnCancel(rt.goBack)
		return rt.attach(c), nil

	case nav.CaregiverOnboarding:
		c, err := flow.New(wizards.CaregiverDefinition(), form.New(wizards.CaregiverDefaults(year)))
		if err != nil {
			return nil, err
		}
		c.OnComplete(func(p map[string]any) {
			rt.completeOnboarding(nav.Profile{
				Role:        nav.RoleCaregiver,
				UserName:    stringField(p, wizards.FieldCaregiverName),
				PatientName: stringField(p, wizards.FieldPatientName),
			})
		})
		c.OnCancel(rt.goBack)
		return rt.attach(c), nil

	case nav.PrescriptionFlow:
		c, err := flow.New(wizards.PrescriptionDefinition(), nil)
		if err != nil {
			return nil, err
		}
		c.OnComplete(func(map[string]any) { rt.navigate(nav.Dashboard) })
		c.OnCancel(func() { rt.navigate(nav.Dashboard) })
		return rt.attach(c), nil
	}
	return nil, nil
}

func (rt *Runtime) attach(c interface {
	flow.Stepper
	SetLogger(*zap.Logger)
}) flow.Stepper {
	c.SetLogger(rt.logger)
	return c
}

func (rt *Runtime) completeOnboarding(p nav.Profile) {
	if err := rt.router.CompleteOnboarding(p); err != nil {
		rt.lastErr = err
		rt.logger.Error("completing onboarding", zap.Error(err))
	}
}

func stringField(p map[string]any, key string) string {
	s, _ := p[key].(string)
	return strings.TrimSpace(s)
}
