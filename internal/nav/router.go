package nav

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// BackTable maps every screen to the screen a back action leads to.
type BackTable map[Screen]Screen

// DefaultBackTable returns the predecessor of each screen. Welcome has no
// predecessor and maps to itself.
func DefaultBackTable() BackTable {
	return BackTable{
		Welcome:             Welcome,
		SignIn:              Welcome,
		SignUp:              SignIn,
		RoleSelection:       SignIn,
		PatientOnboarding:   RoleSelection,
		CaregiverOnboarding: RoleSelection,
		Dashboard:           RoleSelection,
		PrescriptionFlow:    Dashboard,
	}
}

// Check verifies the table covers every screen and only points at known screens.
func (t BackTable) Check() error {
	var missing []string
	for _, s := range AllScreens() {
		prev, ok := t[s]
		if !ok {
			missing = append(missing, s.String())
			continue
		}
		if !prev.Valid() {
			return fmt.Errorf("back target of %s: %w: %q", s, ErrUnknownScreen, prev)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("back table has no entry for: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Profile carries what an onboarding wizard learned about the user.
type Profile struct {
	Role        Role
	UserName    string
	PatientName string
}

// ChangeFunc observes a screen transition.
type ChangeFunc func(from, to Screen)

// Router holds the active screen and session identity.
type Router struct {
	current     Screen
	role        Role
	userName    string
	patientName string
	defaultName string
	back        BackTable
	observers   []ChangeFunc
	logger      *zap.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithBackTable replaces the default predecessor table.
func WithBackTable(t BackTable) Option {
	return func(r *Router) { r.back = t }
}

// WithDefaultUserName sets the name used when onboarding yields none.
func WithDefaultUserName(name string) Option {
	return func(r *Router) { r.defaultName = name }
}

// WithLogger attaches a logger that records every transition.
func WithLogger(l *zap.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// NewRouter creates a router on the welcome screen with the patient role.
// It fails when the back table does not cover every screen.
func NewRouter(opts ...Option) (*Router, error) {
	r := &Router{
		current:     Welcome,
		role:        RolePatient,
		defaultName: "Lan",
		back:        DefaultBackTable(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.back.Check(); err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}
	return r, nil
}

// MustNewRouter is like NewRouter but panics on a malformed back table.
func MustNewRouter(opts ...Option) *Router {
	r, err := NewRouter(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Current returns the active screen.
func (r *Router) Current() Screen { return r.current }

// Role returns the selected role.
func (r *Router) Role() Role { return r.role }

// UserName returns the name shown on the dashboard.
func (r *Router) UserName() string { return r.userName }

// PatientName returns the cared-for patient's name when the role is caregiver.
func (r *Router) PatientName() string { return r.patientName }

// OnChange registers an observer called after every transition, including
// navigation to the screen that is already active.
func (r *Router) OnChange(fn ChangeFunc) {
	r.observers = append(r.observers, fn)
}

// Navigate makes s the active screen.
func (r *Router) Navigate(s Screen) error {
	if !s.Valid() {
		return fmt.Errorf("navigate: %w: %q", ErrUnknownScreen, s)
	}
	from := r.current
	r.current = s
	r.logger.Debug("screen change", zap.Stringer("from", from), zap.Stringer("to", s))
	for _, fn := range r.observers {
		fn(from, s)
	}
	return nil
}

// NavigateTo navigates to the screen named by id.
func (r *Router) NavigateTo(id string) error {
	s, err := ParseScreen(id)
	if err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	return r.Navigate(s)
}

// BackTarget returns where GoBack would lead from the active screen.
func (r *Router) BackTarget() Screen {
	return r.back[r.current]
}

// GoBack navigates to the predecessor of the active screen.
func (r *Router) GoBack() error {
	return r.Navigate(r.BackTarget())
}

// SelectRole records the role and opens the matching onboarding wizard.
func (r *Router) SelectRole(role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return fmt.Errorf("select role: %w", err)
	}
	r.role = role
	r.logger.Info("role selected", zap.String("role", string(role)))
	return r.Navigate(role.OnboardingScreen())
}

// CompleteOnboarding stores the profile and opens the dashboard.
func (r *Router) CompleteOnboarding(p Profile) error {
	if p.Role != "" {
		r.role = p.Role
	}
	r.userName = strings.TrimSpace(p.UserName)
	if r.userName == "" {
		r.userName = r.defaultName
	}
	r.patientName = strings.TrimSpace(p.PatientName)
	return r.Navigate(Dashboard)
}

// Logout clears the session identity and returns to the welcome screen.
func (r *Router) Logout() error {
	r.role = RolePatient
	r.userName = ""
	r.patientName = ""
	return r.Navigate(Welcome)
}

// Table returns a copy of the back table for display.
func (r *Router) Table() BackTable {
	out := make(BackTable, len(r.back))
	for k, v := range r.back {
		out[k] = v
	}
	return out
}
