// Package nav owns the top-level screen state of the application.
package nav

import (
	"errors"
	"fmt"
)

// Screen identifies a top-level view. Exactly one is active at a time.
type Screen string

const (
	Welcome             Screen = "welcome"
	SignIn              Screen = "sign-in"
	SignUp              Screen = "sign-up"
	RoleSelection       Screen = "role-selection"
	PatientOnboarding   Screen = "patient-onboarding"
	CaregiverOnboarding Screen = "caregiver-onboarding"
	Dashboard           Screen = "dashboard"
	PrescriptionFlow    Screen = "prescription-flow"
)

// ErrUnknownScreen is returned when a navigation target is not a known screen.
var ErrUnknownScreen = errors.New("unknown screen")

// AllScreens lists every screen in declaration order.
func AllScreens() []Screen {
	return []Screen{
		Welcome,
		SignIn,
		SignUp,
		RoleSelection,
		PatientOnboarding,
		CaregiverOnboarding,
		Dashboard,
		PrescriptionFlow,
	}
}

// Valid reports whether s is one of the known screens.
func (s Screen) Valid() bool {
	for _, known := range AllScreens() {
		if s == known {
			return true
		}
	}
	return false
}

func (s Screen) String() string {
	return string(s)
}

// ParseScreen converts an identifier such as "sign-in" into a Screen.
func ParseScreen(id string) (Screen, error) {
	s := Screen(id)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScreen, id)
	}
	return s, nil
}

// Role is the kind of user chosen during role selection.
type Role string

const (
	RolePatient   Role = "patient"
	RoleCaregiver Role = "caregiver"
)

// ErrUnknownRole is returned by ParseRole for anything but patient or caregiver.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts "patient" or "caregiver" into a Role.
func ParseRole(id string) (Role, error) {
	switch r := Role(id); r {
	case RolePatient, RoleCaregiver:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, id)
}

// OnboardingScreen returns the onboarding wizard that follows selecting r.
func (r Role) OnboardingScreen() Screen {
	if r == RoleCaregiver {
		return CaregiverOnboarding
	}
	return PatientOnboarding
}
