// Package flow implements a generic multi-step wizard controller.
//
// A Definition declares the ordered steps of a wizard and the validator that
// gates leaving each of them. A Controller walks a Definition one step at a
// time over a form.Data, tracks the single in-flight submission a step may
// require, and reports completion or cancellation exactly once.
package flow

import (
	"errors"
	"fmt"

	"github.com/mrsinham/medintel/internal/form"
)

// Definition describes a wizard.
type Definition[S comparable] struct {
	// Name identifies the wizard in logs.
	Name string

	// Steps in display order. Must not be empty.
	Steps []S

	// Validators gate Next on a step. A step without an entry is always valid.
	Validators map[S]form.Validator

	// Submits lists steps whose advance goes through BeginSubmit/Resolve.
	Submits map[S]bool

	// AutoSubmit lists submission steps the host starts as soon as they are entered.
	AutoSubmit map[S]bool

	// Exits lists steps other than the first where Back cancels the wizard.
	Exits map[S]bool

	// Label renders a step for display. Defaults to fmt.Sprint.
	Label func(S) string
}

var (
	ErrNoSteps      = errors.New("wizard has no steps")
	ErrDuplicate    = errors.New("duplicate step")
	ErrUnknownStep  = errors.New("unknown step")
	ErrInFlight     = errors.New("a request is already in flight")
	ErrInvalidStep  = errors.New("current step is not valid")
	ErrNotSubmitted = errors.New("current step does not submit")
	ErrDisposed     = errors.New("wizard is disposed")
	ErrStaleTicket  = errors.New("stale request ticket")
)

// Check verifies the step list is non-empty, has no duplicates, and that every
// keyed map only refers to declared steps.
func (d Definition[S]) Check() error {
	if len(d.Steps) == 0 {
		return fmt.Errorf("%s: %w", d.Name, ErrNoSteps)
	}
	seen := make(map[S]bool, len(d.Steps))
	for _, s := range d.Steps {
		if seen[s] {
			return fmt.Errorf("%s: %w: %v", d.Name, ErrDuplicate, s)
		}
		seen[s] = true
	}
	for s := range d.Validators {
		if !seen[s] {
			return fmt.Errorf("%s: validator for %w: %v", d.Name, ErrUnknownStep, s)
		}
	}
	for _, set := range []map[S]bool{d.Submits, d.AutoSubmit, d.Exits} {
		for s := range set {
			if !seen[s] {
				return fmt.Errorf("%s: %w: %v", d.Name, ErrUnknownStep, s)
			}
		}
	}
	for s := range d.AutoSubmit {
		if !d.Submits[s] {
			return fmt.Errorf("%s: auto-submit step %v does not submit", d.Name, s)
		}
	}
	return nil
}

func (d Definition[S]) label(s S) string {
	if d.Label != nil {
		return d.Label(s)
	}
	return fmt.Sprint(s)
}

func (d Definition[S]) valid(s S, data *form.Data) bool {
	v, ok := d.Validators[s]
	if !ok || v == nil {
		return true
	}
	return v(data)
}
