// Package task runs simulated remote calls whose results are tied to the
// lifetime of the screen that started them.
package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// ErrClosed is returned when work is started on, or finishes after, a closed scope.
var ErrClosed = errors.New("task scope closed")

// Func is a unit of cancellable work.
type Func func(ctx context.Context) error

// Scope owns the work started by one mounted screen. Closing it cancels every
// in-flight call and guarantees no result is delivered afterwards.
// Run may be called on any goroutine; Close waits for every Run that started
// before it.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed atomic.Bool
	wg     sync.WaitGroup
}

// NewScope creates a scope derived from parent.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// enter registers one run unless the scope is closed.
func (s *Scope) enter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return false
	}
	s.wg.Add(1)
	return true
}

// Run executes fn synchronously. If the scope is closed before or while fn
// runs, ErrClosed is returned in place of fn's own result.
func (s *Scope) Run(fn Func) error {
	if !s.enter() {
		return ErrClosed
	}
	defer s.wg.Done()

	err := fn(s.ctx)
	if s.closed.Load() {
		return ErrClosed
	}
	return err
}

// Close cancels in-flight work and waits for it to return. It is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return
	}
	s.closed.Store(true)
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// Delay returns work that succeeds after d, or fails early when its context ends.
func Delay(d time.Duration) Func {
	return func(ctx context.Context) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// FailFirst returns work that fails with err on its first n calls and
// succeeds after d from then on.
func FailFirst(n int, d time.Duration, err error) Func {
	var calls atomic.Int64
	return func(ctx context.Context) error {
		if werr := Delay(d)(ctx); werr != nil {
			return werr
		}
		if calls.Inc() <= int64(n) {
			return err
		}
		return nil
	}
}
