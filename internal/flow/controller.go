package flow

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrsinham/medintel/internal/form"
)

// Stepper is the step-type-agnostic view of a Controller used by hosts that
// drive several kinds of wizard.
type Stepper interface {
	Name() string
	StepName() string
	Index() int
	Len() int
	Data() *form.Data
	Valid() bool
	NeedsSubmit() bool
	AutoSubmit() bool
	Request() RequestState
	Err() error
	Disposed() bool

	Next() Outcome
	Back() Outcome
	Cancel() Outcome
	BeginSubmit() (string, error)
	Resolve(ticket string, err error) Outcome
	Dispose()
}

// Controller drives one wizard instance. It is not safe for concurrent use;
// asynchronous results must be delivered back on the owning goroutine.
type Controller[S comparable] struct {
	def   Definition[S]
	data  *form.Data
	index int

	request RequestState
	ticket  string
	err     error

	disposed   bool
	onComplete func(map[string]any)
	onCancel   func()
	logger     *zap.Logger
}

var _ Stepper = (*Controller[int])(nil)

// New creates a controller positioned on the first step of def.
func New[S comparable](def Definition[S], data *form.Data) (*Controller[S], error) {
	if err := def.Check(); err != nil {
		return nil, err
	}
	if data == nil {
		data = form.New(nil)
	}
	return &Controller[S]{
		def:    def,
		data:   data,
		logger: zap.NewNop(),
	}, nil
}

// OnComplete sets the callback receiving the final form snapshot.
func (c *Controller[S]) OnComplete(fn func(payload map[string]any)) { c.onComplete = fn }

// OnCancel sets the callback fired when the user backs out of the wizard.
// Without one, Back on the first step is inert.
func (c *Controller[S]) OnCancel(fn func()) { c.onCancel = fn }

// SetLogger attaches a logger for step transitions.
func (c *Controller[S]) SetLogger(l *zap.Logger) {
	if l != nil {
		c.logger = l.With(zap.String("wizard", c.def.Name))
	}
}

func (c *Controller[S]) Name() string { return c.def.Name }
func (c *Controller[S]) Current() S { return c.def.Steps[c.index] }
func (c *Controller[S]) StepName() string { return c.def.label(c.Current()) }
func (c *Controller[S]) Index() int { return c.index }
func (c *Controller[S]) Len() int { return len(c.def.Steps) }
func (c *Controller[S]) Data() *form.Data { return c.data }
func (c *Controller[S]) Request() RequestState { return c.request }
func (c *Controller[S]) Disposed() bool { return c.disposed }

// Err returns the error of the last failed request on this step.
func (c *Controller[S]) Err() error { return c.err }

// IsFirst reports whether the current step is the first one.
func (c *Controller[S]) IsFirst() bool { return c.index == 0 }

// IsLast reports whether the current step is the terminal one.
func (c *Controller[S]) IsLast() bool { return c.index == len(c.def.Steps)-1 }

// Valid evaluates the current step's validator.
func (c *Controller[S]) Valid() bool { return c.def.valid(c.Current(), c.data) }

// NeedsSubmit reports whether leaving the current step requires a request.
func (c *Controller[S]) NeedsSubmit() bool { return c.def.Submits[c.Current()] }

// AutoSubmit reports whether the host should submit the current step on entry.
func (c *Controller[S]) AutoSubmit() bool { return c.def.AutoSubmit[c.Current()] }

// Next advances one step when the current step is valid. On the terminal step
// it completes the wizard instead.
func (c *Controller[S]) Next() Outcome {
	switch {
	case c.disposed:
		return OutcomeDisposed
	case c.request == RequestPending:
		return OutcomeBusy
	case !c.Valid():
		return OutcomeRefused
	case c.NeedsSubmit():
		return OutcomeSubmitRequired
	}
	return c.advance()
}

// Back retreats one step. On the first step, or on an exit step, it cancels
// the wizard when a cancel handler is set and is inert otherwise.
func (c *Controller[S]) Back() Outcome {
	switch {
	case c.disposed:
		return OutcomeDisposed
	case c.request == RequestPending:
		return OutcomeBusy
	case c.index == 0 || c.def.Exits[c.Current()]:
		if c.onCancel == nil {
			return OutcomeInert
		}
		return c.Cancel()
	}
	c.moveTo(c.index - 1)
	return OutcomeRetreated
}

// Cancel fires the cancel handler from any step and disposes the wizard.
func (c *Controller[S]) Cancel() Outcome {
	if c.disposed {
		return OutcomeDisposed
	}
	if c.onCancel == nil {
		return OutcomeInert
	}
	c.logger.Debug("wizard cancelled", zap.String("step", c.StepName()))
	fn := c.onCancel
	c.Dispose()
	fn()
	return OutcomeCancelled
}

// Complete fires the completion handler. Only the terminal step may complete,
// and only when valid.
func (c *Controller[S]) Complete() Outcome {
	switch {
	case c.disposed:
		return OutcomeDisposed
	case c.request == RequestPending:
		return OutcomeBusy
	case !c.IsLast(), !c.Valid():
		return OutcomeRefused
	}
	return c.complete()
}

// BeginSubmit marks the current step's request as pending and returns the
// ticket its result must be resolved with.
func (c *Controller[S]) BeginSubmit() (string, error) {
	switch {
	case c.disposed:
		return "", ErrDisposed
	case !c.NeedsSubmit():
		return "", fmt.Errorf("%s/%s: %w", c.def.Name, c.StepName(), ErrNotSubmitted)
	case c.request == RequestPending:
		return "", ErrInFlight
	case !c.Valid():
		return "", fmt.Errorf("%s/%s: %w", c.def.Name, c.StepName(), ErrInvalidStep)
	}
	c.request = RequestPending
	c.err = nil
	c.ticket = uuid.NewString()
	c.logger.Debug("request started", zap.String("step", c.StepName()), zap.String("request_id", c.ticket))
	return c.ticket, nil
}

// Resolve delivers the result of the request identified by ticket. A nil error
// advances (or completes on the terminal step); a failure keeps the user on
// the step with the error retained for display. Results for other tickets,
// or arriving after disposal, are ignored.
func (c *Controller[S]) Resolve(ticket string, err error) Outcome {
	if c.disposed {
		return OutcomeDisposed
	}
	if c.request != RequestPending || ticket != c.ticket {
		c.logger.Debug("stale request result ignored", zap.String("request_id", ticket))
		return OutcomeInert
	}
	if err != nil {
		c.request = RequestFailed
		c.err = err
		c.logger.Warn("request failed",
			zap.String("step", c.StepName()),
			zap.String("request_id", ticket),
			zap.Error(err))
		return OutcomeFailed
	}
	c.request = RequestSucceeded
	c.logger.Debug("request succeeded", zap.String("step", c.StepName()), zap.String("request_id", ticket))
	return c.advance()
}

// Dispose ends the wizard without firing any callback. Every later operation
// is inert.
func (c *Controller[S]) Dispose() {
	c.disposed = true
	c.ticket = ""
}

func (c *Controller[S]) advance() Outcome {
	if c.IsLast() {
		return c.complete()
	}
	c.moveTo(c.index + 1)
	return OutcomeAdvanced
}

func (c *Controller[S]) complete() Outcome {
	c.logger.Debug("wizard completed")
	payload := c.data.Snapshot()
	fn := c.onComplete
	c.Dispose()
	if fn != nil {
		fn(payload)
	}
	return OutcomeCompleted
}

func (c *Controller[S]) moveTo(i int) {
	from := c.StepName()
	c.index = i
	c.request = RequestIdle
	c.err = nil
	c.ticket = ""
	c.logger.Debug("step change", zap.String("from", from), zap.String("to", c.StepName()))
}
