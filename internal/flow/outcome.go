package flow

// Outcome reports what a controller operation did.
type Outcome int

const (
	// OutcomeAdvanced moved one step forward.
	OutcomeAdvanced Outcome = iota
	// OutcomeRetreated moved one step back.
	OutcomeRetreated
	// OutcomeCompleted fired the completion callback.
	OutcomeCompleted
	// OutcomeCancelled fired the cancel callback.
	OutcomeCancelled
	// OutcomeRefused left the state unchanged because the step is invalid.
	OutcomeRefused
	// OutcomeSubmitRequired left the state unchanged because the step must be submitted.
	OutcomeSubmitRequired
	// OutcomeBusy left the state unchanged because a request is pending.
	OutcomeBusy
	// OutcomeFailed recorded a failed request; the step is unchanged.
	OutcomeFailed
	// OutcomeInert did nothing, e.g. Back on the first step with no cancel handler.
	OutcomeInert
	// OutcomeDisposed did nothing because the wizard is gone.
	OutcomeDisposed
)

var outcomeNames = map[Outcome]string{
	OutcomeAdvanced:       "advanced",
	OutcomeRetreated:      "retreated",
	OutcomeCompleted:      "completed",
	OutcomeCancelled:      "cancelled",
	OutcomeRefused:        "refused",
	OutcomeSubmitRequired: "submit-required",
	OutcomeBusy:           "busy",
	OutcomeFailed:         "failed",
	OutcomeInert:          "inert",
	OutcomeDisposed:       "disposed",
}

func (o Outcome) String() string {
	if n, ok := outcomeNames[o]; ok {
		return n
	}
	return "unknown"
}

// Moved reports whether the operation changed the current step or ended the wizard.
func (o Outcome) Moved() bool {
	switch o {
	case OutcomeAdvanced, OutcomeRetreated, OutcomeCompleted, OutcomeCancelled:
		return true
	}
	return false
}

// RequestState tracks the submission of the current step.
type RequestState int

const (
	RequestIdle RequestState = iota
	RequestPending
	RequestSucceeded
	RequestFailed
)

func (s RequestState) String() string {
	switch s {
	case RequestIdle:
		return "idle"
	case RequestPending:
		return "pending"
	case RequestSucceeded:
		return "succeeded"
	case RequestFailed:
		return "failed"
	}
	return "unknown"
}
