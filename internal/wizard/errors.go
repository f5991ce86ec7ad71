package wizard

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrWrongStep         = errors.New("operation not available on the current step")
	ErrReadOnly          = errors.New("existing registration fields are read-only")
	ErrSubmitPending     = errors.New("submission already in progress")
	ErrLookupPending     = errors.New("existing-user check still in progress")
	ErrSessionClosed     = errors.New("session closed")
	ErrSessionNotFound   = errors.New("session not found")
	ErrUnknownMarket     = errors.New("unknown market")
	ErrUnknownChannel    = errors.New("unknown channel")
)

// ValidationError is a local, synchronous rejection bound to one wizard step.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmitError is a submission the backend rejected (Status > 0) or that never
// reached it (Status == 0). Message is safe to show to the user.
type SubmitError struct {
	Message string
	Status  int
	Err     error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
