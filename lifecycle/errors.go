package lifecycle

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIntent       = errors.New("invalid intent")
	ErrQuoteUnavailable    = errors.New("quote unavailable")
	ErrApprovalFailed      = errors.New("approval failed")
	ErrSigningFailed       = errors.New("signing failed")
	ErrSigningTimedOut     = errors.New("signing timed out")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrOrderExpired        = errors.New("order expired")
	ErrSubmissionRejected  = errors.New("submission rejected")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// Error is the failure of a lifecycle. It matches both its Kind and the
// underlying cause with errors.Is.
type Error struct {
	// State is the last state the lifecycle reached before failing.
	State  State
	Kind   error
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s in state %s: %s", e.Kind, e.State, e.Reason)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
