package aggregate

import "errors"

var (
	ErrDuplicateRoute     = errors.New("event is already routed to a handler")
	ErrInvalidRehydration = errors.New("invalid rehydration")
	ErrUnexpectedPayload  = errors.New("unexpected event payload")
)

// InvariantViolationError is returned by aggregate commands whose
// preconditions do not hold. The command is rejected and the aggregate
// is left untouched.
type InvariantViolationError struct {
	Err error
}

func (e *InvariantViolationError) Error() string {
	return e.Err.Error()
}

func (e *InvariantViolationError) Unwrap() error {
	return e.Err
}

// Reject wraps err into an InvariantViolationError.
func Reject(err error) error {
	return &InvariantViolationError{Err: err}
}
