package trigger

import (
	"errors"
	"fmt"
)

// ErrOutsideTriggerContext is the sentinel cause for handler construction
// attempted while no record-change event is being dispatched.
var ErrOutsideTriggerContext = errors.New("must only be instantiated within a triggering execution context")

// ContextError is the single error kind this package produces. It is raised
// only by handler construction and is fatal for the instance: it is not
// retried, and the host treats it as a failed invocation of the enclosing
// logical operation.
type ContextError struct {
	OperationID string
	Reason      string
	Err         error
}

// Error implements the error interface
func (e *ContextError) Error() string {
	if e.OperationID != "" {
		return fmt.Sprintf("handler construction failed for operation %s: %s", e.OperationID, e.Reason)
	}
	return fmt.Sprintf("handler construction failed: %s", e.Reason)
}

// Unwrap exposes the sentinel cause, when there is one
func (e *ContextError) Unwrap() error {
	return e.Err
}

// newContextError builds a ContextError carrying the sentinel cause
func newContextError(operationID, reason string, cause error) *ContextError {
	return &ContextError{
		OperationID: operationID,
		Reason:      reason,
		Err:         cause,
	}
}
