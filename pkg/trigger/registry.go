package trigger

import (
	"errors"
	"sync"
)

var (
	ErrOperationNotFound = errors.New("operation not found")
)

// Registry scopes phase-flag state to logical operations. The host begins an
// entry when a record-change event starts, hands the state to every handler
// instance it constructs for that operation, and ends the entry when the
// event finishes so no state leaks into the next operation.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]*OperationState
}

// NewRegistry creates an empty operation registry
func NewRegistry() *Registry {
	return &Registry{
		ops: make(map[string]*OperationState),
	}
}

// Begin creates the phase-flag state for the given operation ID and returns
// it. If the operation is already active the existing state is returned, so
// every sub-batch of one operation shares the same flags.
func (r *Registry) Begin(operationID string) *OperationState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, ok := r.ops[operationID]; ok {
		return state
	}
	state := NewOperationState()
	r.ops[operationID] = state
	return state
}

// Lookup returns the state for an active operation
func (r *Registry) Lookup(operationID string) (*OperationState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.ops[operationID]
	if !ok {
		return nil, ErrOperationNotFound
	}
	return state, nil
}

// End discards the state for an operation. Ending an unknown operation is a
// no-op: the host may tear down an aborted operation more than once.
func (r *Registry) End(operationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.ops, operationID)
}

// Active returns the number of operations currently holding state
func (r *Registry) Active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.ops)
}
