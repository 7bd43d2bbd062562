package trigger

import (
	"sync"
)

// OperationState tracks, per lifecycle phase, whether that phase has already
// executed during one logical operation. It is created when the host begins
// the operation, shared by every handler instance constructed during it, and
// discarded when the operation ends. Nothing survives across operations.
//
// The host dispatches sub-batches sequentially, but MarkRun performs its
// check-and-set under a lock so the at-most-once guarantee also holds for
// hosts that dispatch sub-batches from multiple goroutines.
type OperationState struct {
	mu  sync.Mutex
	ran map[Phase]bool
}

// NewOperationState creates the phase-flag state for one logical operation.
// Every flag starts "not yet run".
func NewOperationState() *OperationState {
	return &OperationState{
		ran: make(map[Phase]bool, len(allPhases)),
	}
}

// MarkRun reports whether phase has already executed in this operation and,
// if it has not, marks it as executed. The first call for a phase returns
// false (proceed); every later call returns true (skip). Check and set are
// a single atomic step.
func (s *OperationState) MarkRun(phase Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ran[phase] {
		return true
	}
	s.ran[phase] = true
	return false
}

// HasRun reports whether phase has executed, without marking it.
// Intended for reporting; guard decisions must use MarkRun.
func (s *OperationState) HasRun(phase Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ran[phase]
}

// Snapshot returns a copy of the per-phase flags, keyed by every recognized
// phase, with false for phases that have not run.
func (s *OperationState) Snapshot() map[Phase]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[Phase]bool, len(allPhases))
	for _, p := range allPhases {
		snapshot[p] = s.ran[p]
	}
	return snapshot
}
