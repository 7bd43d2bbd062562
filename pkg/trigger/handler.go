// Package trigger provides the run-once-per-phase guard for record-change
// handlers. The host platform may construct a handler instance per sub-batch
// of one logical operation; the guard ensures each lifecycle phase's body
// executes at most once across all of those instances.
package trigger

// Handler is the embeddable base for concrete record-change handlers. It
// captures the sub-batch size at construction and exposes one guard query
// per lifecycle phase. The phase-flag state it queries is shared by every
// instance constructed for the same logical operation; the instance itself
// owns nothing that outlives it.
type Handler struct {
	batchSize int
	state     *OperationState
}

// NewHandler validates the construction context and captures batch metadata.
// Construction succeeds only while the host is dispatching a record-change
// event (ctx.Executing) or when the caller explicitly opts out for testing
// (ctx.TestOverride). Any other construction fails with a *ContextError and
// leaves the shared phase state untouched.
func NewHandler(ctx *Context) (*Handler, error) {
	if ctx == nil {
		return nil, newContextError("", "nil trigger context", ErrOutsideTriggerContext)
	}
	if !ctx.Executing && !ctx.TestOverride {
		return nil, newContextError(ctx.OperationID, "no record-change event is being dispatched", ErrOutsideTriggerContext)
	}
	if ctx.State == nil {
		return nil, newContextError(ctx.OperationID, "no operation state attached to context", ErrOutsideTriggerContext)
	}
	if ctx.BatchSize < 0 {
		return nil, newContextError(ctx.OperationID, "negative batch size", nil)
	}

	return &Handler{
		batchSize: ctx.BatchSize,
		state:     ctx.State,
	}, nil
}

// BatchSize returns the number of records in the sub-batch this instance was
// constructed for. Immutable after construction.
func (h *Handler) BatchSize() int {
	return h.batchSize
}

// The seven guard queries below are check-and-set operations, not pure
// reads: the first call for a phase within a logical operation returns false
// (proceed) and marks the phase as run; every later call, from this instance
// or any other sharing the operation state, returns true (skip). Each phase
// flag is independent of the other six.

// BeforeInsertHasRun reports whether the before-insert phase already ran
func (h *Handler) BeforeInsertHasRun() bool {
	return h.state.MarkRun(PhaseBeforeInsert)
}

// BeforeUpdateHasRun reports whether the before-update phase already ran
func (h *Handler) BeforeUpdateHasRun() bool {
	return h.state.MarkRun(PhaseBeforeUpdate)
}

// BeforeDeleteHasRun reports whether the before-delete phase already ran
func (h *Handler) BeforeDeleteHasRun() bool {
	return h.state.MarkRun(PhaseBeforeDelete)
}

// AfterInsertHasRun reports whether the after-insert phase already ran
func (h *Handler) AfterInsertHasRun() bool {
	return h.state.MarkRun(PhaseAfterInsert)
}

// AfterUpdateHasRun reports whether the after-update phase already ran
func (h *Handler) AfterUpdateHasRun() bool {
	return h.state.MarkRun(PhaseAfterUpdate)
}

// AfterDeleteHasRun reports whether the after-delete phase already ran
func (h *Handler) AfterDeleteHasRun() bool {
	return h.state.MarkRun(PhaseAfterDelete)
}

// AfterUndeleteHasRun reports whether the after-undelete phase already ran
func (h *Handler) AfterUndeleteHasRun() bool {
	return h.state.MarkRun(PhaseAfterUndelete)
}

// PhaseHasRun is the generic form of the seven queries above for callers
// that hold a Phase value
func (h *Handler) PhaseHasRun(phase Phase) bool {
	return h.state.MarkRun(phase)
}
