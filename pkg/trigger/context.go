package trigger

// Context describes the construction environment the host supplies when it
// instantiates a handler. It replaces any ambient "is a trigger executing"
// probe: the precondition check in NewHandler is a pure function of these
// fields.
type Context struct {
	// OperationID identifies the logical operation this instance belongs to.
	OperationID string

	// BatchSize is the number of records in the sub-batch this instance is
	// constructed for. Must be >= 0.
	BatchSize int

	// Executing is set by the host while it is dispatching a record-change
	// event. Handlers may only be constructed while it is true.
	Executing bool

	// TestOverride allows construction outside a live dispatch so concrete
	// handlers can be unit tested without a host. It is an explicit,
	// caller-supplied flag; nothing in this package inspects the
	// environment to decide whether a test is running.
	TestOverride bool

	// State is the shared phase-flag state for the logical operation,
	// owned by the host's registry, not by any handler instance.
	State *OperationState
}
