package trigger

import (
	"fmt"
)

// Phase identifies one of the seven points in the lifecycle of a logical
// operation at which handler logic may run.
type Phase string

const (
	PhaseBeforeInsert  Phase = "before_insert"
	PhaseBeforeUpdate  Phase = "before_update"
	PhaseBeforeDelete  Phase = "before_delete"
	PhaseAfterInsert   Phase = "after_insert"
	PhaseAfterUpdate   Phase = "after_update"
	PhaseAfterDelete   Phase = "after_delete"
	PhaseAfterUndelete Phase = "after_undelete"
)

// allPhases lists the recognized phases in platform firing order.
// The set is closed: the platform defines no other phases.
var allPhases = []Phase{
	PhaseBeforeInsert,
	PhaseBeforeUpdate,
	PhaseBeforeDelete,
	PhaseAfterInsert,
	PhaseAfterUpdate,
	PhaseAfterDelete,
	PhaseAfterUndelete,
}

// AllPhases returns the recognized phases in platform firing order.
// The returned slice is a copy and may be modified by the caller.
func AllPhases() []Phase {
	phases := make([]Phase, len(allPhases))
	copy(phases, allPhases)
	return phases
}

// IsValid returns true if p is one of the seven recognized phases
func (p Phase) IsValid() bool {
	switch p {
	case PhaseBeforeInsert, PhaseBeforeUpdate, PhaseBeforeDelete,
		PhaseAfterInsert, PhaseAfterUpdate, PhaseAfterDelete,
		PhaseAfterUndelete:
		return true
	default:
		return false
	}
}

// IsBefore returns true if p fires before the record change is applied
func (p Phase) IsBefore() bool {
	switch p {
	case PhaseBeforeInsert, PhaseBeforeUpdate, PhaseBeforeDelete:
		return true
	default:
		return false
	}
}

// IsAfter returns true if p fires after the record change is applied
func (p Phase) IsAfter() bool {
	return p.IsValid() && !p.IsBefore()
}

// ParsePhase converts a string to a Phase, validating it against the
// recognized set
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown phase: %s", s)
	}
	return p, nil
}
