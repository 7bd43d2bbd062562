package platform

import (
	"fmt"

	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/trigger"
)

// OperationKind identifies the DML-style statement a logical operation
// performs. The kind determines which lifecycle phases the platform fires.
type OperationKind string

const (
	OperationInsert   OperationKind = "insert"
	OperationUpdate   OperationKind = "update"
	OperationDelete   OperationKind = "delete"
	OperationUndelete OperationKind = "undelete"
)

// kindPhases maps each operation kind to the phases fired for it, in
// platform order: before-phase work first, then after-phase work. Undelete
// has no before phase.
var kindPhases = map[OperationKind][]trigger.Phase{
	OperationInsert:   {trigger.PhaseBeforeInsert, trigger.PhaseAfterInsert},
	OperationUpdate:   {trigger.PhaseBeforeUpdate, trigger.PhaseAfterUpdate},
	OperationDelete:   {trigger.PhaseBeforeDelete, trigger.PhaseAfterDelete},
	OperationUndelete: {trigger.PhaseAfterUndelete},
}

// IsValid returns true if k is a recognized operation kind
func (k OperationKind) IsValid() bool {
	_, ok := kindPhases[k]
	return ok
}

// Phases returns the lifecycle phases fired for this kind, in firing order
func (k OperationKind) Phases() []trigger.Phase {
	phases := kindPhases[k]
	out := make([]trigger.Phase, len(phases))
	copy(out, phases)
	return out
}

// ParseOperationKind converts a string to an OperationKind
func ParseOperationKind(s string) (OperationKind, error) {
	k := OperationKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown operation kind: %s", s)
	}
	return k, nil
}
