package trigger

import (
	"errors"
	"testing"
)

func TestRegistryBeginSharesStatePerOperation(t *testing.T) {
	r := NewRegistry()

	first := r.Begin("op-1")
	second := r.Begin("op-1")
	if first != second {
		t.Error("Begin for the same operation ID returned distinct state")
	}

	other := r.Begin("op-2")
	if other == first {
		t.Error("Begin for a different operation ID returned shared state")
	}
	if r.Active() != 2 {
		t.Errorf("Active() = %d, want 2", r.Active())
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	state := r.Begin("op-1")

	got, err := r.Lookup("op-1")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != state {
		t.Error("Lookup returned state other than the one Begin created")
	}

	if _, err := r.Lookup("missing"); !errors.Is(err, ErrOperationNotFound) {
		t.Errorf("Lookup(missing) error = %v, want ErrOperationNotFound", err)
	}
}

func TestRegistryEndDiscardsState(t *testing.T) {
	r := NewRegistry()

	state := r.Begin("op-1")
	state.MarkRun(PhaseBeforeInsert)
	r.End("op-1")

	if _, err := r.Lookup("op-1"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("Lookup after End error = %v, want ErrOperationNotFound", err)
	}

	// A new operation under the same ID starts with fresh flags: nothing
	// survives from one logical operation to the next
	fresh := r.Begin("op-1")
	if fresh.HasRun(PhaseBeforeInsert) {
		t.Error("State leaked across logical operations with the same ID")
	}

	// Double teardown is harmless
	r.End("op-1")
	r.End("op-1")
	if r.Active() != 0 {
		t.Errorf("Active() = %d after teardown, want 0", r.Active())
	}
}
