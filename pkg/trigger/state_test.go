package trigger

import (
	"sync"
	"testing"
)

func TestMarkRunFirstCallerWins(t *testing.T) {
	// For every phase, the first query against fresh state must return
	// false (proceed) and calls 2..N must return true (skip)
	for _, phase := range AllPhases() {
		t.Run(string(phase), func(t *testing.T) {
			state := NewOperationState()

			if state.MarkRun(phase) {
				t.Errorf("First MarkRun(%q) = true, want false", phase)
			}
			for i := 2; i <= 5; i++ {
				if !state.MarkRun(phase) {
					t.Errorf("MarkRun(%q) call %d = false, want true", phase, i)
				}
			}
		})
	}
}

func TestMarkRunPhaseIndependence(t *testing.T) {
	// Querying one phase must never change the result for another,
	// regardless of call order
	state := NewOperationState()

	if state.MarkRun(PhaseBeforeInsert) {
		t.Error("First MarkRun(before_insert) = true, want false")
	}
	if state.MarkRun(PhaseAfterInsert) {
		t.Error("MarkRun(after_insert) affected by before_insert flag")
	}
	if state.MarkRun(PhaseBeforeUpdate) {
		t.Error("MarkRun(before_update) affected by other phase flags")
	}

	// Remaining phases are still untouched
	for _, phase := range []Phase{PhaseBeforeDelete, PhaseAfterUpdate, PhaseAfterDelete, PhaseAfterUndelete} {
		if state.HasRun(phase) {
			t.Errorf("Phase %q marked as run without being queried", phase)
		}
	}
}

func TestHasRunDoesNotMark(t *testing.T) {
	state := NewOperationState()

	if state.HasRun(PhaseAfterUpdate) {
		t.Error("HasRun on fresh state = true, want false")
	}
	// A pure read must not consume the first-caller slot
	if state.MarkRun(PhaseAfterUpdate) {
		t.Error("MarkRun after HasRun = true, want false (HasRun must not mark)")
	}
}

func TestSnapshotCoversAllPhases(t *testing.T) {
	state := NewOperationState()
	state.MarkRun(PhaseBeforeDelete)
	state.MarkRun(PhaseAfterUndelete)

	snapshot := state.Snapshot()
	if len(snapshot) != 7 {
		t.Fatalf("Snapshot has %d entries, want 7", len(snapshot))
	}
	for phase, ran := range snapshot {
		expected := phase == PhaseBeforeDelete || phase == PhaseAfterUndelete
		if ran != expected {
			t.Errorf("Snapshot[%q] = %v, want %v", phase, ran, expected)
		}
	}

	// Snapshot is a copy: mutating it must not touch the state
	snapshot[PhaseBeforeInsert] = true
	if state.HasRun(PhaseBeforeInsert) {
		t.Error("Mutating snapshot changed the operation state")
	}
}

func TestMarkRunConcurrentDispatch(t *testing.T) {
	// If a host dispatches sub-batches concurrently, exactly one caller
	// per phase may win the first slot
	state := NewOperationState()

	const callers = 32
	var wg sync.WaitGroup
	proceed := make(chan bool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			proceed <- !state.MarkRun(PhaseAfterInsert)
		}()
	}
	wg.Wait()
	close(proceed)

	winners := 0
	for won := range proceed {
		if won {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("Expected exactly 1 first caller, got %d", winners)
	}
}
