package trigger

import (
	"testing"
)

func TestPhaseIsValid(t *testing.T) {
	tests := []struct {
		name     string
		phase    Phase
		expected bool
	}{
		{"before insert", PhaseBeforeInsert, true},
		{"before update", PhaseBeforeUpdate, true},
		{"before delete", PhaseBeforeDelete, true},
		{"after insert", PhaseAfterInsert, true},
		{"after update", PhaseAfterUpdate, true},
		{"after delete", PhaseAfterDelete, true},
		{"after undelete", PhaseAfterUndelete, true},
		{"empty string", Phase(""), false},
		{"unknown phase", Phase("before_undelete"), false},
		{"wrong case", Phase("Before_Insert"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phase.IsValid(); got != tt.expected {
				t.Errorf("IsValid(%q) = %v, want %v", tt.phase, got, tt.expected)
			}
		})
	}
}

func TestPhaseTiming(t *testing.T) {
	tests := []struct {
		name       string
		phase      Phase
		wantBefore bool
		wantAfter  bool
	}{
		{"before insert", PhaseBeforeInsert, true, false},
		{"before update", PhaseBeforeUpdate, true, false},
		{"before delete", PhaseBeforeDelete, true, false},
		{"after insert", PhaseAfterInsert, false, true},
		{"after update", PhaseAfterUpdate, false, true},
		{"after delete", PhaseAfterDelete, false, true},
		{"after undelete", PhaseAfterUndelete, false, true},
		{"invalid phase is neither", Phase("nope"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phase.IsBefore(); got != tt.wantBefore {
				t.Errorf("IsBefore(%q) = %v, want %v", tt.phase, got, tt.wantBefore)
			}
			if got := tt.phase.IsAfter(); got != tt.wantAfter {
				t.Errorf("IsAfter(%q) = %v, want %v", tt.phase, got, tt.wantAfter)
			}
		})
	}
}

func TestParsePhase(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Phase
		wantErr bool
	}{
		{"valid before insert", "before_insert", PhaseBeforeInsert, false},
		{"valid after undelete", "after_undelete", PhaseAfterUndelete, false},
		{"empty", "", "", true},
		{"unknown", "around_insert", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePhase(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePhase(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePhase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAllPhasesIsClosedSet(t *testing.T) {
	phases := AllPhases()
	if len(phases) != 7 {
		t.Fatalf("Expected 7 recognized phases, got %d", len(phases))
	}

	seen := make(map[Phase]bool)
	for _, p := range phases {
		if !p.IsValid() {
			t.Errorf("AllPhases returned invalid phase %q", p)
		}
		if seen[p] {
			t.Errorf("AllPhases returned duplicate phase %q", p)
		}
		seen[p] = true
	}

	// Mutating the returned slice must not affect the package's set
	phases[0] = Phase("mutated")
	if AllPhases()[0] != PhaseBeforeInsert {
		t.Error("AllPhases should return a copy, not the backing slice")
	}
}
