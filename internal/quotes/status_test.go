package quotes

import "testing"

func TestSyncStatusIsValid(t *testing.T) {
	valid := []SyncStatus{SyncStatusSynced, SyncStatusCalculating, SyncStatusCustom, SyncStatusOutOfSync, SyncStatusError}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if SyncStatus("pending").IsValid() {
		t.Error("unknown status should be invalid")
	}
}

func TestSyncStatusTransitions(t *testing.T) {
	tests := []struct {
		status        SyncStatus
		canRecalc     bool
		canReset      bool
		canRetry      bool
		isCalculating bool
	}{
		{SyncStatusSynced, true, false, false, false},
		{SyncStatusCalculating, false, false, false, true},
		{SyncStatusCustom, false, true, false, false},
		{SyncStatusOutOfSync, true, false, false, false},
		{SyncStatusError, true, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.CanRecalculate(); got != tt.canRecalc {
				t.Errorf("CanRecalculate() = %v, want %v", got, tt.canRecalc)
			}
			if got := tt.status.CanReset(); got != tt.canReset {
				t.Errorf("CanReset() = %v, want %v", got, tt.canReset)
			}
			if got := tt.status.CanRetry(); got != tt.canRetry {
				t.Errorf("CanRetry() = %v, want %v", got, tt.canRetry)
			}
			if got := tt.status.IsCalculating(); got != tt.isCalculating {
				t.Errorf("IsCalculating() = %v, want %v", got, tt.isCalculating)
			}
		})
	}
}
