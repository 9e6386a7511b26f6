package quotes

// SyncStatus tracks how a quote's displayed price relates to its linked package.
type SyncStatus string

const (
	SyncStatusSynced      SyncStatus = "synced"      // price matches the linked package matrix
	SyncStatusCalculating SyncStatus = "calculating" // a recalculation is in flight
	SyncStatusCustom      SyncStatus = "custom"      // agent overrode the price by hand
	SyncStatusOutOfSync   SyncStatus = "out-of-sync" // parameters or package changed since last calculation
	SyncStatusError       SyncStatus = "error"       // last recalculation failed, previous price retained
)

func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusSynced, SyncStatusCalculating, SyncStatusCustom, SyncStatusOutOfSync, SyncStatusError:
		return true
	}
	return false
}

func (s SyncStatus) String() string {
	return string(s)
}

// IsCalculating reports whether a recalculation is already in flight.
func (s SyncStatus) IsCalculating() bool {
	return s == SyncStatusCalculating
}

// CanRecalculate reports whether a fresh recalculation may start. A custom
// price is never recalculated implicitly; it must be reset first.
func (s SyncStatus) CanRecalculate() bool {
	switch s {
	case SyncStatusSynced, SyncStatusOutOfSync, SyncStatusError:
		return true
	}
	return false
}

// CanReset reports whether ResetToCalculated applies.
func (s SyncStatus) CanReset() bool {
	return s == SyncStatusCustom
}

// CanRetry reports whether Retry applies.
func (s SyncStatus) CanRetry() bool {
	return s == SyncStatusError
}
