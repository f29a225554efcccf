package domain

// SyncState tracks a collection's position between local optimistic state
// and server truth: Idle → Pending → {Synced, Reconciling}. Reconciling
// means a mutation failed and an authoritative re-fetch is underway.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncPending
	SyncSynced
	SyncReconciling
)

func (s SyncState) String() string {
	switch s {
	case SyncIdle:
		return "idle"
	case SyncPending:
		return "pending"
	case SyncSynced:
		return "synced"
	case SyncReconciling:
		return "reconciling"
	default:
		return "unknown"
	}
}
