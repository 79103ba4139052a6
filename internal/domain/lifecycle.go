package domain

// Phase is the process-wide startup state.
type Phase int32

const (
	PhaseBootstrapping Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseBootstrapping:
		return "BOOTSTRAPPING"
	case PhaseReady:
		return "READY"
	default:
		return "UNKNOWN"
	}
}

// ScopeState tracks whether a scope's installed commands match the platform.
type ScopeState int

const (
	ScopeUnsynced ScopeState = iota
	ScopeSyncing
	ScopeSynced
)

func (s ScopeState) String() string {
	switch s {
	case ScopeUnsynced:
		return "UNSYNCED"
	case ScopeSyncing:
		return "SYNCING"
	case ScopeSynced:
		return "SYNCED"
	default:
		return "UNKNOWN"
	}
}
