package strand

// StrandState is one of the five states a Strand may occupy. See spec
// section 4.1 for the legal transition table; any transition not listed
// there is an implementation bug, not a runtime error.
type StrandState int

const (
	// StateReady means a send/throw is queued; start() will consume it.
	StateReady StrandState = iota

	// StateRunning means the interpreter is actively executing inside start().
	StateRunning

	// StateSuspendedActive means the strand is inside start(), has just
	// yielded, and dispatch of that yield is still in progress. A
	// synchronous resume observed in this state must not re-enter
	// start(); it loops back instead.
	StateSuspendedActive

	// StateSuspendedInactive means the strand is parked on an awaitable
	// that holds a reference to it; no callback is currently scheduled
	// to resume it from within this call stack.
	StateSuspendedInactive

	// StateExited means the strand has produced its final result and
	// notified every listener.
	StateExited
)

func (s StrandState) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateSuspendedActive:
		return "SUSPENDED_ACTIVE"
	case StateSuspendedInactive:
		return "SUSPENDED_INACTIVE"
	case StateExited:
		return "EXITED"
	default:
		return "UNKNOWN"
	}
}

// legalTransitions enumerates every edge spec section 4.1 allows, keyed
// by (from, to). "any(!EXITED) -> EXITED" is checked separately since it
// isn't keyed on a single `from`.
var legalTransitions = map[[2]StrandState]bool{
	{StateReady, StateRunning}:                 true,
	{StateSuspendedInactive, StateRunning}:     true,
	{StateSuspendedActive, StateReady}:         true,
	{StateRunning, StateSuspendedActive}:       true,
	{StateSuspendedActive, StateRunning}:       true,
	{StateRunning, StateSuspendedInactive}:     true,
	{StateSuspendedActive, StateSuspendedInactive}: true,
	{StateRunning, StateExited}:                true,
}

// checkTransition panics if from->to is not a legal edge from spec
// section 4.1. EXITED is reachable from any non-EXITED state via
// terminate(), which callers signal by passing viaTerminate=true.
func checkTransition(from, to StrandState, viaTerminate bool) {
	if to == StateExited {
		if from == StateExited {
			panic("strand: illegal transition EXITED -> EXITED")
		}
		if viaTerminate || legalTransitions[[2]StrandState{from, to}] {
			return
		}
		panic("strand: illegal transition " + from.String() + " -> " + to.String())
	}
	if !legalTransitions[[2]StrandState{from, to}] {
		panic("strand: illegal transition " + from.String() + " -> " + to.String())
	}
}
