package types

// State represents the coordinator round lifecycle state.
//
// States follow a defined progression during normal operation:
//
//	StateIdle → StateDemandGenerated → StateNegotiating → StateResolved → StateRecorded
//
// After StateRecorded the coordinator loops back to StateDemandGenerated (on
// success or a demand refresh) or StateNegotiating (same demand, next round).
// Reaching the round limit or cancellation moves any state to
// StateTerminated, which is terminal.
type State int

const (
	// StateIdle is the initial state before any round has started.
	StateIdle State = iota

	// StateDemandGenerated indicates a fresh demand table has been produced.
	StateDemandGenerated

	// StateNegotiating indicates stations are being queried in order.
	StateNegotiating

	// StateResolved indicates conflict resolution produced the round's
	// final allocation and pool counters have been updated.
	StateResolved

	// StateRecorded indicates the round's feedback has been evaluated and
	// any success record persisted.
	StateRecorded

	// StateTerminated indicates the run has halted; no further external
	// calls are issued and accumulated state is left intact.
	StateTerminated
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDemandGenerated:
		return "DemandGenerated"
	case StateNegotiating:
		return "Negotiating"
	case StateResolved:
		return "Resolved"
	case StateRecorded:
		return "Recorded"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
