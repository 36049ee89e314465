package tdma

import "github.com/Moaila/tdma/types"

// Sentinel errors returned by the Coordinator, re-exported from the types
// subpackage so callers can match with errors.Is without importing it.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrDecisionSourceRequired is returned when the decision source is nil.
	ErrDecisionSourceRequired = types.ErrDecisionSourceRequired

	// ErrTooManyStations is returned when the station count exceeds the
	// slot domain, making the per-station minimum demand unsatisfiable.
	ErrTooManyStations = types.ErrTooManyStations

	// ErrAlreadyStarted is returned when Run is called on a coordinator
	// whose run loop is already active.
	ErrAlreadyStarted = types.ErrAlreadyStarted

	// ErrTerminated is returned when operations are attempted after the
	// coordinator reached the terminated state.
	ErrTerminated = types.ErrTerminated

	// ErrNoProposal indicates a source reply contained no usable slot
	// structure. Recovered internally via the validator fallback.
	ErrNoProposal = types.ErrNoProposal

	// ErrDecisionTimeout indicates a decision source query exceeded the
	// configured deadline. Recovered internally via the validator fallback.
	ErrDecisionTimeout = types.ErrDecisionTimeout

	// ErrRecordStoreFailed wraps record store write failures. The round
	// loop continues; the error surfaces through hooks and logs.
	ErrRecordStoreFailed = types.ErrRecordStoreFailed
)
