package types

import "errors"

// Sentinel errors for the tdma library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Coordinator errors - Public API errors returned by the Coordinator.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDecisionSourceRequired is returned when a station has no decision source.
	ErrDecisionSourceRequired = errors.New("decision source is required")

	// ErrTooManyStations is returned when the station count exceeds the
	// slot domain, making the per-station minimum demand unsatisfiable.
	// This is a configuration error and is rejected before any round runs.
	ErrTooManyStations = errors.New("station count exceeds slot count")

	// ErrAlreadyStarted is returned when Run is called on a coordinator
	// whose run loop is already active.
	ErrAlreadyStarted = errors.New("coordinator already started")

	// ErrTerminated is returned when operations are attempted after the
	// coordinator reached the terminated state.
	ErrTerminated = errors.New("coordinator terminated")
)

// Negotiation errors - produced while querying and parsing decision sources.
var (
	// ErrNoProposal indicates the source reply contained no usable slot
	// structure. Recovered locally via the validator fallback; never
	// surfaced as a run failure.
	ErrNoProposal = errors.New("no usable proposal in reply")

	// ErrDecisionTimeout indicates a decision source query exceeded the
	// configured deadline. Recovered locally via the validator fallback.
	ErrDecisionTimeout = errors.New("decision source timed out")
)

// Persistence errors - record store failures.
var (
	// ErrRecordStoreFailed wraps record store write failures. The allocation
	// loop continues; the error is surfaced through hooks and logs.
	ErrRecordStoreFailed = errors.New("failed to persist success record")
)
