package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods may be called from internal goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	CoordinatorMetrics
	NegotiationMetrics
	AllocationMetrics
}

// CoordinatorMetrics defines metrics for coordinator-level operations.
type CoordinatorMetrics interface {
	// RecordStateTransition records a coordinator state transition event.
	//
	// Parameters:
	//   - from: Previous state
	//   - to: New state
	//   - duration: Time spent in the previous state, in seconds
	RecordStateTransition(from, to State, duration float64)

	// RecordRoundDuration records the wall-clock time of one full round.
	//
	// Parameters:
	//   - duration: Time taken in seconds
	RecordRoundDuration(duration float64)

	// RecordSuccess records a perfect round and how many rounds it took.
	//
	// Parameters:
	//   - rounds: Rounds elapsed since the previous success
	RecordSuccess(rounds int)
}

// NegotiationMetrics defines metrics for per-station decision queries.
type NegotiationMetrics interface {
	// RecordDecisionLatency records the latency of one decision source query.
	//
	// Parameters:
	//   - station: Station that was queried
	//   - duration: Time taken in seconds
	//   - success: true if the source returned a reply, false on error/timeout
	RecordDecisionLatency(station string, duration float64, success bool)

	// RecordProposalOutcome records how a station's raw proposal was handled.
	//
	// Parameters:
	//   - station: Station the proposal belongs to
	//   - outcome: "parsed", "repaired", "fallback" or "degenerate"
	RecordProposalOutcome(station string, outcome string)
}

// AllocationMetrics defines metrics for conflict resolution results.
type AllocationMetrics interface {
	// RecordConflicts records the number of contested slots in a round's
	// raw proposals.
	RecordConflicts(count int)

	// RecordUtilization sets the utilization rate of the latest round
	// (gauge metric, 0.0-1.0).
	RecordUtilization(rate float64)

	// RecordShortfall records slots a station was denied due to domain
	// exhaustion.
	//
	// Parameters:
	//   - station: Station that came up short
	//   - missing: Number of slots short of its demand
	RecordShortfall(station string, missing int)
}
