package types

// RoundResult summarizes one completed allocation round.
//
// Everything in a RoundResult is round-scoped and detached from coordinator
// internals; callers may retain it freely.
type RoundResult struct {
	// Round is the 1-based round index within the run.
	Round int `json:"round"`

	// Demand is the demand table that was in force.
	Demand Demand `json:"demand"`

	// Raw holds the unrepaired proposals as parsed from each source reply
	// (absent entries mean the source produced no usable structure).
	Raw Proposal `json:"raw,omitempty"`

	// Validated holds each station's repaired candidate set, including the
	// fallback/degenerate observability flags.
	Validated map[string]ValidatedSet `json:"validated"`

	// Allocation is the final, pairwise-disjoint assignment.
	Allocation Allocation `json:"allocation"`

	// Shortfall maps stations to the number of slots they were denied due
	// to domain exhaustion. Stations with no shortfall are absent. A
	// shortfall is an observable outcome, not an error; it lowers the
	// round's utilization and disqualifies the round from success.
	Shortfall map[string]int `json:"shortfall,omitempty"`

	// Feedback is the round's derived conflict/utilization picture.
	Feedback Feedback `json:"feedback"`

	// Success is true when the round achieved full utilization with zero
	// raw conflicts.
	Success bool `json:"success"`
}
