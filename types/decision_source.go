package types

import "context"

// DecisionRequest is the context payload handed to a station's external
// decision source before it proposes a slot set.
//
// Later stations in a round see the slots already provisionally claimed by
// earlier stations (intentional information asymmetry, not a race).
type DecisionRequest struct {
	// Station is the identifier of the station being queried.
	Station string `json:"station"`

	// Round is the 1-based round index within the run.
	Round int `json:"round"`

	// NumSlots is the size of the slot domain.
	NumSlots int `json:"numSlots"`

	// Expected is the number of slots this station is entitled to request.
	Expected int `json:"expected"`

	// Demand is the full demand table for the round.
	Demand Demand `json:"demand"`

	// ClaimedSlots lists slots already proposed by earlier stations in this
	// round, sorted ascending.
	ClaimedSlots []Slot `json:"claimedSlots"`

	// ConflictHistory maps slots to the number of rounds in which they were
	// contested, for slots that have ever been contested.
	ConflictHistory map[Slot]int `json:"conflictHistory"`

	// Feedback is the pool's snapshot built from the proposals gathered so
	// far in this round (nil for the first station of the first round).
	Feedback *Feedback `json:"feedback,omitempty"`
}

// DecisionSource is the external collaborator that proposes slot sets.
//
// The contract is deliberately narrow: the source returns a free-form text
// blob that is expected to contain, somewhere, a brace-delimited structure
// with at least one key whose value is a list of integer slot indices. The
// core parses tolerantly and treats anything unusable as "no proposal",
// falling back to heuristic selection. Sources are assumed unreliable; an
// error or timeout degrades the station's input, never the round.
//
// Implementations:
//   - source.Static: scripted replies for tests
//   - source.NATS: request-reply over a NATS subject per station
//   - source.OpenAI: chat-completions HTTP client
type DecisionSource interface {
	// Decide returns the source's raw textual reply for the given request.
	//
	// Implementations must honor ctx cancellation and deadline; the
	// coordinator bounds each call with the configured decision timeout.
	//
	// Parameters:
	//   - ctx: Context carrying the per-query deadline
	//   - req: Station context for this round
	//
	// Returns:
	//   - string: Raw reply text (parsed tolerantly by the core)
	//   - error: Transport or generation failure
	Decide(ctx context.Context, req DecisionRequest) (string, error)
}
