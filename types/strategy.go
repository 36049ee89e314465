package types

// HeatReader provides read access to the pool's cumulative slot usage.
//
// Implemented by pool.Pool; used by replacement pickers to prefer cool
// slots without taking a dependency on the pool package.
type HeatReader interface {
	// Heat returns the cumulative usage count for the slot (0 if never used).
	Heat(slot Slot) int
}

// ReplacementPicker chooses a substitute slot during conflict resolution.
//
// When a station's candidate slot is already reserved by an earlier station,
// the resolver collects the remaining free slots and asks the picker to
// choose one. Pickers must not mutate the candidate slice.
//
// Implementations:
//   - strategy.Coolest: deterministic lowest-heat, lowest-index (default)
//   - strategy.Random: uniform random, for simulation fidelity
type ReplacementPicker interface {
	// Pick selects one slot from candidates.
	//
	// Parameters:
	//   - candidates: Non-empty set of free slots, sorted ascending
	//   - heat: Read access to cumulative slot usage
	//
	// Returns:
	//   - Slot: The chosen replacement
	Pick(candidates []Slot, heat HeatReader) Slot
}

// OrderPolicy decides the station negotiation order for a round.
//
// The greedy resolver favors earlier stations under scarcity, so the order
// is a policy choice: a fixed order keeps the bias stable, a rotating order
// spreads first-mover advantage across rounds.
type OrderPolicy interface {
	// Order returns the station order for the given round.
	//
	// The returned slice must be a permutation of stations; implementations
	// must not mutate the input.
	//
	// Parameters:
	//   - round: 1-based round index
	//   - stations: Canonical station list
	//
	// Returns:
	//   - []string: Station order for this round
	Order(round int, stations []string) []string
}
