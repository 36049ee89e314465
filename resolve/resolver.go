package resolve

import (
	"sort"

	"github.com/Moaila/tdma/strategy"
	"github.com/Moaila/tdma/types"
)

// Candidate pairs a station with its validated candidate set, in the order
// the round negotiated them.
type Candidate struct {
	Station string
	Set     types.ValidatedSet
}

// Result is the outcome of one resolution pass.
type Result struct {
	// Allocation is the final, pairwise-disjoint assignment.
	Allocation types.Allocation

	// Shortfall maps stations to the number of slots they were denied
	// because the domain was exhausted. Stations with no shortfall are
	// absent. A shortfall is an observable outcome, not an error.
	Shortfall map[string]int
}

// Resolver turns an ordered sequence of per-station candidate sets into a
// final, pairwise-disjoint allocation by greedy sequential reservation.
//
// The design deliberately favors earlier stations: later stations are more
// likely to suffer shortfalls under scarcity. The ordering is a policy
// choice made by the caller (see types.OrderPolicy).
type Resolver struct {
	numSlots int
	picker   types.ReplacementPicker
}

// New creates a conflict resolver over the slot domain [0, numSlots).
//
// Parameters:
//   - numSlots: Size of the slot domain
//   - picker: Replacement selection policy (nil defaults to the
//     deterministic coolest picker)
//
// Returns:
//   - *Resolver: Initialized resolver
func New(numSlots int, picker types.ReplacementPicker) *Resolver {
	if picker == nil {
		picker = strategy.NewCoolest()
	}

	return &Resolver{
		numSlots: numSlots,
		picker:   picker,
	}
}

// Resolve reserves slots greedily per station in the given order.
//
// For each station, candidate slots already reserved by earlier stations are
// collisions: each is replaced by one slot chosen by the picker from the
// still-free domain. If no free slot remains, the station receives fewer
// slots than requested and the shortfall is recorded.
//
// Post-condition: the returned allocation is pairwise-disjoint by
// construction. Input candidate sets are never mutated.
//
// Parameters:
//   - ordered: Per-station candidate sets in negotiation order
//   - heat: Read access to slot heat for replacement picking
//
// Returns:
//   - Result: Final allocation plus per-station shortfalls
func (r *Resolver) Resolve(ordered []Candidate, heat types.HeatReader) Result {
	reserved := make(map[types.Slot]struct{}, r.numSlots)
	allocation := make(types.Allocation, len(ordered))
	shortfall := make(map[string]int)

	for _, cand := range ordered {
		kept := make([]types.Slot, 0, len(cand.Set.Slots))
		taken := make(map[types.Slot]struct{}, len(cand.Set.Slots))

		for _, s := range cand.Set.Slots {
			_, collides := reserved[s]
			_, own := taken[s]
			if !collides && !own {
				kept = append(kept, s)
				taken[s] = struct{}{}

				continue
			}

			free := r.freeSlots(reserved, taken)
			if len(free) == 0 {
				shortfall[cand.Station]++
				continue
			}

			pick := r.picker.Pick(free, heat)
			kept = append(kept, pick)
			taken[pick] = struct{}{}
		}

		sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })
		for _, s := range kept {
			reserved[s] = struct{}{}
		}
		allocation[cand.Station] = kept
	}

	return Result{Allocation: allocation, Shortfall: shortfall}
}

// freeSlots returns the domain minus reserved and per-station taken slots,
// ascending so picker determinism carries through.
func (r *Resolver) freeSlots(reserved, taken map[types.Slot]struct{}) []types.Slot {
	free := make([]types.Slot, 0, r.numSlots)
	for i := range r.numSlots {
		s := types.Slot(i)
		if _, ok := reserved[s]; ok {
			continue
		}
		if _, ok := taken[s]; ok {
			continue
		}
		free = append(free, s)
	}

	return free
}
