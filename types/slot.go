package types

import (
	"slices"
	"sort"
)

// Slot identifies one discrete allocatable resource unit (a time slot or
// channel index) in the range [0, numSlots).
//
// Slot identity is immutable; the mutable counters associated with a slot
// (heat, conflict history) live in the resource pool.
type Slot int

// Demand maps each station to the number of slots it is entitled to request
// in the current round. All values are >= 1 and, when capacity allows, the
// values sum exactly to the domain size.
type Demand map[string]int

// Total returns the sum of all per-station demand values.
func (d Demand) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}

	return total
}

// Clone returns an independent copy of the demand table.
//
// Returns:
//   - Demand: Deep copy (nil input yields nil)
func (d Demand) Clone() Demand {
	if d == nil {
		return nil
	}

	out := make(Demand, len(d))
	for station, n := range d {
		out[station] = n
	}

	return out
}

// Proposal holds the raw, externally supplied candidate slot sets for a
// round, one entry per station. Raw proposals may violate range, uniqueness
// and size constraints; they are repaired by the proposal validator before
// conflict resolution.
type Proposal map[string][]Slot

// Allocation is the final, per-station slot assignment for one round.
//
// Invariant after conflict resolution: for any two stations a != b,
// Allocation[a] and Allocation[b] are disjoint.
type Allocation map[string][]Slot

// Clone returns an independent deep copy of the allocation.
func (a Allocation) Clone() Allocation {
	if a == nil {
		return nil
	}

	out := make(Allocation, len(a))
	for station, slots := range a {
		out[station] = slices.Clone(slots)
	}

	return out
}

// UsedSlots returns the deduplicated union of all stations' slots in
// ascending order.
//
// Returns:
//   - []Slot: Sorted union of assigned slots (empty slice for empty allocation)
func (a Allocation) UsedSlots() []Slot {
	seen := make(map[Slot]struct{})
	for _, slots := range a {
		for _, s := range slots {
			seen[s] = struct{}{}
		}
	}

	out := make([]Slot, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// ValidatedSet is a station's proposal after validation: exactly the entitled
// number of slots, all in range, deduplicated except in the degenerate
// with-replacement fallback.
type ValidatedSet struct {
	// Slots is the repaired candidate set, sorted ascending.
	Slots []Slot `json:"slots"`

	// Fallback is true when the raw proposal was unusable (absent, malformed
	// or empty after filtering) and the entire set was synthesized from the
	// heat-aware/random fallback path.
	Fallback bool `json:"fallback,omitempty"`

	// Degenerate is true when the set was completed by sampling with
	// replacement because the demand exceeds the slot domain. This only
	// happens under a misconfiguration the validator is required to survive.
	Degenerate bool `json:"degenerate,omitempty"`
}
