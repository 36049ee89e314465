package validate

import (
	"math/rand/v2"
	"sort"

	"github.com/Moaila/tdma/types"
)

// Pool is the heat-aware slot supplier used for backfilling short proposals.
//
// Satisfied by pool.Pool.
type Pool interface {
	// CoolestSlots returns up to n slots not in excluding, coolest first.
	CoolestSlots(n int, excluding []types.Slot) []types.Slot
}

// Validator repairs raw, externally supplied proposals into well-formed
// candidate sets: exactly the entitled size, all indices in range, no
// duplicates except in the degenerate with-replacement fallback.
//
// Validate never fails; it is the station's designated fallback strategy and
// always returns a usable set.
type Validator struct {
	numSlots int
	pool     Pool
	rng      *rand.Rand
}

// Option configures a Validator.
type Option func(*Validator)

// WithRand sets the random source used for the non-heat-aware fill paths.
//
// Parameters:
//   - rng: Random source
//
// Returns:
//   - Option: Functional option for New
func WithRand(rng *rand.Rand) Option {
	return func(v *Validator) {
		v.rng = rng
	}
}

// New creates a proposal validator over the slot domain [0, numSlots).
//
// Parameters:
//   - numSlots: Size of the slot domain; with an empty domain (numSlots <= 0)
//     every input is unsatisfiable and Validate returns an empty fallback set
//   - pool: Heat-aware slot supplier for backfills (may be nil; backfills
//     then use uniform random selection only)
//   - opts: Optional configuration (WithRand)
//
// Returns:
//   - *Validator: Initialized validator
func New(numSlots int, pool Pool, opts ...Option) *Validator {
	v := &Validator{
		numSlots: numSlots,
		pool:     pool,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.rng == nil {
		v.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return v
}

// Validate repairs one station's raw proposal into a set of exactly
// expected valid slots.
//
// Repair steps, in order: discard out-of-range entries, deduplicate
// preserving first occurrence, backfill shortfalls from the coolest unused
// slots and then from the remaining domain without replacement, truncate
// oversized sets deterministically (sort ascending, keep the first expected
// entries). An entirely unusable proposal degrades to a full heat-aware or
// random fallback rather than an error.
//
// Parameters:
//   - raw: Raw slot candidates (nil means the source produced nothing usable)
//   - expected: The station's entitled demand for this round
//
// Returns:
//   - types.ValidatedSet: Sorted set of exactly expected slots. Fallback is
//     set when nothing from the raw input survived; Degenerate is set when
//     the set had to be completed by sampling with replacement because
//     expected exceeds the domain size (a configuration error the validator
//     survives by contract).
func (v *Validator) Validate(raw []types.Slot, expected int) types.ValidatedSet {
	if expected <= 0 {
		return types.ValidatedSet{Slots: []types.Slot{}}
	}

	surviving := v.filter(raw)
	out := types.ValidatedSet{Fallback: len(surviving) == 0}

	switch {
	case len(surviving) < expected:
		surviving = v.backfill(surviving, expected, &out)
	case len(surviving) > expected:
		sort.Slice(surviving, func(i, j int) bool { return surviving[i] < surviving[j] })
		surviving = surviving[:expected]
	}

	sort.Slice(surviving, func(i, j int) bool { return surviving[i] < surviving[j] })
	out.Slots = surviving

	return out
}

// filter drops out-of-range entries and duplicates, preserving first occurrence.
func (v *Validator) filter(raw []types.Slot) []types.Slot {
	seen := make(map[types.Slot]struct{}, len(raw))
	out := make([]types.Slot, 0, len(raw))
	for _, s := range raw {
		if s < 0 || int(s) >= v.numSlots {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

// backfill completes a short set: coolest unused slots first, then uniform
// random draws from the remaining domain without replacement, then (domain
// exhausted, expected > numSlots) sampling with replacement.
func (v *Validator) backfill(surviving []types.Slot, expected int, out *types.ValidatedSet) []types.Slot {
	need := expected - len(surviving)

	if v.pool != nil {
		for _, s := range v.pool.CoolestSlots(need, surviving) {
			surviving = append(surviving, s)
		}
		need = expected - len(surviving)
	}

	if need > 0 {
		unused := v.unusedSlots(surviving)
		v.rng.Shuffle(len(unused), func(i, j int) {
			unused[i], unused[j] = unused[j], unused[i]
		})
		take := min(need, len(unused))
		surviving = append(surviving, unused[:take]...)
		need -= take
	}

	// Domain exhausted: only reachable when expected > numSlots. An empty
	// domain has nothing to sample from, so the set stays short.
	if v.numSlots > 0 {
		for range need {
			surviving = append(surviving, types.Slot(v.rng.IntN(v.numSlots)))
			out.Degenerate = true
		}
	}

	return surviving
}

// unusedSlots returns the domain minus the given slots, ascending.
func (v *Validator) unusedSlots(used []types.Slot) []types.Slot {
	taken := make(map[types.Slot]struct{}, len(used))
	for _, s := range used {
		taken[s] = struct{}{}
	}

	out := make([]types.Slot, 0, v.numSlots-len(taken))
	for i := range v.numSlots {
		s := types.Slot(i)
		if _, ok := taken[s]; !ok {
			out = append(out, s)
		}
	}

	return out
}
