package strategy

import (
	"math/rand/v2"

	"github.com/Moaila/tdma/types"
)

// Random implements uniform random replacement picking.
type Random struct {
	rng *rand.Rand
}

var _ types.ReplacementPicker = (*Random)(nil)

// RandomOption configures a Random picker.
type RandomOption func(*Random)

// WithRand sets the random source used for picking.
//
// Parameters:
//   - rng: Random source (seed it for reproducible simulations)
//
// Returns:
//   - RandomOption: Configuration option
func WithRand(rng *rand.Rand) RandomOption {
	return func(r *Random) {
		r.rng = rng
	}
}

// NewRandom creates the uniform random replacement picker.
//
// This matches the original system's behavior and is preferred for
// simulation fidelity; use NewCoolest for deterministic runs.
//
// Parameters:
//   - opts: Optional configuration (WithRand)
//
// Returns:
//   - *Random: Initialized picker
func NewRandom(opts ...RandomOption) *Random {
	r := &Random{}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return r
}

// Pick selects a candidate uniformly at random.
//
// Parameters:
//   - candidates: Non-empty set of free slots
//   - heat: Unused by this picker
//
// Returns:
//   - types.Slot: A uniformly chosen candidate
func (r *Random) Pick(candidates []types.Slot, _ types.HeatReader) types.Slot {
	return candidates[r.rng.IntN(len(candidates))]
}
