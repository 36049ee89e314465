package strategy

import "github.com/Moaila/tdma/types"

// Coolest implements deterministic lowest-heat replacement picking.
type Coolest struct{}

var _ types.ReplacementPicker = (*Coolest)(nil)

// NewCoolest creates the deterministic replacement picker.
//
// The picker always selects the candidate with the lowest cumulative heat,
// breaking ties by the lowest slot index. Re-running it against an unchanged
// pool state yields the same result, which makes it the default for
// reproducible runs and tests.
//
// Returns:
//   - *Coolest: Initialized picker
//
// Example:
//
//	picker := strategy.NewCoolest()
//	coord, err := tdma.NewCoordinator(&cfg, sources, tdma.WithReplacementPicker(picker))
func NewCoolest() *Coolest {
	return &Coolest{}
}

// Pick selects the coolest candidate, ties broken by ascending slot index.
//
// Parameters:
//   - candidates: Non-empty set of free slots, sorted ascending
//   - heat: Read access to cumulative slot usage
//
// Returns:
//   - types.Slot: The lowest-heat, lowest-index candidate
func (c *Coolest) Pick(candidates []types.Slot, heat types.HeatReader) types.Slot {
	best := candidates[0]
	bestHeat := heat.Heat(best)
	for _, s := range candidates[1:] {
		if h := heat.Heat(s); h < bestHeat {
			best, bestHeat = s, h
		}
	}

	return best
}
