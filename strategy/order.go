package strategy

import (
	"slices"

	"github.com/Moaila/tdma/types"
)

// FixedOrder negotiates stations in their canonical order every round.
//
// The greedy resolver favors earlier stations under scarcity, so a fixed
// order keeps that bias stable across the run.
type FixedOrder struct{}

var _ types.OrderPolicy = (*FixedOrder)(nil)

// NewFixedOrder creates the fixed order policy.
func NewFixedOrder() *FixedOrder {
	return &FixedOrder{}
}

// Order returns a copy of the canonical station order.
func (f *FixedOrder) Order(_ int, stations []string) []string {
	return slices.Clone(stations)
}

// RotatingOrder rotates the first-mover advantage across rounds: round r
// starts with station (r-1) mod n and wraps around.
type RotatingOrder struct{}

var _ types.OrderPolicy = (*RotatingOrder)(nil)

// NewRotatingOrder creates the rotating order policy.
//
// Returns:
//   - *RotatingOrder: Initialized policy
//
// Example:
//
//	coord, err := tdma.NewCoordinator(&cfg, sources,
//	    tdma.WithOrderPolicy(strategy.NewRotatingOrder()))
func NewRotatingOrder() *RotatingOrder {
	return &RotatingOrder{}
}

// Order returns the stations rotated so that each round starts one position
// later than the previous one.
//
// Parameters:
//   - round: 1-based round index
//   - stations: Canonical station list
//
// Returns:
//   - []string: Rotated permutation of stations
func (r *RotatingOrder) Order(round int, stations []string) []string {
	n := len(stations)
	if n == 0 {
		return nil
	}

	start := (round - 1) % n
	if start < 0 {
		start = 0
	}

	out := make([]string, 0, n)
	out = append(out, stations[start:]...)
	out = append(out, stations[:start]...)

	return out
}
