package validate

import (
	"math/rand/v2"
	"testing"

	"github.com/Moaila/tdma/pool"
	"github.com/Moaila/tdma/types"
	"github.com/stretchr/testify/require"
)

func newTestValidator(numSlots int, p Pool) *Validator {
	return New(numSlots, p, WithRand(rand.New(rand.NewPCG(1, 2))))
}

func TestValidator_Validate(t *testing.T) {
	t.Run("well-formed input is returned unchanged except for order", func(t *testing.T) {
		v := newTestValidator(8, pool.New(8))

		got := v.Validate([]types.Slot{5, 1, 3}, 3)

		require.Equal(t, []types.Slot{1, 3, 5}, got.Slots)
		require.False(t, got.Fallback)
		require.False(t, got.Degenerate)
	})

	t.Run("drops duplicates and out-of-range then backfills coolest", func(t *testing.T) {
		// Scenario: 8 slots, expected 3, raw [1,2,2,9]. The duplicate 2 and
		// out-of-range 9 are dropped; with all heats equal the backfill picks
		// slot 0, the lowest-index coolest slot.
		v := newTestValidator(8, pool.New(8))

		got := v.Validate([]types.Slot{1, 2, 2, 9}, 3)

		require.Equal(t, []types.Slot{0, 1, 2}, got.Slots)
		require.False(t, got.Fallback)
	})

	t.Run("heat-aware backfill avoids hot slots", func(t *testing.T) {
		p := pool.New(4)
		p.RecordUsage(types.Allocation{"AP1": {0}})
		p.RecordUsage(types.Allocation{"AP1": {0}})
		p.RecordUsage(types.Allocation{"AP2": {1}})
		v := newTestValidator(4, p)

		got := v.Validate([]types.Slot{3}, 2)

		// Heat: 0=2, 1=1, 2=0, 3 excluded; coolest unused is 2.
		require.Equal(t, []types.Slot{2, 3}, got.Slots)
	})

	t.Run("truncates oversized proposals deterministically", func(t *testing.T) {
		v := newTestValidator(8, pool.New(8))

		got := v.Validate([]types.Slot{7, 2, 5, 0, 4}, 3)

		require.Equal(t, []types.Slot{0, 2, 4}, got.Slots)
	})

	t.Run("empty input degrades to full fallback", func(t *testing.T) {
		v := newTestValidator(6, pool.New(6))

		got := v.Validate(nil, 4)

		require.Len(t, got.Slots, 4)
		require.True(t, got.Fallback)
		seen := make(map[types.Slot]struct{})
		for _, s := range got.Slots {
			require.GreaterOrEqual(t, int(s), 0)
			require.Less(t, int(s), 6)
			_, dup := seen[s]
			require.False(t, dup, "fallback must not duplicate slots")
			seen[s] = struct{}{}
		}
	})

	t.Run("totality: always exactly expected slots", func(t *testing.T) {
		inputs := [][]types.Slot{
			nil,
			{},
			{-5, 100, 42},
			{1, 1, 1, 1},
			{0, 1, 2, 3, 4, 5, 6, 7},
		}
		v := newTestValidator(8, pool.New(8))

		for _, raw := range inputs {
			got := v.Validate(raw, 3)
			require.Len(t, got.Slots, 3, "raw=%v", raw)
		}
	})

	t.Run("expected beyond domain resorts to replacement and flags degenerate", func(t *testing.T) {
		v := newTestValidator(3, pool.New(3))

		got := v.Validate(nil, 5)

		require.Len(t, got.Slots, 5)
		require.True(t, got.Degenerate)
	})

	t.Run("nil pool falls back to random without replacement", func(t *testing.T) {
		v := newTestValidator(6, nil)

		got := v.Validate([]types.Slot{2}, 3)

		require.Len(t, got.Slots, 3)
		require.Contains(t, got.Slots, types.Slot(2))
	})

	t.Run("zero expected yields empty set", func(t *testing.T) {
		v := newTestValidator(4, pool.New(4))
		require.Empty(t, v.Validate([]types.Slot{1}, 0).Slots)
	})

	t.Run("empty domain yields empty fallback set without panicking", func(t *testing.T) {
		v := newTestValidator(0, nil)

		var got types.ValidatedSet
		require.NotPanics(t, func() { got = v.Validate([]types.Slot{0, 1}, 3) })
		require.Empty(t, got.Slots)
		require.True(t, got.Fallback)
	})
}
