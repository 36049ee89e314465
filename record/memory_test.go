package record

import (
	"context"
	"testing"

	"github.com/Moaila/tdma/types"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	t.Run("empty store loads empty", func(t *testing.T) {
		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("append preserves order", func(t *testing.T) {
		first := types.SuccessRecord{
			Demand:     types.Demand{"AP1": 5, "AP2": 5},
			Allocation: types.Allocation{"AP1": {0, 1, 2, 3, 4}, "AP2": {5, 6, 7, 8, 9}},
			Rounds:     3,
			Timestamp:  "2026-08-29 10:00:00",
		}
		second := types.SuccessRecord{
			Demand:     types.Demand{"AP1": 4, "AP2": 6},
			Allocation: types.Allocation{"AP1": {0, 1, 2, 3}, "AP2": {4, 5, 6, 7, 8, 9}},
			Rounds:     1,
			Timestamp:  "2026-08-29 10:05:00",
		}

		require.NoError(t, store.Append(ctx, first))
		require.NoError(t, store.Append(ctx, second))

		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, []types.SuccessRecord{first, second}, records)
	})

	t.Run("load returns a copy", func(t *testing.T) {
		records, err := store.Load(ctx)
		require.NoError(t, err)
		records[0].Rounds = 999

		reloaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, reloaded[0].Rounds)
	})
}
