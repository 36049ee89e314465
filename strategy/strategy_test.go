package strategy

import (
	"math/rand/v2"
	"testing"

	"github.com/Moaila/tdma/pool"
	"github.com/Moaila/tdma/types"
	"github.com/stretchr/testify/require"
)

func TestCoolest_Pick(t *testing.T) {
	t.Run("picks lowest heat", func(t *testing.T) {
		p := pool.New(4)
		p.RecordUsage(types.Allocation{"AP1": {0, 1}})
		p.RecordUsage(types.Allocation{"AP1": {0}})

		got := NewCoolest().Pick([]types.Slot{0, 1, 2}, p)
		require.Equal(t, types.Slot(2), got)
	})

	t.Run("ties break by lowest index", func(t *testing.T) {
		p := pool.New(4)

		got := NewCoolest().Pick([]types.Slot{1, 2, 3}, p)
		require.Equal(t, types.Slot(1), got)
	})

	t.Run("single candidate", func(t *testing.T) {
		got := NewCoolest().Pick([]types.Slot{3}, pool.New(4))
		require.Equal(t, types.Slot(3), got)
	})
}

func TestRandom_Pick(t *testing.T) {
	t.Run("always returns a candidate", func(t *testing.T) {
		r := NewRandom(WithRand(rand.New(rand.NewPCG(4, 4))))
		candidates := []types.Slot{2, 5, 7}

		for range 20 {
			require.Contains(t, candidates, r.Pick(candidates, pool.New(8)))
		}
	})
}

func TestOrderPolicies(t *testing.T) {
	stations := []string{"AP1", "AP2", "AP3"}

	t.Run("fixed order preserves canonical order", func(t *testing.T) {
		f := NewFixedOrder()
		require.Equal(t, stations, f.Order(1, stations))
		require.Equal(t, stations, f.Order(7, stations))
	})

	t.Run("fixed order does not alias the input", func(t *testing.T) {
		f := NewFixedOrder()
		got := f.Order(1, stations)
		got[0] = "mutated"
		require.Equal(t, "AP1", stations[0])
	})

	t.Run("rotating order shifts one position per round", func(t *testing.T) {
		r := NewRotatingOrder()
		require.Equal(t, []string{"AP1", "AP2", "AP3"}, r.Order(1, stations))
		require.Equal(t, []string{"AP2", "AP3", "AP1"}, r.Order(2, stations))
		require.Equal(t, []string{"AP3", "AP1", "AP2"}, r.Order(3, stations))
		require.Equal(t, []string{"AP1", "AP2", "AP3"}, r.Order(4, stations))
	})

	t.Run("rotating order handles empty station list", func(t *testing.T) {
		require.Nil(t, NewRotatingOrder().Order(1, nil))
	})
}
