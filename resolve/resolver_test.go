package resolve

import (
	"testing"

	"github.com/Moaila/tdma/pool"
	"github.com/Moaila/tdma/strategy"
	"github.com/Moaila/tdma/types"
	"github.com/stretchr/testify/require"
)

func set(slots ...types.Slot) types.ValidatedSet {
	return types.ValidatedSet{Slots: slots}
}

func requireDisjoint(t *testing.T, alloc types.Allocation) {
	t.Helper()
	seen := make(map[types.Slot]string)
	for station, slots := range alloc {
		for _, s := range slots {
			if owner, taken := seen[s]; taken {
				t.Fatalf("slot %d assigned to both %s and %s", s, owner, station)
			}
			seen[s] = station
		}
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("disjoint candidates pass through unchanged", func(t *testing.T) {
		r := New(8, strategy.NewCoolest())

		res := r.Resolve([]Candidate{
			{Station: "AP1", Set: set(0, 1, 2)},
			{Station: "AP2", Set: set(3, 4, 5)},
		}, pool.New(8))

		require.Equal(t, []types.Slot{0, 1, 2}, res.Allocation["AP1"])
		require.Equal(t, []types.Slot{3, 4, 5}, res.Allocation["AP2"])
		require.Empty(t, res.Shortfall)
	})

	t.Run("collision replaced with coolest free slot", func(t *testing.T) {
		// AP1 holds [0,1,2]; AP2 wants [1,3,5]. The collision on 1 must be
		// replaced by the coolest slot outside {0,1,2} and outside AP2's own
		// kept slots {3,5}: with uniform heat that is slot 4.
		r := New(8, strategy.NewCoolest())

		res := r.Resolve([]Candidate{
			{Station: "AP1", Set: set(0, 1, 2)},
			{Station: "AP2", Set: set(1, 3, 5)},
		}, pool.New(8))

		require.Equal(t, []types.Slot{0, 1, 2}, res.Allocation["AP1"])
		require.Equal(t, []types.Slot{3, 4, 5}, res.Allocation["AP2"])
		requireDisjoint(t, res.Allocation)
	})

	t.Run("replacement respects heat ordering", func(t *testing.T) {
		p := pool.New(6)
		p.RecordUsage(types.Allocation{"x": {3}})
		p.RecordUsage(types.Allocation{"x": {3}})
		p.RecordUsage(types.Allocation{"x": {4}})
		r := New(6, strategy.NewCoolest())

		// Collision on 0; free slots are {3,4,5} with heats {2,1,0}.
		res := r.Resolve([]Candidate{
			{Station: "AP1", Set: set(0, 1, 2)},
			{Station: "AP2", Set: set(0)},
		}, p)

		require.Equal(t, []types.Slot{5}, res.Allocation["AP2"])
	})

	t.Run("oversubscription produces shortfall not error", func(t *testing.T) {
		// 4 slots, three stations demanding 2 each: sum 6 > 4. After
		// resolution total claimed slots <= 4 and someone comes up short.
		r := New(4, strategy.NewCoolest())

		res := r.Resolve([]Candidate{
			{Station: "AP1", Set: set(0, 1)},
			{Station: "AP2", Set: set(0, 1)},
			{Station: "AP3", Set: set(0, 1)},
		}, pool.New(4))

		requireDisjoint(t, res.Allocation)
		total := 0
		for _, slots := range res.Allocation {
			total += len(slots)
		}
		require.LessOrEqual(t, total, 4)
		require.Equal(t, 2, res.Shortfall["AP3"])
		require.Len(t, res.Allocation["AP3"], 0)
	})

	t.Run("duplicate within a degenerate set is treated as a collision", func(t *testing.T) {
		r := New(4, strategy.NewCoolest())

		res := r.Resolve([]Candidate{
			{Station: "AP1", Set: types.ValidatedSet{Slots: []types.Slot{1, 1}, Degenerate: true}},
		}, pool.New(4))

		require.Equal(t, []types.Slot{0, 1}, res.Allocation["AP1"])
	})

	t.Run("disjointness holds for random picker", func(t *testing.T) {
		r := New(6, strategy.NewRandom())

		res := r.Resolve([]Candidate{
			{Station: "AP1", Set: set(0, 1, 2)},
			{Station: "AP2", Set: set(1, 2, 3)},
			{Station: "AP3", Set: set(2, 3, 4)},
		}, pool.New(6))

		requireDisjoint(t, res.Allocation)
		require.Len(t, res.Allocation["AP1"], 3)
		require.Len(t, res.Allocation["AP2"], 3)
	})

	t.Run("nil picker defaults to deterministic coolest", func(t *testing.T) {
		r := New(4, nil)

		res := r.Resolve([]Candidate{
			{Station: "AP1", Set: set(0)},
			{Station: "AP2", Set: set(0)},
		}, pool.New(4))

		require.Equal(t, []types.Slot{1}, res.Allocation["AP2"])
	})
}
