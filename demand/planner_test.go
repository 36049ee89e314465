package demand

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/Moaila/tdma/types"
	"github.com/stretchr/testify/require"
)

func stations(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("AP%d", i+1)
	}

	return out
}

func TestPlanner_Generate(t *testing.T) {
	t.Run("demand conservation holds across seeds and shapes", func(t *testing.T) {
		shapes := []struct {
			numStations int
			numSlots    int
		}{
			{1, 1},
			{2, 8},
			{3, 4},
			{5, 5},
			{4, 20},
			{10, 12},
		}

		for _, shape := range shapes {
			for seed := range uint64(50) {
				rng := rand.New(rand.NewPCG(seed, seed+1))
				p := New(shape.numSlots, WithRand(rng))

				d, err := p.Generate(stations(shape.numStations))
				require.NoError(t, err)
				require.Len(t, d, shape.numStations)
				require.Equal(t, shape.numSlots, d.Total(),
					"stations=%d slots=%d seed=%d", shape.numStations, shape.numSlots, seed)
				for station, n := range d {
					require.GreaterOrEqual(t, n, 1, "station %s seed=%d", station, seed)
				}
			}
		}
	})

	t.Run("rejects more stations than slots", func(t *testing.T) {
		p := New(2, WithRand(rand.New(rand.NewPCG(1, 2))))

		_, err := p.Generate(stations(3))
		require.Error(t, err)
		require.True(t, errors.Is(err, types.ErrTooManyStations))
	})

	t.Run("rejects empty station list", func(t *testing.T) {
		p := New(4)

		_, err := p.Generate(nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, types.ErrInvalidConfig))
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		first := New(8, WithRand(rand.New(rand.NewPCG(7, 7))))
		second := New(8, WithRand(rand.New(rand.NewPCG(7, 7))))

		d1, err := first.Generate(stations(3))
		require.NoError(t, err)
		d2, err := second.Generate(stations(3))
		require.NoError(t, err)

		require.Equal(t, d1, d2)
	})

	t.Run("custom base range is honored", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 9))
		p := New(12, WithRand(rng), WithBaseRange(2, 3))

		d, err := p.Generate(stations(4))
		require.NoError(t, err)
		require.Equal(t, 12, d.Total())
	})
}
