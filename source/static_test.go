package source

import (
	"context"
	"testing"

	"github.com/Moaila/tdma/types"
	"github.com/stretchr/testify/require"
)

func TestStatic_Decide(t *testing.T) {
	t.Run("pops replies in order", func(t *testing.T) {
		src := NewStatic(map[string][]string{
			"AP1": {`{"channels": [0, 1]}`, `{"channels": [2, 3]}`},
		})

		first, err := src.Decide(context.Background(), types.DecisionRequest{Station: "AP1"})
		require.NoError(t, err)
		require.Equal(t, `{"channels": [0, 1]}`, first)

		second, err := src.Decide(context.Background(), types.DecisionRequest{Station: "AP1"})
		require.NoError(t, err)
		require.Equal(t, `{"channels": [2, 3]}`, second)
		require.Equal(t, 0, src.Remaining("AP1"))
	})

	t.Run("exhausted queue returns ErrNoReply", func(t *testing.T) {
		src := NewStatic(map[string][]string{"AP1": {"once"}})

		_, err := src.Decide(context.Background(), types.DecisionRequest{Station: "AP1"})
		require.NoError(t, err)

		_, err = src.Decide(context.Background(), types.DecisionRequest{Station: "AP1"})
		require.ErrorIs(t, err, ErrNoReply)
	})

	t.Run("unknown station returns ErrNoReply", func(t *testing.T) {
		src := NewStatic(nil)

		_, err := src.Decide(context.Background(), types.DecisionRequest{Station: "AP9"})
		require.ErrorIs(t, err, ErrNoReply)
	})

	t.Run("push extends a queue", func(t *testing.T) {
		src := NewStatic(nil)
		src.Push("AP2", "a", "b")

		require.Equal(t, 2, src.Remaining("AP2"))

		reply, err := src.Decide(context.Background(), types.DecisionRequest{Station: "AP2"})
		require.NoError(t, err)
		require.Equal(t, "a", reply)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		src := NewStatic(map[string][]string{"AP1": {"x"}})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := src.Decide(ctx, types.DecisionRequest{Station: "AP1"})
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, src.Remaining("AP1"))
	})
}

func TestStatic_CopiesInput(t *testing.T) {
	queue := []string{"original"}
	src := NewStatic(map[string][]string{"AP1": queue})

	queue[0] = "mutated"

	reply, err := src.Decide(context.Background(), types.DecisionRequest{Station: "AP1"})
	require.NoError(t, err)
	require.Equal(t, "original", reply)
}
