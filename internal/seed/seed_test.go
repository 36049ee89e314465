package seed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedDerivation(t *testing.T) {
	t.Run("run seed is stable", func(t *testing.T) {
		require.Equal(t, ForRun("run-42"), ForRun("run-42"))
		require.NotEqual(t, ForRun("run-42"), ForRun("run-43"))
	})

	t.Run("round seeds are stable and decorrelated", func(t *testing.T) {
		base := ForRun("run-42")
		require.Equal(t, ForRound(base, 1), ForRound(base, 1))
		require.NotEqual(t, ForRound(base, 1), ForRound(base, 2))
		require.NotEqual(t, ForRound(base, 1), ForRound(base+1, 1))
	})
}
