package respparse

import (
	"errors"
	"testing"

	"github.com/Moaila/tdma/types"
	"github.com/stretchr/testify/require"
)

func TestExtractSlots(t *testing.T) {
	t.Run("clean JSON reply", func(t *testing.T) {
		got, err := ExtractSlots(`{"channels": [1, 3, 5], "reason": "low heat"}`)
		require.NoError(t, err)
		require.Equal(t, []types.Slot{1, 3, 5}, got)
	})

	t.Run("JSON embedded in prose", func(t *testing.T) {
		reply := "Sure! Based on the feedback I will pick low-heat slots.\n" +
			`{"channels": [0, 7], "reason": "edges first"}` + "\nGood luck!"

		got, err := ExtractSlots(reply)
		require.NoError(t, err)
		require.Equal(t, []types.Slot{0, 7}, got)
	})

	t.Run("code-fenced reply with single quotes and bare keys", func(t *testing.T) {
		reply := "```json\n{channels: [2, 4], reason: 'balanced'}\n```"

		got, err := ExtractSlots(reply)
		require.NoError(t, err)
		require.Equal(t, []types.Slot{2, 4}, got)
	})

	t.Run("full-width punctuation is normalized", func(t *testing.T) {
		got, err := ExtractSlots(`{"channels"：[1，2]}`)
		require.NoError(t, err)
		require.Equal(t, []types.Slot{1, 2}, got)
	})

	t.Run("accepts any key holding an integer list", func(t *testing.T) {
		got, err := ExtractSlots(`{"picked": [4, 5], "note": "no channels key"}`)
		require.NoError(t, err)
		require.Equal(t, []types.Slot{4, 5}, got)
	})

	t.Run("prefers channels over other list keys", func(t *testing.T) {
		got, err := ExtractSlots(`{"alternates": [9], "channels": [1]}`)
		require.NoError(t, err)
		require.Equal(t, []types.Slot{1}, got)
	})

	t.Run("coerces floats and numeric strings", func(t *testing.T) {
		got, err := ExtractSlots(`{"channels": [1.0, "3", 5.9, "x"]}`)
		require.NoError(t, err)
		require.Equal(t, []types.Slot{1, 3, 5}, got)
	})

	t.Run("trailing comma is repaired", func(t *testing.T) {
		got, err := ExtractSlots(`{"channels": [1, 2,]}`)
		require.NoError(t, err)
		require.Equal(t, []types.Slot{1, 2}, got)
	})

	t.Run("no braces at all", func(t *testing.T) {
		_, err := ExtractSlots("I cannot decide right now.")
		require.Error(t, err)
		require.True(t, errors.Is(err, types.ErrNoProposal))
	})

	t.Run("braces without a usable list", func(t *testing.T) {
		_, err := ExtractSlots(`{"reason": "thinking", "channels": []}`)
		require.Error(t, err)
		require.True(t, errors.Is(err, types.ErrNoProposal))
	})

	t.Run("hopelessly malformed fragment", func(t *testing.T) {
		_, err := ExtractSlots("{{{:::")
		require.Error(t, err)
		require.True(t, errors.Is(err, types.ErrNoProposal))
	})

	t.Run("nested braces resolve to the outermost balanced fragment", func(t *testing.T) {
		got, err := ExtractSlots(`{"meta": {"model": "x"}, "channels": [6]}`)
		require.NoError(t, err)
		require.Equal(t, []types.Slot{6}, got)
	})
}
