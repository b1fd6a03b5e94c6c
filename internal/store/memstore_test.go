package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocean-server/internal/game"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	s := NewMemoryStore()
	o := game.NewOcean("S", "board-1", game.OceanConfig{})
	s.SaveOcean(o)

	got, ok := s.GetOcean("S")
	require.True(t, ok)
	assert.Same(t, o, got)
	assert.Equal(t, 1, s.Count())

	_, ok = s.GetOcean("missing")
	assert.False(t, ok)
}

func TestMemoryStore_BoardIndex(t *testing.T) {
	s := NewMemoryStore()
	s.SaveOcean(game.NewOcean("A", "board-1", game.OceanConfig{}))
	s.SaveOcean(game.NewOcean("B", "board-1", game.OceanConfig{}))
	s.SaveOcean(game.NewOcean("C", "board-2", game.OceanConfig{}))

	assert.Equal(t, []string{"A", "B"}, s.OceansOwnedBy("board-1"))
	assert.Equal(t, []string{"C"}, s.OceansOwnedBy("board-2"))
	assert.Empty(t, s.OceansOwnedBy("player-9"))

	s.DeleteOcean("A")
	assert.Equal(t, []string{"B"}, s.OceansOwnedBy("board-1"))
	assert.Equal(t, 2, s.Count())

	s.DeleteOcean("B")
	assert.Empty(t, s.OceansOwnedBy("board-1"))
}

func TestMemoryStore_ReplaceKeepsSingleIndexEntry(t *testing.T) {
	s := NewMemoryStore()
	s.SaveOcean(game.NewOcean("A", "board-1", game.OceanConfig{}))

	replacement := game.NewOcean("A", "board-1", game.OceanConfig{})
	replacement.Round = 4
	s.SaveOcean(replacement)

	assert.Equal(t, []string{"A"}, s.OceansOwnedBy("board-1"))
	got, _ := s.GetOcean("A")
	assert.Equal(t, 4, got.Round)
}
