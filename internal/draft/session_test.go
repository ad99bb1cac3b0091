package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPublishAndRead(t *testing.T) {
	s := NewSession()
	_, ok := s.Snapshot()
	assert.False(t, ok)

	s.Publish(Snapshot{DraftYear: 2026, Picks: []Pick{pick(1, 1, "KC", "A")}})
	got, ok := s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 2026, got.DraftYear)

	got.Picks[0].PlayerName = "mutated"
	again, _ := s.Snapshot()
	assert.Equal(t, "A", again.Picks[0].PlayerName)
}

func TestSnapshotPicksInRound(t *testing.T) {
	snap := Snapshot{Picks: []Pick{pick(1, 1, "KC", "A"), pick(33, 2, "DAL", "B")}}
	assert.Len(t, snap.PicksInRound(2), 1)
	assert.Empty(t, snap.PicksInRound(5))
}

func TestPickResolvedAndIdentifiable(t *testing.T) {
	assert.False(t, Pick{PlayerName: PlayerTBD}.Resolved())
	assert.False(t, Pick{}.Resolved())
	assert.True(t, Pick{PlayerName: "A"}.Resolved())
	assert.True(t, Pick{TeamAbbr: "KC", PlayerName: PlayerTBD}.Identifiable())
	assert.False(t, Pick{PlayerName: PlayerTBD}.Identifiable())
}
