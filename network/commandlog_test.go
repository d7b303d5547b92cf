package network

import (
	"testing"

	"github.com/automoto/doomerang-combat/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCommandLogSequencesStartAtOne(t *testing.T) {
	var log CommandLog
	assert.Equal(t, uint32(1), log.NextSeq())

	first := log.Next(config.ActionAttack, true)
	second := log.Next(config.ActionAttack, false)
	assert.Equal(t, uint32(1), first.Sequence)
	assert.Equal(t, uint32(2), second.Sequence)

	got, ok := log.Get(2)
	require.True(t, ok)
	assert.Equal(t, config.ActionAttack, got.Action)
	assert.False(t, got.Pressed)

	_, ok = log.Get(0)
	assert.False(t, ok)
}

func TestCommandLogUnacknowledged(t *testing.T) {
	var log CommandLog
	for i := 0; i < 5; i++ {
		log.Next(config.ActionBlock, i%2 == 0)
	}

	pending := log.Unacknowledged(3)
	require.Len(t, pending, 2)
	assert.Equal(t, uint32(4), pending[0].Sequence)
	assert.Equal(t, uint32(5), pending[1].Sequence)

	assert.Empty(t, log.Unacknowledged(5))
	assert.Len(t, log.Unacknowledged(0), 5)
}

func TestCommandLogOverwritesOldSlots(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 3*commandLogSize).Draw(t, "n")
		var log CommandLog
		for i := 0; i < n; i++ {
			log.Next(config.ActionMoveLeft, true)
		}

		pending := log.Unacknowledged(0)
		want := n
		if want > commandLogSize {
			want = commandLogSize
		}
		if len(pending) != want {
			t.Fatalf("expected %d pending, got %d", want, len(pending))
		}
		for i := 1; i < len(pending); i++ {
			if pending[i].Sequence != pending[i-1].Sequence+1 {
				t.Fatalf("sequences not contiguous at %d", i)
			}
		}
		if pending[len(pending)-1].Sequence != uint32(n) {
			t.Fatalf("last sequence %d, want %d", pending[len(pending)-1].Sequence, n)
		}
	})
}

func TestClientRejectsCommandsBeforeJoin(t *testing.T) {
	c := NewClient(nil)
	assert.Equal(t, StateDisconnected, c.State())
	assert.Error(t, c.SendCommand(config.ActionAttack, true))
	assert.Empty(t, c.DrainNotifications())
	assert.Nil(t, c.LatestSnapshot())
}
