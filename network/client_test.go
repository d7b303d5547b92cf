package network

import (
	"testing"

	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/netcomponents"
	"github.com/automoto/doomerang-combat/shared/protocol"
	"github.com/leap-fish/necs/esync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serializedActor(t *testing.T, id esync.NetworkId, lastSeq uint32) esync.SerializedEntity {
	t.Helper()
	payload, err := esync.Mapper.Serialize(netcomponents.NetActorData{Name: "p", LastSequence: lastSeq})
	require.NoError(t, err)
	return esync.SerializedEntity{
		Id:    id,
		State: esync.EntityState{esync.ComponentId(protocol.SyncIDNetActor): payload},
	}
}

func TestAppliedSequenceDrivesUnacknowledged(t *testing.T) {
	require.NoError(t, protocol.RegisterComponents())

	c := NewClient(nil)
	c.networkID = 7
	for i := 0; i < 5; i++ {
		c.commands.Next(config.ActionAttack, i%2 == 0)
	}

	snapshot := esync.WorldSnapshot{
		serializedActor(t, 3, 99),
		serializedActor(t, 7, 3),
	}
	applied, ok := c.AppliedSequence(snapshot)
	require.True(t, ok)
	assert.Equal(t, uint32(3), applied, "must read our own actor, not another entity")

	pending := c.Unacknowledged(applied)
	require.Len(t, pending, 2)
	assert.Equal(t, uint32(4), pending[0].Sequence)
	assert.Equal(t, uint32(5), pending[1].Sequence)

	_, ok = c.AppliedSequence(esync.WorldSnapshot{serializedActor(t, 3, 99)})
	assert.False(t, ok)
}

func TestLatestSnapshotKeepsNewest(t *testing.T) {
	c := NewClient(nil)
	assert.Nil(t, c.LatestSnapshot())

	c.snapshotCh <- esync.WorldSnapshot{{Id: 1}}
	snap := c.LatestSnapshot()
	require.NotNil(t, snap)
	assert.Len(t, *snap, 1)
	assert.Nil(t, c.LatestSnapshot())
}
