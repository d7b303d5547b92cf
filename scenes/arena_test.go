package scenes_test

import (
	"testing"
	"time"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/scenes"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func spawnPlayer(a *scenes.Arena, x float64, team int) *donburi.Entry {
	p := config.Profile(config.ProfilePlayer)
	return a.Spawn(p, x, config.Arena.FloorY-p.CollisionHeight, factory.ActorOptions{Team: team, FaceX: 1})
}

func TestUpdateClampsFrameDelta(t *testing.T) {
	a := scenes.NewArena(nil)

	a.Update(5 * time.Second)
	assert.Equal(t, config.Combat.MaxFrameDelta, a.Now())

	a.Update(-time.Second)
	assert.Equal(t, config.Combat.MaxFrameDelta, a.Now())
	assert.Equal(t, uint64(2), a.Tick())
}

func TestSubmitWithoutTimestampActsOnNextUpdate(t *testing.T) {
	a := scenes.NewArena(nil)
	e := spawnPlayer(a, 100, 0)

	a.Submit(e.Entity(), components.Command{Action: config.ActionBlock, Pressed: true})
	assert.False(t, components.Defense.Get(e).IsBlocking)

	a.Update(10 * time.Millisecond)
	assert.True(t, components.Defense.Get(e).IsBlocking)
}

func TestFutureCommandWaitsForItsTime(t *testing.T) {
	a := scenes.NewArena(nil)
	e := spawnPlayer(a, 100, 0)

	a.Submit(e.Entity(), components.Command{Action: config.ActionBlock, Pressed: true, At: 50 * time.Millisecond})
	a.Update(20 * time.Millisecond)
	assert.False(t, components.Defense.Get(e).IsBlocking)

	a.Update(30 * time.Millisecond)
	assert.True(t, components.Defense.Get(e).IsBlocking)
}

func TestSubmitToUnknownActorIsDropped(t *testing.T) {
	a := scenes.NewArena(nil)
	e := spawnPlayer(a, 100, 0)
	// Entries are recycled by id, so hold the entity handle itself.
	entity := e.Entity()
	a.Remove(entity)

	assert.NotPanics(t, func() {
		a.Submit(entity, components.Command{Action: config.ActionAttack, Pressed: true})
		a.Update(10 * time.Millisecond)
	})
	_, ok := a.Entry(entity)
	assert.False(t, ok)
}

func TestRemoveDropsActorFromQueries(t *testing.T) {
	a := scenes.NewArena(nil)
	first := spawnPlayer(a, 100, 0)
	second := spawnPlayer(a, 200, 1)
	require.Len(t, a.Actors(), 2)

	firstEntity, secondEntity := first.Entity(), second.Entity()
	a.Remove(firstEntity)
	actors := a.Actors()
	require.Len(t, actors, 1)
	assert.Equal(t, secondEntity, actors[0].Entity())

	a.Remove(firstEntity)
	assert.Len(t, a.Actors(), 1)
}

func TestNotificationsDeliveredAfterUpdate(t *testing.T) {
	a := scenes.NewArena(nil)
	attacker := spawnPlayer(a, 100, 0)
	spawnPlayer(a, 120, 1)

	var got []systems.Notification
	a.Subscribe(func(n systems.Notification) { got = append(got, n) })

	a.Submit(attacker.Entity(), components.Command{Action: config.ActionAttack, Pressed: true})
	for i := 0; i < 20; i++ {
		a.Update(10 * time.Millisecond)
	}

	tags := make([]string, 0, len(got))
	for _, n := range got {
		tags = append(tags, n.Tag)
	}
	assert.Contains(t, tags, systems.NotifyHit)
	assert.Contains(t, tags, systems.NotifySwing)
}

func TestWallBlocksMovement(t *testing.T) {
	a := scenes.NewArena(nil)
	e := spawnPlayer(a, 100, 0)
	a.AddWall(130, 0, 10, config.Arena.FloorY)

	a.Submit(e.Entity(), components.Command{Action: config.ActionMoveRight, Pressed: true})
	for i := 0; i < 100; i++ {
		a.Update(10 * time.Millisecond)
	}
	obj := components.Object.Get(e)
	assert.LessOrEqual(t, obj.X+obj.W, 130.0)
	assert.Greater(t, obj.X, 100.0)
}
