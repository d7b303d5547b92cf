package archetypes

import (
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	// Actor is the combat rig shared by players and AI. Role tags are added at spawn.
	Actor = newArchetype(
		tags.Actor,
		components.Actor,
		components.Object,
		components.Physics,
		components.Locks,
		components.Resources,
		components.Defense,
		components.Attack,
		components.CounterWindow,
		components.ActionLock,
		components.SkillCast,
		components.Stats,
		components.Death,
		components.State,
		components.Animation,
		components.Commands,
	)
	Space = newArchetype(
		components.Space,
	)
	Arena = newArchetype(
		components.Clock,
		components.Arena,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
