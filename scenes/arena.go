package scenes

import (
	"sync"
	"time"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// Arena is a headless combat world driven by an external scheduler. Update
// must be called from one goroutine; Submit is safe from any goroutine.
type Arena struct {
	ecs    *ecs.ECS
	clock  *donburi.Entry
	logger *zap.Logger

	mu    sync.Mutex
	inbox []submission
}

type submission struct {
	entity donburi.Entity
	cmd    components.Command
}

// NewArena builds an empty arena with its collision space and system order.
// A nil logger discards logs.
func NewArena(logger *zap.Logger) *Arena {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Arena{logger: logger}
	a.configure()
	return a
}

func (a *Arena) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	// Input first so every system sees this tick's commands.
	ecs.AddSystem(systems.UpdateBots) // Must run before UpdateCommands
	ecs.AddSystem(systems.UpdateCommands)

	ecs.AddSystem(systems.UpdateLocks)
	ecs.AddSystem(systems.UpdateResources)
	ecs.AddSystem(systems.UpdateDefense)
	ecs.AddSystem(systems.UpdateAttacks)
	ecs.AddSystem(systems.UpdateSkills)
	ecs.AddSystem(systems.UpdatePhysics)
	ecs.AddSystem(systems.UpdateDeaths)
	ecs.AddSystem(systems.UpdateStates)

	a.clock = archetypes.Arena.Spawn(ecs)
	components.Arena.SetValue(a.clock, components.ArenaData{Logger: a.logger})

	factory.CreateSpace(ecs, cfg.Arena)

	a.ecs = ecs
}

// ECS exposes the arena's ECS for systems and tests.
func (a *Arena) ECS() *ecs.ECS {
	return a.ecs
}

// World returns the arena's donburi world.
func (a *Arena) World() donburi.World {
	return a.ecs.World
}

// Now returns the simulated time.
func (a *Arena) Now() time.Duration {
	return components.Clock.Get(a.clock).Now
}

// Tick returns the number of updates run so far.
func (a *Arena) Tick() uint64 {
	return components.Clock.Get(a.clock).Tick
}

// Spawn places a new actor built from profile.
func (a *Arena) Spawn(profile cfg.ActorProfile, x, y float64, opts factory.ActorOptions) *donburi.Entry {
	e := factory.CreateActor(a.ecs, profile, x, y, opts)
	a.logger.Debug("actor spawned",
		zap.String("actor", components.Actor.Get(e).Name),
		zap.String("profile", profile.Name),
		zap.Float64("x", x))
	return e
}

// AddWall places a solid block.
func (a *Arena) AddWall(x, y, w, h float64) *donburi.Entry {
	return factory.CreateWall(a.ecs, x, y, w, h)
}

// Remove takes an actor or wall out of the arena.
func (a *Arena) Remove(entity donburi.Entity) {
	e, ok := a.Entry(entity)
	if !ok {
		return
	}
	if e.HasComponent(components.Object) {
		if sp, ok := components.Space.First(a.ecs.World); ok {
			if obj := components.Object.Get(e); obj.Object != nil {
				components.Space.Get(sp).Remove(obj.Object)
			}
		}
	}
	a.ecs.World.Remove(entity)
}

// Entry returns the live entry for entity.
func (a *Arena) Entry(entity donburi.Entity) (*donburi.Entry, bool) {
	if !a.ecs.World.Valid(entity) {
		return nil, false
	}
	return a.ecs.World.Entry(entity), true
}

// Actors returns every actor still in the arena.
func (a *Arena) Actors() []*donburi.Entry {
	var out []*donburi.Entry
	tags.Actor.Each(a.ecs.World, func(e *donburi.Entry) {
		out = append(out, e)
	})
	return out
}

// Submit queues a command for entity. It is picked up at the start of the
// next Update; a zero timestamp means "as soon as possible".
func (a *Arena) Submit(entity donburi.Entity, cmd components.Command) {
	a.mu.Lock()
	a.inbox = append(a.inbox, submission{entity: entity, cmd: cmd})
	a.mu.Unlock()
}

// Subscribe registers fn for every notification. Notifications are delivered
// at the end of each Update.
func (a *Arena) Subscribe(fn func(systems.Notification)) {
	systems.NotificationEvent.Subscribe(a.ecs.World, func(_ donburi.World, n systems.Notification) {
		fn(n)
	})
}

// Flush delivers notifications published outside Update.
func (a *Arena) Flush() {
	systems.FlushNotifications(a.ecs.World)
}

// Update advances the arena by dt. Frames longer than Combat.MaxFrameDelta
// are clamped.
func (a *Arena) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if dt > cfg.Combat.MaxFrameDelta {
		dt = cfg.Combat.MaxFrameDelta
	}
	clock := components.Clock.Get(a.clock)
	clock.Now += dt
	clock.Delta = dt
	clock.Tick++

	a.drainInbox(clock.Now)
	a.ecs.Update()
	systems.FlushNotifications(a.ecs.World)
}

func (a *Arena) drainInbox(now time.Duration) {
	a.mu.Lock()
	pending := a.inbox
	a.inbox = nil
	a.mu.Unlock()

	for _, s := range pending {
		e, ok := a.Entry(s.entity)
		if !ok || !e.HasComponent(components.Commands) {
			a.logger.Debug("command for unknown actor dropped", zap.Stringer("action", s.cmd.Action))
			continue
		}
		cmd := s.cmd
		if cmd.At == 0 {
			cmd.At = now
		}
		components.Commands.Get(e).Push(cmd)
	}
}
