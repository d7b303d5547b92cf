package factory

import (
	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Role picks the tags an actor is spawned with.
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
)

// ActorOptions configures a spawned actor. Zero values take the defaults.
type ActorOptions struct {
	Name   string
	Team   int
	Role   Role
	FaceX  float64 // initial facing, right when zero
	Sink   components.AnimationSink
	Bot    components.Decider
	BotDif cfg.BotDifficulty
	// Extra components are added at spawn, e.g. network replication state.
	Extra []donburi.IComponentType
}

// CreateActor spawns a combat rig from profile at (x, y). The same rig serves
// players and AI; only the command source differs.
func CreateActor(ecs *ecs.ECS, profile cfg.ActorProfile, x, y float64, opts ActorOptions) *donburi.Entry {
	roleTag, resolvRole := tags.Player, tags.ResolvPlayer
	if opts.Role == RoleEnemy {
		roleTag, resolvRole = tags.Enemy, tags.ResolvEnemy
	}
	var extra []donburi.IComponentType
	extra = append(extra, roleTag)
	if opts.Bot != nil {
		extra = append(extra, components.Bot)
	}
	extra = append(extra, opts.Extra...)
	actor := archetypes.Actor.Spawn(ecs, extra...)

	w, h := profile.CollisionWidth, profile.CollisionHeight
	obj := resolv.NewObject(x, y, w, h, tags.ResolvActor, resolvRole)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = actor // Link for O(1) lookup
	components.Object.SetValue(actor, components.ObjectData{Object: obj})

	name := opts.Name
	if name == "" {
		name = profile.Name
	}
	data := components.ActorData{
		ID:            uuid.NewString(),
		Name:          name,
		Profile:       profile.Name,
		Team:          opts.Team,
		RemoveOnDeath: profile.RemoveOnDeath,
	}
	data.SetFacingX(1)
	if opts.FaceX != 0 {
		data.SetFacingX(opts.FaceX)
	}
	components.Actor.SetValue(actor, data)

	components.Physics.SetValue(actor, components.PhysicsData{
		Acceleration: profile.Acceleration,
		Friction:     profile.Friction,
		MaxSpeed:     profile.MoveSpeed,
		Gravity:      profile.Gravity,
	})
	components.Resources.SetValue(actor, components.ResourcesData{
		Health:     profile.Health,
		MaxHealth:  profile.Health,
		Stamina:    profile.Stamina,
		MaxStamina: profile.Stamina,
		RegenRate:  profile.StaminaRegen,
	})

	parryWindow := cfg.Combat.ParryWindow
	if profile.ParryWindow > 0 {
		parryWindow = profile.ParryWindow
	}
	components.Defense.SetValue(actor, components.DefenseData{
		ParryWindow: parryWindow,
		GuardAngle:  cfg.Combat.GuardAngle,
	})
	components.Attack.SetValue(actor, components.AttackData{
		PowerMul: 1,
		Targets:  make([]*donburi.Entry, 0, cfg.Combat.MaxHitTargets),
	})

	attackPower := profile.AttackPower
	if attackPower == 0 {
		attackPower = 1
	}
	components.Stats.SetValue(actor, components.StatsData{
		Profile:     profile,
		AttackPower: attackPower,
		DamageTaken: 1,
	})
	components.State.SetValue(actor, components.StateData{
		CurrentState:  cfg.Idle,
		PreviousState: cfg.StateNone,
	})
	components.Animation.SetValue(actor, components.AnimationData{Sink: opts.Sink})

	if opts.Bot != nil {
		components.Bot.SetValue(actor, components.BotData{
			Decider:    opts.Bot,
			Difficulty: opts.BotDif,
		})
	}

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	return actor
}
