package systems

import (
	"math"
	"time"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
	"go.uber.org/zap"
)

// Outcome is what a hit did to its defender.
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeBlock
	OutcomeParry
	OutcomeHit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBlock:
		return "Block"
	case OutcomeParry:
		return "Parry"
	case OutcomeHit:
		return "Hit"
	}
	return "Miss"
}

// Hit is one attack connecting with one defender.
type Hit struct {
	Attacker      *donburi.Entry
	Defender      *donburi.Entry
	BaseDamage    float64
	BaseKnockback float64
	Hitstun       time.Duration
	// Direction points from attacker to defender. A zero X component means the
	// horizontal direction is unknown.
	Direction  dmath.Vec2
	Parryable  bool
	ComboIndex int
	// At is when the swing went active. Zero means the current tick.
	At time.Duration
}

// Damageable is anything a hit can land on.
type Damageable interface {
	Invulnerable() bool
	// Guard reports how the hit would be defended without changing anything.
	Guard(h Hit) components.Guard
	ApplyHit(h Hit, g components.Guard) Outcome
	Position() dmath.Vec2
}

// Parryable is an attacker that reacts to being parried.
type Parryable interface {
	OnParried(source dmath.Vec2)
}

// Resolve applies h to its defender and returns the outcome. Self hits, team
// hits and hits on dead or invulnerable actors miss.
func Resolve(h Hit) Outcome {
	if !valid(h.Attacker) || !valid(h.Defender) || h.Attacker.Entity() == h.Defender.Entity() {
		return OutcomeMiss
	}
	if components.Actor.Get(h.Attacker).SameTeam(components.Actor.Get(h.Defender)) || IsDead(h.Defender) {
		return OutcomeMiss
	}
	out := ResolveAgainst(Rig{h.Defender}, Rig{h.Attacker}, h)
	logger(h.Defender.World).Debug("hit resolved",
		zap.String("attacker", components.Actor.Get(h.Attacker).Name),
		zap.String("defender", components.Actor.Get(h.Defender).Name),
		zap.Stringer("outcome", out))
	return out
}

// ResolveAgainst runs the resolution rules over capability interfaces. The
// defense is evaluated before any state is mutated.
func ResolveAgainst(def Damageable, atk Parryable, h Hit) Outcome {
	if def.Invulnerable() {
		return OutcomeMiss
	}
	g := def.Guard(h)
	out := def.ApplyHit(h, g)
	if out == OutcomeParry && atk != nil {
		atk.OnParried(def.Position())
	}
	return out
}

// Rig adapts an actor entry to Damageable and Parryable.
type Rig struct {
	e *donburi.Entry
}

func (r Rig) Invulnerable() bool {
	return components.Resources.Get(r.e).Invulnerable(Now(r.e.World))
}

func (r Rig) Position() dmath.Vec2 {
	obj := components.Object.Get(r.e)
	return dmath.Vec2{X: obj.CenterX(), Y: obj.CenterY()}
}

func (r Rig) Guard(h Hit) components.Guard {
	actor := components.Actor.Get(r.e)
	toAttacker := dmath.Vec2{X: -h.Direction.X, Y: -h.Direction.Y}
	if h.Direction.X == 0 && h.Direction.Y == 0 {
		// Overlapping bodies count as a frontal hit.
		toAttacker = actor.Facing
	}
	return components.Defense.Get(r.e).Evaluate(hitTime(r.e, h), actor.Facing, toAttacker, h.Parryable)
}

// hitTime is when h landed, never later than the current tick.
func hitTime(e *donburi.Entry, h Hit) time.Duration {
	now := Now(e.World)
	if h.At <= 0 || h.At > now {
		return now
	}
	return h.At
}

func (r Rig) ApplyHit(h Hit, g components.Guard) Outcome {
	e := r.e
	now := Now(e.World)
	taken := components.Stats.Get(e).DamageTaken

	switch g {
	case components.GuardParry:
		d := components.Defense.Get(e)
		EnterParryLock(e, d.BlockPressedAt+d.ParryWindow+cfg.Combat.ParryPostHold-now)
		components.Resources.Get(e).ExtendInvuln(now, cfg.Combat.ParryInvuln)
		if components.Stats.Get(e).Profile.CanCounter {
			ArmCounter(e, h.ComboIndex, cfg.Combat.CounterWindow)
		}
		cue(e, cfg.GuardImpact.String())
		Publish(e.World, NotifyParry, e.Entity(), h.Attacker.Entity(), 0)
		return OutcomeParry

	case components.GuardBlock:
		dmg := h.BaseDamage * cfg.Combat.BlockDamageMul * taken
		ApplyDamage(e, dmg)
		Publish(e.World, NotifyBlock, h.Attacker.Entity(), e.Entity(), dmg)
		if IsDead(e) {
			return OutcomeBlock
		}
		AddStamina(e, -h.BaseDamage*cfg.Combat.BlockStaminaMul)
		BlockRegenFor(e, cfg.Combat.BlockRegenDelay)
		applyKnockback(e, h, h.BaseKnockback*cfg.Combat.BlockKnockMul)
		if !IsBroken(e) {
			hitstun(e, scaleDuration(h.Hitstun, cfg.Combat.BlockHitstunMul), cfg.GuardImpact.String())
		}
		return OutcomeBlock
	}

	dmg := h.BaseDamage * taken
	ApplyDamage(e, dmg)
	Publish(e.World, NotifyHit, h.Attacker.Entity(), e.Entity(), dmg)
	if IsDead(e) {
		return OutcomeHit
	}
	Interrupt(e)
	applyKnockback(e, h, h.BaseKnockback)
	hitstun(e, h.Hitstun, cfg.Hit.String())
	return OutcomeHit
}

// OnParried staggers the attacker and pushes it away from the parrying actor.
func (r Rig) OnParried(source dmath.Vec2) {
	e := r.e
	Interrupt(e)

	obj := components.Object.Get(e)
	sign := obj.CenterX() - source.X
	if sign == 0 {
		sign = -components.Actor.Get(e).LastFacingX
	}
	if sign == 0 {
		sign = 1
	}
	components.Physics.Get(e).SpeedX = math.Copysign(cfg.Combat.ParryPushback, sign)
	hitstun(e, cfg.Combat.ParryPostHold, cfg.Stunned.String())
	Publish(e.World, NotifyParried, e.Entity(), donburi.Null, 0)
}

// KnockbackSign picks the horizontal push direction. When the attacker to
// defender axis is degenerate the defender is pushed opposite its last facing.
func KnockbackSign(dirX, lastFacingX float64) float64 {
	if sign := gamemath.Sign(dirX, 1e-9); sign != 0 {
		return sign
	}
	if sign := gamemath.Sign(lastFacingX, 0); sign != 0 {
		return -sign
	}
	return 1
}

func applyKnockback(e *donburi.Entry, h Hit, magnitude float64) {
	if magnitude <= 0 {
		return
	}
	sign := KnockbackSign(h.Direction.X, components.Actor.Get(e).LastFacingX)
	p := components.Physics.Get(e)
	p.SpeedX = sign * magnitude
	if cfg.Combat.KnockbackUpwardForce != 0 {
		p.SpeedY = cfg.Combat.KnockbackUpwardForce
		p.OnGround = false
	}
}

// hitstun plays the reaction cue and locks input movement for d. Velocity is
// left alone so knockback carries.
func hitstun(e *donburi.Entry, d time.Duration, cueName string) {
	cue(e, cueName)
	if d <= 0 {
		return
	}
	AcquireLockFor(e, components.LockHitstun, d, false, false)
}

func scaleDuration(d time.Duration, mul float64) time.Duration {
	return time.Duration(float64(d) * mul)
}
