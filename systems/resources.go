package systems

import (
	"math"
	"time"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// IsDead reports whether the actor's death latch is set.
func IsDead(e *donburi.Entry) bool {
	return valid(e) && components.Death.Get(e).Dead
}

// IsBroken reports whether the actor's guard is broken.
func IsBroken(e *donburi.Entry) bool {
	return valid(e) && components.Resources.Get(e).Broken
}

// ApplyDamage removes health, clamped at zero. The hit that takes health to
// zero kills the actor; later damage does nothing until a revive.
func ApplyDamage(e *donburi.Entry, amount float64) {
	if !valid(e) || amount <= 0 || IsDead(e) {
		return
	}
	r := components.Resources.Get(e)
	r.Health = math.Max(0, math.Min(r.MaxHealth, r.Health-amount))
	if r.Health == 0 {
		kill(e)
	}
}

// Heal restores health up to max. Dead actors need a revive instead.
func Heal(e *donburi.Entry, amount float64) {
	if !valid(e) || amount <= 0 || IsDead(e) {
		return
	}
	r := components.Resources.Get(e)
	r.Health = math.Min(r.MaxHealth, r.Health+amount)
}

// AddStamina changes stamina within [0, max]. Running dry while blocking
// always breaks the guard.
func AddStamina(e *donburi.Entry, delta float64) {
	if !valid(e) || delta == 0 {
		return
	}
	r := components.Resources.Get(e)
	r.Stamina = math.Max(0, math.Min(r.MaxStamina, r.Stamina+delta))
	if delta < 0 && r.Stamina == 0 && components.Defense.Get(e).IsBlocking {
		TriggerBreak(e)
	}
}

// BlockRegenFor suspends stamina regeneration for at least d from now. It
// never shortens an existing block.
func BlockRegenFor(e *donburi.Entry, d time.Duration) {
	if !valid(e) {
		return
	}
	r := components.Resources.Get(e)
	if until := Now(e.World) + d + cfg.Combat.RegenResumeDelay; until > r.RegenBlockedUntil {
		r.RegenBlockedUntil = until
	}
}

// TriggerBreak breaks the actor's guard: block drops, any attack is
// interrupted and movement locks until the break wears off by itself.
func TriggerBreak(e *donburi.Entry) {
	if !valid(e) || IsDead(e) {
		return
	}
	r := components.Resources.Get(e)
	if r.Broken {
		return
	}
	now := Now(e.World)
	r.Broken = true
	r.BrokenUntil = now + cfg.Combat.BreakDuration

	forceBlockOff(e)
	Interrupt(e)
	AcquireLock(e, components.LockBreak, false, true)

	cue(e, cfg.GuardBreak.String())
	Publish(e.World, NotifyGuardBreak, e.Entity(), donburi.Null, 0)
	logger(e.World).Info("guard broken", actorField(e), zap.Duration("until", r.BrokenUntil))
}

func kill(e *donburi.Entry) {
	now := Now(e.World)
	death := components.Death.Get(e)
	death.Dead = true
	death.At = now
	death.RemoveAt = 0
	if components.Actor.Get(e).RemoveOnDeath {
		death.RemoveAt = now + cfg.Combat.CorpseDuration
	}

	components.Resources.Get(e).ExtendInvuln(now, cfg.Combat.DeathInvuln)
	forceBlockOff(e)
	Interrupt(e)
	cancelSkill(e)
	AcquireLock(e, components.LockDead, true, true)

	cue(e, cfg.Die.String())
	Publish(e.World, NotifyDeath, e.Entity(), donburi.Null, 0)
	logger(e.World).Info("actor died", actorField(e))
}

// Revive brings a dead actor back with fraction of its max health and full stamina.
func Revive(e *donburi.Entry, fraction float64) {
	if !IsDead(e) {
		return
	}
	death := components.Death.Get(e)
	death.Dead = false
	death.RemoveAt = 0

	r := components.Resources.Get(e)
	r.Health = math.Max(1, math.Min(r.MaxHealth, fraction*r.MaxHealth))
	r.Stamina = r.MaxStamina
	r.Broken = false
	r.InvulnUntil = 0

	ReleaseLock(e, components.LockBreak)
	ReleaseLock(e, components.LockDead)

	cue(e, cfg.CueRevive)
	Publish(e.World, NotifyRevive, e.Entity(), donburi.Null, r.Health)
	logger(e.World).Info("actor revived", actorField(e), zap.Float64("health", r.Health))
}

// UpdateResources regenerates stamina and ends guard breaks.
func UpdateResources(ecs *ecs.ECS) {
	now := Now(ecs.World)
	dt := frameDelta(ecs.World)
	components.Resources.Each(ecs.World, func(e *donburi.Entry) {
		r := components.Resources.Get(e)
		if components.Death.Get(e).Dead {
			return
		}

		if r.Broken && now >= r.BrokenUntil {
			r.Broken = false
			r.Stamina = math.Max(r.Stamina, cfg.Combat.BreakRecoveryStamina*r.MaxStamina)
			ReleaseLock(e, components.LockBreak)
			logger(ecs.World).Debug("guard recovered", actorField(e))
		}

		if r.Broken || components.Defense.Get(e).IsBlocking || now < r.RegenBlockedUntil {
			return
		}
		r.Stamina = math.Min(r.MaxStamina, r.Stamina+r.RegenRate*dt.Seconds())
	})
}
