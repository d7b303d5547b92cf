package systems

import (
	"math"
	"sort"
	"time"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
	"go.uber.org/zap"
)

// AttackPressed starts, buffers or chains a combo swing, or spends an open
// counter window.
func AttackPressed(e *donburi.Entry) {
	if !valid(e) {
		return
	}
	attackPressedAt(e, Now(e.World))
}

func attackPressedAt(e *donburi.Entry, at time.Duration) {
	advanceAttack(e, at)
	if tryCounter(e, at) {
		return
	}

	a := components.Attack.Get(e)
	switch a.Phase {
	case components.AttackIdle:
		startCombo(e, at)
	case components.AttackWindup, components.AttackActive:
		bufferNext(e)
	case components.AttackRecovery:
		if a.InCancellableTail(at) && canChain(e) {
			chain(e, at)
			return
		}
		bufferNext(e)
	}
}

func startCombo(e *donburi.Entry, at time.Duration) {
	a := components.Attack.Get(e)
	combo := profileOf(e).Combo
	if len(combo) == 0 {
		return
	}

	idx := a.ResumeStep
	if at-a.LastEndedAt > cfg.Combat.ComboMaxGap || idx >= len(combo) {
		idx = 0
	}
	if !canStartAttack(e, combo[idx]) {
		logger(e.World).Debug("attack rejected", actorField(e))
		return
	}
	startStep(e, components.VariantCombo, combo[idx], idx, at, combo[idx].Cue)
}

// bufferNext remembers one follow-up press. Presses that could never chain
// are dropped.
func bufferNext(e *donburi.Entry) {
	a := components.Attack.Get(e)
	if a.Variant != components.VariantCombo || a.ComboStep+1 >= len(profileOf(e).Combo) {
		return
	}
	a.BufferedNext = true
}

func canChain(e *donburi.Entry) bool {
	a := components.Attack.Get(e)
	combo := profileOf(e).Combo
	next := a.ComboStep + 1
	if a.Variant != components.VariantCombo || next >= len(combo) {
		return false
	}
	if IsDead(e) || IsBroken(e) || components.ActionLock.Get(e).Active(Now(e.World)) {
		return false
	}
	return components.Resources.Get(e).Stamina >= combo[next].StaminaCost
}

func chain(e *donburi.Entry, at time.Duration) {
	a := components.Attack.Get(e)
	next := a.ComboStep + 1
	step := profileOf(e).Combo[next]
	startStep(e, components.VariantCombo, step, next, at, step.Cue)
}

// resumeStep is the combo step after the finished swing, or 0 once the chain
// is spent.
func resumeStep(e *donburi.Entry) int {
	a := components.Attack.Get(e)
	if a.Variant != components.VariantCombo || a.ComboStep+1 >= len(profileOf(e).Combo) {
		return 0
	}
	return a.ComboStep + 1
}

// canStartAttack checks everything that can reject a fresh attack.
func canStartAttack(e *donburi.Entry, step cfg.AttackStep) bool {
	if !CanAct(e) || components.Defense.Get(e).IsBlocking {
		return false
	}
	return components.Resources.Get(e).Stamina >= step.StaminaCost
}

// startStep commits to a swing at time at. The attack lock covers the whole
// precomputed swing.
func startStep(e *donburi.Entry, variant components.AttackVariant, step cfg.AttackStep, idx int, at time.Duration, cueName string) {
	a := components.Attack.Get(e)
	a.Phase = components.AttackWindup
	a.Variant = variant
	a.Step = step
	a.ComboStep = idx
	a.BufferedNext = false
	a.StartedAt = at
	a.PhaseEndsAt = at + step.Windup
	a.TailEndsAt = 0
	a.PowerMul = 1

	if step.StaminaCost > 0 {
		AddStamina(e, -step.StaminaCost)
		BlockRegenFor(e, cfg.Combat.AttackRegenDelay)
	}
	components.Locks.Get(e).AcquireUntil(components.Physics.Get(e), components.LockAttack, at+step.Total(), false, true)

	cue(e, cueName)
	logger(e.World).Debug("attack started", actorField(e),
		zap.String("step", step.Name), zap.Int("combo", idx), zap.Duration("at", at))
}

// endAttack returns the attack machine to idle and releases its locks. It is
// the one cleanup path for finished, cancelled and interrupted attacks.
func endAttack(e *donburi.Entry, at time.Duration) {
	a := components.Attack.Get(e)
	wasCharging := a.Phase == components.AttackCharging
	a.Phase = components.AttackIdle
	a.ComboStep = 0
	a.ResumeStep = 0
	a.BufferedNext = false
	a.LastEndedAt = at
	a.PowerMul = 1

	ReleaseLock(e, components.LockAttack)
	ReleaseLock(e, components.LockCharge)
	if wasCharging {
		cueBool(e, cfg.CueIsCharging, false)
	}
}

// Interrupt stops whatever the actor is doing: velocity is zeroed, any attack
// or charge is dropped with its locks and the combo resets. Safe from any phase.
func Interrupt(e *donburi.Entry) {
	if !valid(e) {
		return
	}
	components.Physics.Get(e).Stop()
	a := components.Attack.Get(e)
	if a.Acting() {
		endAttack(e, Now(e.World))
	}
	a.ComboStep = 0
	a.ResumeStep = 0
	a.BufferedNext = false
	cancelSkill(e)
}

// advanceAttack runs the phase machine up to now. Each transition happens at
// its deadline, so a long frame walks through several phases in order.
func advanceAttack(e *donburi.Entry, now time.Duration) {
	a := components.Attack.Get(e)
	for {
		switch a.Phase {
		case components.AttackCharging:
			if now-a.ChargeStartedAt < cfg.Combat.ChargeMaxHold {
				return
			}
			fireCharge(e, cfg.Combat.ChargeMaxHold, a.ChargeStartedAt+cfg.Combat.ChargeMaxHold)

		case components.AttackWindup:
			if now < a.PhaseEndsAt {
				return
			}
			at := a.PhaseEndsAt
			a.Phase = components.AttackActive
			a.PhaseEndsAt = at + a.Step.Active
			queryHitbox(e, at)

		case components.AttackActive:
			if now < a.PhaseEndsAt {
				return
			}
			at := a.PhaseEndsAt
			a.Phase = components.AttackRecovery
			a.PhaseEndsAt = at + a.Step.MinRecovery
			a.TailEndsAt = a.PhaseEndsAt + a.Step.RecoveryTail

		case components.AttackRecovery:
			if now < a.PhaseEndsAt {
				return
			}
			if a.BufferedNext {
				a.BufferedNext = false
				if canChain(e) {
					chain(e, a.PhaseEndsAt)
					continue
				}
			}
			if now < a.TailEndsAt {
				return
			}
			resume := resumeStep(e)
			endAttack(e, a.TailEndsAt)
			a.ResumeStep = resume

		default:
			return
		}
	}
}

// queryHitbox runs the swing's single overlap test and resolves every target.
// Damage and knockback are read from the attacker's stats now; guards are
// judged at at, when the swing went active.
func queryHitbox(e *donburi.Entry, at time.Duration) {
	a := components.Attack.Get(e)
	stats := components.Stats.Get(e)
	p := &stats.Profile
	a.Damage = p.BaseDamage * a.Step.DamageMul * stats.AttackPower * a.PowerMul
	a.Knockback = p.BaseKnockback * a.Step.KnockbackMul * a.PowerMul
	a.Range = a.Step.Range
	a.Radius = a.Step.Radius
	a.HitboxQueries++

	targets := overlapTargets(e)
	if len(targets) == 0 {
		return
	}

	self := components.Object.Get(e)
	connected := 0
	for _, target := range targets {
		if a.Phase != components.AttackActive {
			// Parried by an earlier target.
			break
		}
		obj := components.Object.Get(target)
		out := Resolve(Hit{
			Attacker:      e,
			Defender:      target,
			BaseDamage:    a.Damage,
			BaseKnockback: a.Knockback,
			Hitstun:       a.Step.Hitstun,
			Direction:     direction(self.CenterX(), self.CenterY(), obj.CenterX(), obj.CenterY()),
			Parryable:     a.Step.Parryable,
			ComboIndex:    a.ComboStep,
			At:            at,
		})
		if out != OutcomeMiss {
			connected++
		}
	}
	a.TargetsHit += connected
	if connected > 0 {
		Publish(e.World, NotifySwing, e.Entity(), donburi.Null, float64(connected))
	}
}

// overlapTargets places the attacker's hitbox in front of it and returns the
// actors it overlaps, ordered by entity and capped at Combat.MaxHitTargets.
func overlapTargets(e *donburi.Entry) []*donburi.Entry {
	a := components.Attack.Get(e)
	a.Targets = a.Targets[:0]
	sp := space(e.World)
	if sp == nil || a.Range <= 0 {
		return a.Targets
	}

	self := components.Object.Get(e)
	facing := components.Actor.Get(e).Facing.X
	if facing == 0 {
		facing = 1
	}
	x := self.CenterX() + self.W/2 + a.Step.OffsetX
	if facing < 0 {
		x = self.CenterX() - self.W/2 - a.Step.OffsetX - a.Range
	}
	y := self.CenterY() - a.Radius
	h := math.Max(1, a.Radius*2)

	if a.Hitbox == nil {
		a.Hitbox = resolv.NewObject(x, y, a.Range, h, tags.ResolvHitbox)
	}
	hb := a.Hitbox
	hb.X, hb.Y, hb.W, hb.H = x, y, a.Range, h
	sp.Add(hb)
	defer sp.Remove(hb)

	check := hb.Check(0, 0, tags.ResolvActor)
	if check == nil {
		return a.Targets
	}
	for _, o := range check.ObjectsByTags(tags.ResolvActor) {
		target, ok := o.Data.(*donburi.Entry)
		if !ok || !valid(target) || target.Entity() == e.Entity() || !overlaps(hb, o) {
			continue
		}
		if containsEntry(a.Targets, target) {
			continue
		}
		a.Targets = append(a.Targets, target)
	}
	sort.Slice(a.Targets, func(i, j int) bool { return a.Targets[i].Entity() < a.Targets[j].Entity() })
	if limit := cfg.Combat.MaxHitTargets; limit > 0 && len(a.Targets) > limit {
		a.Targets = a.Targets[:limit]
	}
	return a.Targets
}

// overlaps is the narrow phase; resolv's Check only compares cells.
func overlaps(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func containsEntry(list []*donburi.Entry, e *donburi.Entry) bool {
	for _, x := range list {
		if x.Entity() == e.Entity() {
			return true
		}
	}
	return false
}

// direction returns the unit vector from (ax, ay) to (bx, by), or zero when
// the points coincide.
func direction(ax, ay, bx, by float64) dmath.Vec2 {
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		return dmath.Vec2{}
	}
	return dmath.Vec2{X: dx / l, Y: dy / l}
}

func profileOf(e *donburi.Entry) *cfg.ActorProfile {
	return &components.Stats.Get(e).Profile
}

// UpdateAttacks advances every attack and charge and closes stale counter windows.
func UpdateAttacks(ecs *ecs.ECS) {
	now := Now(ecs.World)
	components.Attack.Each(ecs.World, func(e *donburi.Entry) {
		if !valid(e) {
			return
		}
		advanceAttack(e, now)

		c := components.CounterWindow.Get(e)
		if c.Armed && !c.Open(now) {
			c.Armed = false
		}
	})
}
