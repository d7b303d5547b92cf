package systems

import (
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateStates derives each actor's presentation state from its rig.
func UpdateStates(ecs *ecs.ECS) {
	now := Now(ecs.World)
	components.State.Each(ecs.World, func(e *donburi.Entry) {
		if !valid(e) {
			return
		}
		state := components.State.Get(e)
		next := deriveState(e)
		if next == state.CurrentState {
			return
		}
		state.PreviousState = state.CurrentState
		state.CurrentState = next
		state.EnteredAt = now
	})
}

func deriveState(e *donburi.Entry) cfg.StateID {
	if IsDead(e) {
		return cfg.Die
	}
	if IsBroken(e) {
		return cfg.GuardBreak
	}
	if components.Defense.Get(e).State == components.DefenseParryLocked {
		return cfg.GuardImpact
	}
	if hitstunned(e) {
		if components.Defense.Get(e).IsBlocking {
			return cfg.GuardImpact
		}
		return cfg.Hit
	}
	switch components.Attack.Get(e).Phase {
	case components.AttackCharging:
		return cfg.ChargeUp
	case components.AttackWindup:
		return cfg.Windup
	case components.AttackActive:
		return cfg.Attacking
	case components.AttackRecovery:
		return cfg.Recovering
	}
	if components.SkillCast.Get(e).Active {
		return cfg.Casting
	}
	if components.Defense.Get(e).IsBlocking {
		return cfg.Guard
	}
	if components.Physics.Get(e).SpeedX != 0 {
		return cfg.Walk
	}
	return cfg.Idle
}
