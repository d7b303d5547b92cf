package systems

import (
	"math"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// SkillPressed starts casting the skill in slot (0-based). The whole cast is
// covered by an action lock.
func SkillPressed(e *donburi.Entry, slot int) {
	if !valid(e) {
		return
	}
	skills := profileOf(e).Skills
	if slot < 0 || slot >= len(skills) {
		return
	}
	skill := skills[slot]
	if !CanAct(e) || components.Attack.Get(e).Acting() || components.Defense.Get(e).IsBlocking {
		logger(e.World).Debug("skill rejected", actorField(e), zap.String("skill", skill.Name))
		return
	}
	if components.Resources.Get(e).Stamina < skill.StaminaCost {
		logger(e.World).Debug("skill rejected: stamina", actorField(e), zap.String("skill", skill.Name))
		return
	}

	if skill.StaminaCost > 0 {
		AddStamina(e, -skill.StaminaCost)
		BlockRegenFor(e, cfg.Combat.AttackRegenDelay)
	}
	StartActionLock(e, skill.CastTime)
	AcquireLock(e, components.LockSkill, false, true)

	cast := components.SkillCast.Get(e)
	cast.Active = true
	cast.Slot = slot
	cast.Skill = skill
	cast.EndsAt = Now(e.World) + skill.CastTime

	cue(e, skill.Cue)
	logger(e.World).Debug("skill started", actorField(e), zap.String("skill", skill.Name))
}

// cancelSkill drops a cast without applying it. The action lock runs out on
// its own.
func cancelSkill(e *donburi.Entry) {
	cast := components.SkillCast.Get(e)
	if !cast.Active {
		return
	}
	cast.Active = false
	ReleaseLock(e, components.LockSkill)
}

// UpdateSkills applies casts whose cast time has elapsed.
func UpdateSkills(ecs *ecs.ECS) {
	now := Now(ecs.World)
	components.SkillCast.Each(ecs.World, func(e *donburi.Entry) {
		cast := components.SkillCast.Get(e)
		if !cast.Active || now < cast.EndsAt || !valid(e) {
			return
		}
		cast.Active = false
		ReleaseLock(e, components.LockSkill)
		completeSkill(e, cast.Skill)
	})
}

func completeSkill(e *donburi.Entry, skill cfg.Skill) {
	var target donburi.Entity
	amount := skill.Amount

	switch skill.Kind {
	case cfg.SkillHeal:
		Heal(e, skill.Amount)
		target = e.Entity()
	case cfg.SkillRevive:
		ally := nearestDeadAlly(e, skill.Radius)
		if ally == nil {
			logger(e.World).Debug("revive found no ally", actorField(e))
			return
		}
		fraction := cfg.Combat.ReviveHealth
		if skill.Amount > 0 {
			fraction = skill.Amount
		}
		Revive(ally, fraction)
		target = ally.Entity()
		amount = components.Resources.Get(ally).Health
	}

	Publish(e.World, NotifySkill, e.Entity(), target, amount)
	logger(e.World).Info("skill completed", actorField(e), zap.String("skill", skill.Name))
}

func nearestDeadAlly(e *donburi.Entry, radius float64) *donburi.Entry {
	self := components.Actor.Get(e)
	obj := components.Object.Get(e)
	var best *donburi.Entry
	bestDist := math.Inf(1)
	tags.Actor.Each(e.World, func(other *donburi.Entry) {
		if other.Entity() == e.Entity() || !IsDead(other) || !self.SameTeam(components.Actor.Get(other)) {
			return
		}
		o := components.Object.Get(other)
		d := math.Hypot(o.CenterX()-obj.CenterX(), o.CenterY()-obj.CenterY())
		if d <= radius && d < bestDist {
			best, bestDist = other, d
		}
	})
	return best
}
