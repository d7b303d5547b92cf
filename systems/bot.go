package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateBots asks each AI decider for commands once its reaction delay has
// passed. Commands go through the same queue as remote input. Must run before
// UpdateCommands.
func UpdateBots(ecs *ecs.ECS) {
	now := Now(ecs.World)
	components.Bot.Each(ecs.World, func(e *donburi.Entry) {
		bot := components.Bot.Get(e)
		if bot.Decider == nil || now < bot.NextThinkAt || !valid(e) || IsDead(e) {
			return
		}
		bot.NextThinkAt = now + cfg.Bot.Difficulties[bot.Difficulty].ReactionDelay

		c := components.Commands.Get(e)
		for _, cmd := range bot.Decider.Decide(e, now) {
			if cmd.At < now {
				cmd.At = now
			}
			c.Push(cmd)
		}
	})
}

type botState int

const (
	botIdle botState = iota
	botChase
	botAttack
	botRetreat
)

// RangeBot chases the nearest enemy, attacks in range and guards against
// swings when its health is low.
type RangeBot struct {
	Tuning cfg.BotDifficultyConfig
	state  botState
	// Random number generator for attack hesitation. Fixed seed keeps
	// replays deterministic.
	rng *rand.Rand
}

// NewRangeBot returns a decider tuned for difficulty.
func NewRangeBot(difficulty cfg.BotDifficulty) *RangeBot {
	return &RangeBot{
		Tuning: cfg.Bot.Difficulties[difficulty],
		rng:    rand.New(rand.NewSource(42)),
	}
}

func (b *RangeBot) Decide(self *donburi.Entry, now time.Duration) []components.Command {
	target, dx := nearestEnemy(self)
	if target == nil {
		b.state = botIdle
		return stopMoving(now)
	}

	dist := math.Abs(dx)
	health := components.Resources.Get(self).HealthFraction()
	switch {
	case health < b.Tuning.RetreatThreshold:
		b.state = botRetreat
	case dist <= b.Tuning.AttackRange:
		b.state = botAttack
	case dist <= b.Tuning.ChaseRange:
		b.state = botChase
	default:
		b.state = botIdle
	}

	switch b.state {
	case botChase:
		return moveToward(dx, now)
	case botAttack:
		cmds := append(moveToward(dx, now), stopMoving(now)...)
		if components.Attack.Get(target).Swinging() && b.rng.Float64() < 0.5 {
			return append(cmds, guard(now, b.Tuning.BlockHold)...)
		}
		return append(cmds, components.Command{Action: cfg.ActionAttack, Pressed: true, At: now})
	case botRetreat:
		if dist <= b.Tuning.AttackRange && components.Attack.Get(target).Swinging() {
			return append(append(moveToward(dx, now), stopMoving(now)...), guard(now, b.Tuning.BlockHold)...)
		}
		return moveToward(-dx, now)
	}
	return stopMoving(now)
}

func nearestEnemy(self *donburi.Entry) (*donburi.Entry, float64) {
	me := components.Actor.Get(self)
	obj := components.Object.Get(self)
	var best *donburi.Entry
	bestDx := math.Inf(1)
	tags.Actor.Each(self.World, func(other *donburi.Entry) {
		if other.Entity() == self.Entity() || IsDead(other) || me.SameTeam(components.Actor.Get(other)) {
			return
		}
		dx := components.Object.Get(other).CenterX() - obj.CenterX()
		if math.Abs(dx) < math.Abs(bestDx) {
			best, bestDx = other, dx
		}
	})
	return best, bestDx
}

func moveToward(dx float64, now time.Duration) []components.Command {
	press, release := cfg.ActionMoveRight, cfg.ActionMoveLeft
	if dx < 0 {
		press, release = release, press
	}
	return []components.Command{
		{Action: release, Pressed: false, At: now},
		{Action: press, Pressed: true, At: now},
	}
}

func stopMoving(now time.Duration) []components.Command {
	return []components.Command{
		{Action: cfg.ActionMoveLeft, Pressed: false, At: now},
		{Action: cfg.ActionMoveRight, Pressed: false, At: now},
	}
}

func guard(now, hold time.Duration) []components.Command {
	return []components.Command{
		{Action: cfg.ActionBlock, Pressed: true, At: now},
		{Action: cfg.ActionBlock, Pressed: false, At: now + hold},
	}
}
