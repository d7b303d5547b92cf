package systems

import (
	"sort"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// UpdateCommands dispatches every queued command whose timestamp has been
// reached, oldest first. Later commands wait for their tick.
func UpdateCommands(ecs *ecs.ECS) {
	now := Now(ecs.World)
	components.Commands.Each(ecs.World, func(e *donburi.Entry) {
		c := components.Commands.Get(e)
		if len(c.Pending) == 0 {
			return
		}
		sort.SliceStable(c.Pending, func(i, j int) bool { return c.Pending[i].At < c.Pending[j].At })

		due := 0
		for due < len(c.Pending) && c.Pending[due].At <= now {
			due++
		}
		if due == 0 {
			return
		}
		ready := make([]components.Command, due)
		copy(ready, c.Pending[:due])
		c.Pending = append(c.Pending[:0], c.Pending[due:]...)

		for _, cmd := range ready {
			Dispatch(e, cmd)
		}
	})
}

// Dispatch applies one command edge to the actor. Commands stamped in the
// past act at their own timestamp.
func Dispatch(e *donburi.Entry, cmd components.Command) {
	if !valid(e) || cmd.Action <= cfg.ActionNone || cmd.Action >= cfg.ActionCount {
		return
	}
	at := cmd.At
	if now := Now(e.World); at > now || at < 0 {
		at = now
	}

	c := components.Commands.Get(e)
	c.Held[cmd.Action] = cmd.Pressed
	logger(e.World).Debug("command", actorField(e),
		zap.Stringer("action", cmd.Action), zap.Bool("pressed", cmd.Pressed), zap.Duration("at", at))

	switch cmd.Action {
	case cfg.ActionMoveLeft, cfg.ActionMoveRight:
		steer(e, c)
	case cfg.ActionAttack:
		if cmd.Pressed {
			attackPressedAt(e, at)
		}
	case cfg.ActionBlock:
		if cmd.Pressed {
			blockPressedAt(e, at)
		} else {
			BlockReleased(e)
		}
	case cfg.ActionCharge:
		if cmd.Pressed {
			chargePressedAt(e, at)
		} else {
			chargeReleasedAt(e, at)
		}
	default:
		if slot, ok := cmd.Action.SkillSlot(); ok && cmd.Pressed {
			SkillPressed(e, slot)
		}
	}
}

// steer turns held movement buttons into movement intent. The actor turns
// on the press unless it is locked.
func steer(e *donburi.Entry, c *components.CommandsData) {
	move := 0.0
	if c.Held[cfg.ActionMoveRight] {
		move++
	}
	if c.Held[cfg.ActionMoveLeft] {
		move--
	}
	components.Physics.Get(e).MoveX = move
	if !IsLocked(e) && !IsDead(e) {
		components.Actor.Get(e).SetFacingX(move)
	}
}
