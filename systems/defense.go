package systems

import (
	"time"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// BlockPressed raises the guard at the current time.
func BlockPressed(e *donburi.Entry) {
	if !valid(e) {
		return
	}
	blockPressedAt(e, Now(e.World))
}

func blockPressedAt(e *donburi.Entry, at time.Duration) {
	advanceAttack(e, at)
	d := components.Defense.Get(e)
	d.BlockHeld = true
	if d.State != components.DefenseIdle {
		return
	}
	if !CanAct(e) {
		logger(e.World).Debug("block rejected", actorField(e))
		return
	}

	a := components.Attack.Get(e)
	if a.Acting() {
		if !a.InCancellableTail(at) {
			logger(e.World).Debug("block rejected: attacking", actorField(e), zap.Stringer("phase", a.Phase))
			return
		}
		endAttack(e, at)
	}

	d.State = components.DefenseBlocking
	d.IsBlocking = true
	d.BlockPressedAt = at
	AcquireLock(e, components.LockBlock, false, true)

	cueBool(e, cfg.CueIsBlocking, true)
	cue(e, cfg.Guard.String())
}

// BlockReleased lowers the guard. A release while parry locked is applied
// when the forced block ends.
func BlockReleased(e *donburi.Entry) {
	if !valid(e) {
		return
	}
	d := components.Defense.Get(e)
	d.BlockHeld = false
	if d.State == components.DefenseBlocking {
		lowerBlock(e)
	}
}

// EnterParryLock holds the guard up for duration regardless of input and
// hard-freezes the actor.
func EnterParryLock(e *donburi.Entry, duration time.Duration) {
	if !valid(e) {
		return
	}
	d := components.Defense.Get(e)
	d.State = components.DefenseParryLocked
	d.IsBlocking = true
	if until := Now(e.World) + duration; until > d.ForcedBlockUntil {
		d.ForcedBlockUntil = until
	}
	AcquireLock(e, components.LockParry, true, true)
}

func lowerBlock(e *donburi.Entry) {
	d := components.Defense.Get(e)
	d.State = components.DefenseIdle
	d.IsBlocking = false
	ReleaseLock(e, components.LockBlock)
	cueBool(e, cfg.CueIsBlocking, false)
}

// forceBlockOff drops the guard from any state, including a parry lock.
func forceBlockOff(e *donburi.Entry) {
	d := components.Defense.Get(e)
	d.ForcedBlockUntil = 0
	ReleaseLock(e, components.LockParry)
	if d.State != components.DefenseIdle {
		lowerBlock(e)
	}
}

func exitParryLock(e *donburi.Entry) {
	d := components.Defense.Get(e)
	d.ForcedBlockUntil = 0
	ReleaseLock(e, components.LockParry)
	if d.BlockHeld {
		d.State = components.DefenseBlocking
		return
	}
	lowerBlock(e)
}

// UpdateDefense ends parry locks whose forced block has run out.
func UpdateDefense(ecs *ecs.ECS) {
	now := Now(ecs.World)
	components.Defense.Each(ecs.World, func(e *donburi.Entry) {
		d := components.Defense.Get(e)
		if d.State == components.DefenseParryLocked && now >= d.ForcedBlockUntil {
			exitParryLock(e)
		}
	})
}
