package systems

import (
	"time"

	"github.com/automoto/doomerang-combat/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// AcquireLock takes a movement lock key on the actor.
func AcquireLock(e *donburi.Entry, key string, hardFreeze, zeroVelocity bool) {
	if !valid(e) {
		return
	}
	components.Locks.Get(e).Acquire(components.Physics.Get(e), key, hardFreeze, zeroVelocity)
}

// AcquireLockFor takes a key that releases itself after d.
func AcquireLockFor(e *donburi.Entry, key string, d time.Duration, hardFreeze, zeroVelocity bool) {
	if !valid(e) {
		return
	}
	until := Now(e.World) + d
	components.Locks.Get(e).AcquireUntil(components.Physics.Get(e), key, until, hardFreeze, zeroVelocity)
}

// ReleaseLock drops a key. Releasing the last key restores the actor's physics constraints.
func ReleaseLock(e *donburi.Entry, key string) {
	if !valid(e) {
		return
	}
	components.Locks.Get(e).Release(components.Physics.Get(e), key)
}

// IsLocked reports whether the actor's input-driven movement is locked.
func IsLocked(e *donburi.Entry) bool {
	if !valid(e) {
		return false
	}
	return components.Locks.Get(e).IsLocked()
}

func hitstunned(e *donburi.Entry) bool {
	return components.Locks.Get(e).Held(components.LockHitstun)
}

// UpdateLocks releases expired timed locks.
func UpdateLocks(ecs *ecs.ECS) {
	now := Now(ecs.World)
	log := logger(ecs.World)
	components.Locks.Each(ecs.World, func(e *donburi.Entry) {
		released := components.Locks.Get(e).ExpireAt(components.Physics.Get(e), now)
		if len(released) > 0 {
			log.Debug("locks expired", actorField(e), zap.Strings("keys", released))
		}
	})
}
