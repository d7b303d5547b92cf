package components

import (
	"sort"
	"time"

	"github.com/yohamta/donburi"
)

// Lock keys used by the combat systems.
const (
	LockAttack  = "ATTACK"
	LockCharge  = "CHARGE"
	LockBlock   = "BLOCK"
	LockParry   = "PARRY"
	LockHitstun = "HITSTUN"
	LockBreak   = "BREAK"
	LockSkill   = "SKILL"
	LockDead    = "DEAD"
)

type lockEntry struct {
	until time.Duration
	timed bool
}

// LocksData is a per-actor set of movement locks. Any number of systems may
// hold keys at once; the actor is locked while at least one key is held.
//
// The first key taken into an empty set captures the physics constraints and
// removing the last key puts them back, whichever key that is.
type LocksData struct {
	keys        map[string]lockEntry
	snapshot    Constraints
	hasSnapshot bool
}

// Acquire adds key to the set.
//
// Precondition: p is the physics of the same actor.
// Postcondition: IsLocked() is true. Re-acquiring a held key only re-applies zeroVelocity and hardFreeze.
func (l *LocksData) Acquire(p *PhysicsData, key string, hardFreeze, zeroVelocity bool) {
	l.acquire(p, key, lockEntry{}, hardFreeze, zeroVelocity)
}

// AcquireUntil adds a key that ExpireAt releases once now reaches until.
// Re-acquiring a timed key keeps the later expiry; an untimed hold is never
// turned into a timed one.
func (l *LocksData) AcquireUntil(p *PhysicsData, key string, until time.Duration, hardFreeze, zeroVelocity bool) {
	l.acquire(p, key, lockEntry{until: until, timed: true}, hardFreeze, zeroVelocity)
}

func (l *LocksData) acquire(p *PhysicsData, key string, entry lockEntry, hardFreeze, zeroVelocity bool) {
	if l.keys == nil {
		l.keys = make(map[string]lockEntry)
	}
	if len(l.keys) == 0 && p != nil {
		l.snapshot = p.Constraints()
		l.hasSnapshot = true
	}

	if held, ok := l.keys[key]; ok {
		switch {
		case !held.timed:
			entry = held
		case entry.timed && held.until > entry.until:
			entry.until = held.until
		}
	}
	l.keys[key] = entry

	if p == nil {
		return
	}
	if zeroVelocity {
		p.Stop()
	}
	if hardFreeze {
		p.Kinematic = true
		p.Gravity = 0
	}
}

// Release removes key. Releasing a key that is not held does nothing.
//
// Postcondition: if the set became empty the captured constraints are restored exactly once.
func (l *LocksData) Release(p *PhysicsData, key string) {
	if _, ok := l.keys[key]; !ok {
		return
	}
	delete(l.keys, key)
	l.restoreIfEmpty(p)
}

// ExpireAt releases every timed key whose expiry is at or before now and
// returns the released keys.
func (l *LocksData) ExpireAt(p *PhysicsData, now time.Duration) []string {
	var released []string
	for key, e := range l.keys {
		if e.timed && e.until <= now {
			released = append(released, key)
		}
	}
	if len(released) == 0 {
		return nil
	}
	for _, key := range released {
		delete(l.keys, key)
	}
	l.restoreIfEmpty(p)
	sort.Strings(released)
	return released
}

func (l *LocksData) restoreIfEmpty(p *PhysicsData) {
	if len(l.keys) > 0 || !l.hasSnapshot {
		return
	}
	if p != nil {
		p.Restore(l.snapshot)
	}
	l.hasSnapshot = false
}

// IsLocked reports whether any key is held.
func (l *LocksData) IsLocked() bool {
	return len(l.keys) > 0
}

// Held reports whether key is held.
func (l *LocksData) Held(key string) bool {
	_, ok := l.keys[key]
	return ok
}

// Until returns the expiry of a timed key.
func (l *LocksData) Until(key string) (time.Duration, bool) {
	e, ok := l.keys[key]
	if !ok || !e.timed {
		return 0, false
	}
	return e.until, true
}

// Keys returns the held keys in sorted order.
func (l *LocksData) Keys() []string {
	keys := make([]string, 0, len(l.keys))
	for k := range l.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var Locks = donburi.NewComponentType[LocksData]()
