package components

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLocksFirstAcquireSnapshotsAndLastReleaseRestores(t *testing.T) {
	p := &PhysicsData{Gravity: 0.75, SpeedX: 3}
	var l LocksData

	l.Acquire(p, LockParry, true, true)
	assert.True(t, l.IsLocked())
	assert.True(t, p.Kinematic)
	assert.Zero(t, p.Gravity)
	assert.Zero(t, p.SpeedX)

	l.Acquire(p, LockHitstun, false, false)
	l.Release(p, LockParry)
	assert.True(t, l.IsLocked())
	assert.True(t, p.Kinematic, "constraints stay frozen while any key is held")

	l.Release(p, LockHitstun)
	assert.False(t, l.IsLocked())
	assert.False(t, p.Kinematic)
	assert.Equal(t, 0.75, p.Gravity)
}

func TestLocksReleaseUnheldIsNoop(t *testing.T) {
	p := &PhysicsData{Gravity: 1}
	var l LocksData
	l.Release(p, LockAttack)
	assert.False(t, l.IsLocked())
	assert.Equal(t, 1.0, p.Gravity)
}

func TestLocksAcquireIsIdempotent(t *testing.T) {
	p := &PhysicsData{Gravity: 1}
	var l LocksData
	l.Acquire(p, LockBlock, false, false)
	p.SpeedX = 5
	l.Acquire(p, LockBlock, false, true)
	assert.Zero(t, p.SpeedX, "re-acquire re-zeroes velocity")
	assert.Equal(t, []string{LockBlock}, l.Keys())

	l.Release(p, LockBlock)
	assert.False(t, l.IsLocked())
}

func TestLocksExpireAt(t *testing.T) {
	p := &PhysicsData{Gravity: 0.5}
	var l LocksData
	l.AcquireUntil(p, LockHitstun, 300*time.Millisecond, false, true)
	l.AcquireUntil(p, LockHitstun, 100*time.Millisecond, false, true)

	until, ok := l.Until(LockHitstun)
	require.True(t, ok)
	assert.Equal(t, 300*time.Millisecond, until, "re-acquire keeps the later expiry")

	assert.Nil(t, l.ExpireAt(p, 200*time.Millisecond))
	assert.Equal(t, []string{LockHitstun}, l.ExpireAt(p, 300*time.Millisecond))
	assert.False(t, l.IsLocked())
}

func TestLocksUntimedHoldIsNotShortened(t *testing.T) {
	var l LocksData
	l.Acquire(nil, LockDead, false, false)
	l.AcquireUntil(nil, LockDead, time.Millisecond, false, false)
	assert.Empty(t, l.ExpireAt(nil, time.Second))
	assert.True(t, l.Held(LockDead))
}

var lockKeys = []string{LockAttack, LockCharge, LockBlock, LockParry, LockHitstun, LockBreak, LockSkill}

func TestPropertyLockBalance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := Constraints{
			Kinematic: rapid.Bool().Draw(t, "kinematic"),
			Gravity:   rapid.Float64Range(0, 2).Draw(t, "gravity"),
		}
		p := &PhysicsData{}
		p.Restore(initial)
		var l LocksData
		held := map[string]bool{}

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			key := rapid.SampledFrom(lockKeys).Draw(t, "key")
			if rapid.Bool().Draw(t, "acquire") {
				l.Acquire(p, key, rapid.Bool().Draw(t, "hard"), rapid.Bool().Draw(t, "zero"))
				held[key] = true
			} else {
				l.Release(p, key)
				delete(held, key)
			}
			if l.IsLocked() != (len(held) > 0) {
				t.Fatalf("IsLocked=%v with %d keys held", l.IsLocked(), len(held))
			}
		}

		remaining := make([]string, 0, len(held))
		for k := range held {
			remaining = append(remaining, k)
		}
		sort.Strings(remaining)
		order := rapid.Permutation(remaining).Draw(t, "order")
		for _, k := range order {
			l.Release(p, k)
		}

		if l.IsLocked() {
			t.Fatalf("still locked with keys %v", l.Keys())
		}
		if p.Constraints() != initial {
			t.Fatalf("constraints %+v, want %+v", p.Constraints(), initial)
		}
	})
}
