package systems_test

import (
	"testing"
	"time"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestChargeMultiplierBounds(t *testing.T) {
	c := config.Combat
	assert.Equal(t, c.ChargeMinMul, systems.ChargeMultiplier(0))
	assert.Equal(t, c.ChargeMinMul, systems.ChargeMultiplier(c.ChargeMinHold))
	assert.Equal(t, c.ChargeMaxMul, systems.ChargeMultiplier(c.ChargeMaxHold))
	assert.Equal(t, c.ChargeMaxMul, systems.ChargeMultiplier(10*c.ChargeMaxHold))

	mid := (c.ChargeMinHold + c.ChargeMaxHold) / 2
	assert.InDelta(t, (c.ChargeMinMul+c.ChargeMaxMul)/2, systems.ChargeMultiplier(mid), 1e-4)
}

func TestChargeMultiplierIsMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := time.Duration(rapid.Int64Range(0, int64(2*time.Second)).Draw(t, "a"))
		b := time.Duration(rapid.Int64Range(0, int64(2*time.Second)).Draw(t, "b"))
		if a > b {
			a, b = b, a
		}
		if systems.ChargeMultiplier(a) > systems.ChargeMultiplier(b)+1e-6 {
			t.Fatalf("multiplier fell from %v to %v", a, b)
		}
	})
}

func TestChargeReleasedEarlyCancelsSilently(t *testing.T) {
	f := newFixture()
	e, cues := f.spawn(config.ProfilePlayer, 100, 0, 1)

	f.press(e, config.ActionCharge, true, ms(10))
	f.runUntil(ms(100))
	assert.Equal(t, components.AttackCharging, components.Attack.Get(e).Phase)
	assert.Equal(t, config.ChargeUp, components.State.Get(e).CurrentState)
	assert.True(t, cues.bools[config.CueIsCharging])

	f.press(e, config.ActionCharge, false, ms(10)+config.Combat.ChargeMinHold-time.Millisecond)
	f.runUntil(ms(1000))

	a := components.Attack.Get(e)
	assert.Equal(t, components.AttackIdle, a.Phase)
	assert.Zero(t, a.HitboxQueries)
	assert.False(t, cues.has(config.CueChargeRelease))
	assert.False(t, cues.bools[config.CueIsCharging])
	assert.False(t, components.Locks.Get(e).Held(components.LockCharge))
	assert.Equal(t, 100.0, components.Resources.Get(e).Stamina)
}

func TestChargeReleasedAtMinimumFires(t *testing.T) {
	f := newFixture()
	e, cues := f.spawn(config.ProfilePlayer, 100, 0, 1)

	f.press(e, config.ActionCharge, true, ms(10))
	f.press(e, config.ActionCharge, false, ms(10)+config.Combat.ChargeMinHold)
	f.runUntil(ms(1000))

	a := components.Attack.Get(e)
	assert.Equal(t, 1, a.HitboxQueries)
	assert.True(t, cues.has(config.CueChargeRelease))
	assert.True(t, cues.has(config.Profile(config.ProfilePlayer).Charge.Cue))
	assert.False(t, cues.bools[config.CueIsCharging])
}

func TestChargeFiresByItselfAtMaximum(t *testing.T) {
	f := newFixture()
	e, cues := f.spawn(config.ProfilePlayer, 100, 0, 1)

	f.press(e, config.ActionCharge, true, ms(10))
	f.runUntil(ms(10) + config.Combat.ChargeMaxHold + ms(100))

	assert.Equal(t, 1, components.Attack.Get(e).HitboxQueries)
	assert.True(t, cues.has(config.CueChargeRelease))

	// The late release finds nothing to fire.
	f.press(e, config.ActionCharge, false, 0)
	f.runUntil(ms(2000))
	assert.Equal(t, 1, components.Attack.Get(e).HitboxQueries)
}

func TestChargedHitScalesDamage(t *testing.T) {
	f := newFixture()
	attacker, _ := f.spawn(config.ProfilePlayer, 100, 0, 1)
	defender, _ := f.spawn(config.ProfilePlayer, 120, 1, -1)

	f.press(attacker, config.ActionCharge, true, ms(10))
	f.runUntil(ms(10) + config.Combat.ChargeMaxHold + ms(100))

	p := config.Profile(config.ProfilePlayer)
	want := 100 - p.BaseDamage*p.Charge.DamageMul*config.Combat.ChargeMaxMul
	assert.InDelta(t, want, components.Resources.Get(defender).Health, 1e-6)
}
