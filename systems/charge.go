package systems

import (
	"time"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

var chargeCurves = map[string]ease.TweenFunc{
	"Linear":    ease.Linear,
	"InQuad":    ease.InQuad,
	"OutQuad":   ease.OutQuad,
	"InOutQuad": ease.InOutQuad,
	"InCubic":   ease.InCubic,
	"OutCubic":  ease.OutCubic,
	"InOutSine": ease.InOutSine,
	"OutExpo":   ease.OutExpo,
}

// ChargeMultiplier maps a hold time onto the charge damage multiplier. Holds
// at or below the minimum give ChargeMinMul, at or above the maximum ChargeMaxMul.
func ChargeMultiplier(held time.Duration) float64 {
	c := cfg.Combat
	span := c.ChargeMaxHold - c.ChargeMinHold
	if span <= 0 || held >= c.ChargeMaxHold {
		return c.ChargeMaxMul
	}
	if held <= c.ChargeMinHold {
		return c.ChargeMinMul
	}
	curve, ok := chargeCurves[c.ChargeCurve]
	if !ok {
		curve = ease.Linear
	}
	tw := gween.New(float32(c.ChargeMinMul), float32(c.ChargeMaxMul), float32(span.Seconds()), curve)
	v, _ := tw.Set(float32((held - c.ChargeMinHold).Seconds()))
	return float64(v)
}

// ChargePressed starts charging the profile's charge attack.
func ChargePressed(e *donburi.Entry) {
	if !valid(e) {
		return
	}
	chargePressedAt(e, Now(e.World))
}

func chargePressedAt(e *donburi.Entry, at time.Duration) {
	advanceAttack(e, at)
	a := components.Attack.Get(e)
	step := profileOf(e).Charge
	if a.Acting() || step.Active <= 0 || !canStartAttack(e, step) {
		logger(e.World).Debug("charge rejected", actorField(e))
		return
	}

	a.Phase = components.AttackCharging
	a.Variant = components.VariantCharge
	a.Step = step
	a.ComboStep = 0
	a.BufferedNext = false
	a.ChargeStartedAt = at
	if cfg.Combat.ChargeLocksMovement {
		AcquireLock(e, components.LockCharge, false, true)
	}

	cueBool(e, cfg.CueIsCharging, true)
	cue(e, cfg.ChargeUp.String())
}

// ChargeReleased fires the charge if it was held long enough and cancels it
// silently otherwise.
func ChargeReleased(e *donburi.Entry) {
	if !valid(e) {
		return
	}
	chargeReleasedAt(e, Now(e.World))
}

func chargeReleasedAt(e *donburi.Entry, at time.Duration) {
	advanceAttack(e, at)
	a := components.Attack.Get(e)
	if a.Phase != components.AttackCharging {
		return
	}
	held := at - a.ChargeStartedAt
	if held < cfg.Combat.ChargeMinHold {
		endAttack(e, at)
		logger(e.World).Debug("charge cancelled", actorField(e), zap.Duration("held", held))
		return
	}
	fireCharge(e, held, at)
}

func fireCharge(e *donburi.Entry, held, at time.Duration) {
	step := components.Attack.Get(e).Step
	ReleaseLock(e, components.LockCharge)
	cueBool(e, cfg.CueIsCharging, false)
	cue(e, cfg.CueChargeRelease)

	startStep(e, components.VariantCharge, step, 0, at, step.Cue)
	a := components.Attack.Get(e)
	a.PowerMul = ChargeMultiplier(held)
	logger(e.World).Debug("charge fired", actorField(e),
		zap.Duration("held", held), zap.Float64("power", a.PowerMul))
}
