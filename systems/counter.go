package systems

import (
	"fmt"
	"time"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// ArmCounter opens a counter window on the actor. comboIndex is the combo
// step of the parried swing and picks the counter cue.
func ArmCounter(e *donburi.Entry, comboIndex int, window time.Duration) {
	if !valid(e) || window <= 0 {
		return
	}
	c := components.CounterWindow.Get(e)
	c.Armed = true
	c.Until = Now(e.World) + window
	c.Index = comboIndex
}

// tryCounter spends an open counter window on an attack press. A counter may
// start from a block, a parry lock or the tail of a recovery, never from
// hitstun or a skill cast.
func tryCounter(e *donburi.Entry, at time.Duration) bool {
	c := components.CounterWindow.Get(e)
	if !c.Open(at) {
		return false
	}
	if IsDead(e) || IsBroken(e) || hitstunned(e) || components.SkillCast.Get(e).Active {
		return false
	}
	if components.ActionLock.Get(e).Active(at) {
		return false
	}
	a := components.Attack.Get(e)
	if a.Acting() && !a.InCancellableTail(at) {
		return false
	}
	step := profileOf(e).Counter
	if step.Active <= 0 || components.Resources.Get(e).Stamina < step.StaminaCost {
		return false
	}

	c.Armed = false
	if components.Defense.Get(e).State != components.DefenseIdle {
		forceBlockOff(e)
	}
	if a.Acting() {
		endAttack(e, at)
	}
	startStep(e, components.VariantCounter, step, c.Index, at, fmt.Sprintf("%s%d", cfg.CueCounterPrefix, c.Index+1))

	Publish(e.World, NotifyCounter, e.Entity(), donburi.Null, 0)
	logger(e.World).Debug("counter started", actorField(e), zap.Int("index", c.Index))
	return true
}
