package systems

import (
	"time"

	"github.com/automoto/doomerang-combat/components"
	"github.com/yohamta/donburi"
)

// StartActionLock blocks every action start for d. Calls extend the lock but
// never shorten it.
func StartActionLock(e *donburi.Entry, d time.Duration) {
	if !valid(e) || d <= 0 {
		return
	}
	components.ActionLock.Get(e).Extend(Now(e.World), d)
}

// CanAct reports whether the actor may start a block, attack, charge or skill.
func CanAct(e *donburi.Entry) bool {
	if !valid(e) || IsDead(e) || IsBroken(e) {
		return false
	}
	if components.ActionLock.Get(e).Active(Now(e.World)) || hitstunned(e) {
		return false
	}
	return !components.SkillCast.Get(e).Active
}
