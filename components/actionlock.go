package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// ActionLockData blocks every action start until Until.
type ActionLockData struct {
	Until time.Duration
}

// Extend moves Until to now+d if that is later. It never shortens the lock.
func (a *ActionLockData) Extend(now, d time.Duration) {
	if until := now + d; until > a.Until {
		a.Until = until
	}
}

// Active reports whether actions are blocked at now.
func (a *ActionLockData) Active(now time.Duration) bool {
	return now < a.Until
}

var ActionLock = donburi.NewComponentType[ActionLockData]()
