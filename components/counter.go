package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// CounterWindowData is armed by a successful parry and consumed by the next
// attack press inside the window.
type CounterWindowData struct {
	Armed bool
	Until time.Duration
	// Index is the combo index of the parried swing; it picks the counter cue.
	Index int
}

// Open reports whether the window can be consumed at now.
func (c *CounterWindowData) Open(now time.Duration) bool {
	return c.Armed && now < c.Until
}

var CounterWindow = donburi.NewComponentType[CounterWindowData]()
