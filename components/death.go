package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// DeathData is the death latch. Once Dead is set the actor cannot die again
// until revived.
type DeathData struct {
	Dead     bool
	At       time.Duration
	RemoveAt time.Duration // zero when the actor waits for a revive
}

var Death = donburi.NewComponentType[DeathData]()
