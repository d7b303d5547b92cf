package components

import (
	"time"

	"github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// StateData is the actor's presentation state derived from the rig each frame.
type StateData struct {
	CurrentState  config.StateID
	PreviousState config.StateID
	EnteredAt     time.Duration
}

var State = donburi.NewComponentType[StateData]()
