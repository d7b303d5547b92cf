package netcomponents

import (
	"github.com/automoto/doomerang-combat/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetActorData is the replicated view of a combat actor. Discrete fields
// only, so it is synced without interpolation.
type NetActorData struct {
	Name       string
	Team       int
	StateID    netconfig.StateID
	FacingX    float64 // -1 left, 1 right
	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64
	Blocking   bool
	Broken     bool
	Dead       bool
	ComboStep  int
	// LastSequence is the last command sequence the server applied for this actor.
	LastSequence uint32
}

var NetActor = donburi.NewComponentType[NetActorData]()
