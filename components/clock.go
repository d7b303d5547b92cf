package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// ClockData is the arena's simulated time. Engine code never reads the wall clock.
type ClockData struct {
	Now         time.Duration
	Delta       time.Duration // length of the current frame
	Accumulator time.Duration // unspent physics time
	Tick        uint64
}

var Clock = donburi.NewComponentType[ClockData]()
