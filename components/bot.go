package components

import (
	"time"

	"github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// Decider chooses commands for an AI actor. It only ever emits commands, so
// AI actors run on exactly the same rig as remote or scripted ones.
type Decider interface {
	Decide(self *donburi.Entry, now time.Duration) []Command
}

type BotData struct {
	Decider     Decider
	Difficulty  config.BotDifficulty
	NextThinkAt time.Duration
}

var Bot = donburi.NewComponentType[BotData]()
