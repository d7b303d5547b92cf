package components

import (
	"time"

	"github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// Command is one edge of an abstract button: pressed or released at At.
type Command struct {
	Action  config.ActionID
	Pressed bool
	At      time.Duration
}

// CommandsData queues an actor's commands until their tick.
type CommandsData struct {
	Pending []Command
	Held    [config.ActionCount]bool
}

// Push queues a command.
func (c *CommandsData) Push(cmd Command) {
	c.Pending = append(c.Pending, cmd)
}

var Commands = donburi.NewComponentType[CommandsData]()
