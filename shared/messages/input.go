package messages

import "github.com/automoto/doomerang-combat/config"

// CommandInput is sent from client to server for every button edge.
type CommandInput struct {
	Sequence uint32          // Incrementing ID, echoed in NetActor.LastSequence
	Action   config.ActionID // Which abstract button changed
	Pressed  bool            // true on press, false on release
}
