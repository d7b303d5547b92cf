package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request an actor.
type JoinRequest struct {
	PlayerName string
	// Profile optionally picks a known actor profile; empty uses the server default.
	Profile string
}

// JoinAccepted is sent by the server when a client's actor has been spawned.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	ActorID    string
	ServerName string
	TickRate   int
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
