package config

import "github.com/automoto/doomerang-combat/shared/netconfig"

// Type alias so engine code and wire code agree on state values.
type StateID = netconfig.StateID

// Re-export actor state constants.
const (
	StateNone = netconfig.StateNone

	Idle        = netconfig.Idle
	Walk        = netconfig.Walk
	Guard       = netconfig.Guard
	GuardImpact = netconfig.GuardImpact
	GuardBreak  = netconfig.GuardBreak
	Hit         = netconfig.Hit
	Stunned     = netconfig.Stunned
	Die         = netconfig.Die
	Windup      = netconfig.Windup
	Attacking   = netconfig.Attacking
	Recovering  = netconfig.Recovering
	ChargeUp    = netconfig.ChargeUp
	Casting     = netconfig.Casting
)

// Animation cue names that are not tied to a single state.
const (
	CueChargeRelease = "ChargeRelease"
	CueCounterPrefix = "Counter"
	CueRevive        = "Revive"
	CueIsBlocking    = "isBlocking"
	CueIsCharging    = "isCharging"
)
