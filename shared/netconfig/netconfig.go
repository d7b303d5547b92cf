// Package netconfig defines lightweight types shared between the engine and the
// network layer. It must stay free of engine dependencies so that wire types
// can be decoded without pulling in the ECS.
package netconfig

// StateID identifies an actor's presentation state.
type StateID int

// StateNone marks an actor without a presentation state yet.
const StateNone StateID = -1

const (
	Idle StateID = iota
	Walk
	Guard
	GuardImpact
	GuardBreak
	Hit
	Stunned
	Die
	Windup
	Attacking
	Recovering
	ChargeUp
	Casting
)

// StateToName maps StateID to its animation cue name.
var StateToName = map[StateID]string{
	Idle:        "Idle",
	Walk:        "Walk",
	Guard:       "Guard",
	GuardImpact: "GuardImpact",
	GuardBreak:  "GuardBreak",
	Hit:         "Hit",
	Stunned:     "Stunned",
	Die:         "Die",
	Windup:      "Windup",
	Attacking:   "Attacking",
	Recovering:  "Recovering",
	ChargeUp:    "ChargeUp",
	Casting:     "Casting",
}

func (s StateID) String() string {
	if n, ok := StateToName[s]; ok {
		return n
	}
	return "None"
}
