package components

import (
	"math"
	"time"

	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// DefenseState is the guard state machine's state.
type DefenseState int

const (
	DefenseIdle DefenseState = iota
	DefenseBlocking
	DefenseParryLocked
)

func (s DefenseState) String() string {
	switch s {
	case DefenseBlocking:
		return "Blocking"
	case DefenseParryLocked:
		return "ParryLocked"
	}
	return "Idle"
}

// Guard is the result of checking an incoming hit against the defense.
type Guard int

const (
	GuardNone Guard = iota
	GuardBlock
	GuardParry
)

func (g Guard) String() string {
	switch g {
	case GuardBlock:
		return "Block"
	case GuardParry:
		return "Parry"
	}
	return "None"
}

type DefenseData struct {
	State          DefenseState
	IsBlocking     bool
	BlockHeld      bool // raw input, so a release during a forced block is honoured later
	BlockPressedAt time.Duration
	ParryWindow    time.Duration
	GuardAngle     float64 // full cone in degrees
	// ForcedBlockUntil keeps the block up after a parry regardless of input.
	ForcedBlockUntil time.Duration
}

// Evaluate decides how a hit landing at time at from dirToAttacker is
// defended. It has no side effects.
//
// Precondition: facing and dirToAttacker are unit vectors or zero.
// Postcondition: returns GuardNone unless blocking inside the guard cone;
// GuardParry only for parryable hits inside the parry window. A block
// pressed after at does not count.
func (d *DefenseData) Evaluate(at time.Duration, facing, dirToAttacker dmath.Vec2, parryable bool) Guard {
	if !d.IsBlocking || at < d.BlockPressedAt {
		return GuardNone
	}
	cosHalf := math.Cos(d.GuardAngle / 2 * math.Pi / 180)
	if facing.X*dirToAttacker.X+facing.Y*dirToAttacker.Y < cosHalf {
		return GuardNone
	}
	if parryable && at-d.BlockPressedAt <= d.ParryWindow {
		return GuardParry
	}
	return GuardBlock
}

var Defense = donburi.NewComponentType[DefenseData]()
