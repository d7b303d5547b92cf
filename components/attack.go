package components

import (
	"time"

	"github.com/automoto/doomerang-combat/config"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// AttackPhase is the attack state machine's phase.
type AttackPhase int

const (
	AttackIdle AttackPhase = iota
	AttackCharging
	AttackWindup
	AttackActive
	AttackRecovery
)

func (p AttackPhase) String() string {
	switch p {
	case AttackCharging:
		return "Charging"
	case AttackWindup:
		return "Windup"
	case AttackActive:
		return "Active"
	case AttackRecovery:
		return "Recovery"
	}
	return "Idle"
}

// AttackVariant distinguishes how the swing in flight was started.
type AttackVariant int

const (
	VariantCombo AttackVariant = iota
	VariantCharge
	VariantCounter
)

// AttackData is the single in-flight attack of an actor.
type AttackData struct {
	Phase   AttackPhase
	Variant AttackVariant
	Step    config.AttackStep

	ComboStep    int // index into the profile's combo of the swing in flight
	BufferedNext bool
	// ResumeStep is where a fresh press within Combat.ComboMaxGap of
	// LastEndedAt picks the combo up again.
	ResumeStep int

	StartedAt       time.Duration
	PhaseEndsAt     time.Duration // for Recovery this is the end of the non-cancellable part
	TailEndsAt      time.Duration
	LastEndedAt     time.Duration
	ChargeStartedAt time.Duration
	PowerMul        float64 // 1 for normal swings

	// Resolved from the step and current stats when the active phase begins.
	Damage    float64
	Knockback float64
	Range     float64
	Radius    float64

	HitboxQueries int
	TargetsHit    int

	// Hitbox and Targets are reused across queries.
	Hitbox  *resolv.Object
	Targets []*donburi.Entry
}

// Acting reports whether an attack or charge is in flight.
func (a *AttackData) Acting() bool {
	return a.Phase != AttackIdle
}

// Swinging reports whether a committed swing is in flight.
func (a *AttackData) Swinging() bool {
	return a.Phase == AttackWindup || a.Phase == AttackActive || a.Phase == AttackRecovery
}

// InCancellableTail reports whether the swing is past its minimum recovery.
func (a *AttackData) InCancellableTail(now time.Duration) bool {
	return a.Phase == AttackRecovery && now >= a.PhaseEndsAt
}

var Attack = donburi.NewComponentType[AttackData]()
