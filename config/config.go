package config

import (
	"time"

	"github.com/yohamta/donburi/ecs"
)

// Default is the only ECS layer the arena uses.
const Default ecs.LayerID = 0

// CombatConfig contains combat tuning shared by every actor.
type CombatConfig struct {
	// Scheduling
	FixedStep     time.Duration // physics step
	MaxFrameDelta time.Duration // longer frames are clamped

	// Guard
	GuardAngle      float64 // full cone in degrees
	ParryWindow     time.Duration
	ParryPostHold   time.Duration // extra freeze after the parry window closes
	ParryInvuln     time.Duration
	ParryPushback   float64 // attacker knockback on being parried
	BlockDamageMul  float64
	BlockKnockMul   float64
	BlockHitstunMul float64
	BlockStaminaMul float64 // defender stamina spent per point of base damage
	BlockRegenDelay time.Duration
	// RegenResumeDelay is added to every regen block.
	RegenResumeDelay time.Duration

	// Guard break
	BreakDuration        time.Duration
	BreakRecoveryStamina float64 // fraction of max restored when the break ends

	// Hits
	KnockbackUpwardForce float64
	MaxHitTargets        int

	// Combos
	ComboMaxGap      time.Duration
	AttackRegenDelay time.Duration

	// Charge attack
	ChargeMinHold       time.Duration
	ChargeMaxHold       time.Duration
	ChargeMinMul        float64
	ChargeMaxMul        float64
	ChargeCurve         string // gween ease function name
	ChargeLocksMovement bool

	// Counter attack
	CounterWindow time.Duration

	// Death
	DeathInvuln    time.Duration
	CorpseDuration time.Duration
	ReviveHealth   float64 // fraction of max health on revive
}

// ArenaConfig describes the headless play field.
type ArenaConfig struct {
	Width      int
	Height     int
	CellWidth  int
	CellHeight int
	FloorY     float64
}

var Combat CombatConfig
var Arena ArenaConfig

func init() {
	Arena = ArenaConfig{
		Width:      640,
		Height:     360,
		CellWidth:  16,
		CellHeight: 16,
		FloorY:     300,
	}

	Combat = CombatConfig{
		FixedStep:     time.Second / 60,
		MaxFrameDelta: 250 * time.Millisecond,

		GuardAngle:      120,
		ParryWindow:     150 * time.Millisecond,
		ParryPostHold:   250 * time.Millisecond,
		ParryInvuln:     200 * time.Millisecond,
		ParryPushback:   4.0,
		BlockDamageMul:  0.2,
		BlockKnockMul:   0.5,
		BlockHitstunMul: 0.5,
		BlockStaminaMul: 1.0,
		BlockRegenDelay: 500 * time.Millisecond,

		RegenResumeDelay: 100 * time.Millisecond,

		BreakDuration:        1500 * time.Millisecond,
		BreakRecoveryStamina: 0.5,

		// Knockback tuning carried over from the brawler: hits launch sideways only
		KnockbackUpwardForce: 0,
		MaxHitTargets:        8,

		ComboMaxGap:      600 * time.Millisecond,
		AttackRegenDelay: 400 * time.Millisecond,

		ChargeMinHold:       300 * time.Millisecond,
		ChargeMaxHold:       1200 * time.Millisecond,
		ChargeMinMul:        1.2,
		ChargeMaxMul:        2.5,
		ChargeCurve:         "Linear",
		ChargeLocksMovement: true,

		CounterWindow: 600 * time.Millisecond,

		DeathInvuln:    time.Second,
		CorpseDuration: time.Second,
		ReviveHealth:   0.5,
	}
}
