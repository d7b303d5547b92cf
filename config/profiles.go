package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxComboSteps bounds the length of a combo chain.
const MaxComboSteps = 5

// SkillSlots is the number of skill buttons an actor has.
const SkillSlots = 3

// AttackStep describes one swing: its timing, scaling and hitbox shape.
type AttackStep struct {
	Name         string        `yaml:"name"`
	Cue          string        `yaml:"cue"`
	Windup       time.Duration `yaml:"windup"`
	Active       time.Duration `yaml:"active"`
	MinRecovery  time.Duration `yaml:"min_recovery"`
	RecoveryTail time.Duration `yaml:"recovery_tail"` // cancellable part of recovery
	DamageMul    float64       `yaml:"damage_mul"`
	KnockbackMul float64       `yaml:"knockback_mul"`
	Hitstun      time.Duration `yaml:"hitstun"`
	Range        float64       `yaml:"range"`
	Radius       float64       `yaml:"radius"`
	OffsetX      float64       `yaml:"offset_x"`
	StaminaCost  float64       `yaml:"stamina_cost"`
	Parryable    bool          `yaml:"parryable"`
}

// Total is the full windup, active and recovery span of the step.
func (s AttackStep) Total() time.Duration {
	return s.Windup + s.Active + s.MinRecovery + s.RecoveryTail
}

// SkillKind selects what a skill does when its cast completes.
type SkillKind string

const (
	SkillHeal   SkillKind = "heal"
	SkillRevive SkillKind = "revive"
	SkillCast   SkillKind = "cast"
)

// Skill is bound to one of the actor's skill slots.
type Skill struct {
	Name        string        `yaml:"name"`
	Kind        SkillKind     `yaml:"kind"`
	CastTime    time.Duration `yaml:"cast_time"`
	Amount      float64       `yaml:"amount"`
	StaminaCost float64       `yaml:"stamina_cost"`
	Radius      float64       `yaml:"radius"`
	Cue         string        `yaml:"cue"`
}

// ActorProfile contains the stat table for one kind of actor.
type ActorProfile struct {
	Name          string  `yaml:"name"`
	Health        float64 `yaml:"health"`
	Stamina       float64 `yaml:"stamina"`
	StaminaRegen  float64 `yaml:"stamina_regen"` // per second
	BaseDamage    float64 `yaml:"base_damage"`
	BaseKnockback float64 `yaml:"base_knockback"`
	AttackPower   float64 `yaml:"attack_power"`

	// Physics
	MoveSpeed       float64 `yaml:"move_speed"`
	Acceleration    float64 `yaml:"acceleration"`
	Friction        float64 `yaml:"friction"`
	Gravity         float64 `yaml:"gravity"`
	CollisionWidth  float64 `yaml:"collision_width"`
	CollisionHeight float64 `yaml:"collision_height"`

	// ParryWindow overrides Combat.ParryWindow when non-zero.
	ParryWindow   time.Duration `yaml:"parry_window"`
	CanCounter    bool          `yaml:"can_counter"`
	RemoveOnDeath bool          `yaml:"remove_on_death"`

	Combo   []AttackStep `yaml:"combo"`
	Charge  AttackStep   `yaml:"charge"`
	Counter AttackStep   `yaml:"counter"`
	Skills  []Skill      `yaml:"skills"`
}

// Validate checks the profile invariants.
//
// Postcondition: Returns nil if the profile is usable, or an error describing all violations.
func (p ActorProfile) Validate() error {
	var errs []string
	if p.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if p.Health <= 0 {
		errs = append(errs, fmt.Sprintf("health must be > 0, got %v", p.Health))
	}
	if p.Stamina < 0 {
		errs = append(errs, fmt.Sprintf("stamina must be >= 0, got %v", p.Stamina))
	}
	if p.CollisionWidth <= 0 || p.CollisionHeight <= 0 {
		errs = append(errs, "collision size must be positive")
	}
	if len(p.Combo) == 0 {
		errs = append(errs, "combo must have at least one step")
	}
	if len(p.Combo) > MaxComboSteps {
		errs = append(errs, fmt.Sprintf("combo must have at most %d steps, got %d", MaxComboSteps, len(p.Combo)))
	}
	for i, step := range p.Combo {
		if err := validateStep(step); err != nil {
			errs = append(errs, fmt.Sprintf("combo[%d]: %v", i, err))
		}
	}
	if len(p.Skills) > SkillSlots {
		errs = append(errs, fmt.Sprintf("at most %d skills, got %d", SkillSlots, len(p.Skills)))
	}
	for i, s := range p.Skills {
		switch s.Kind {
		case SkillHeal, SkillRevive, SkillCast:
		default:
			errs = append(errs, fmt.Sprintf("skills[%d].kind must be one of [heal, revive, cast], got %q", i, s.Kind))
		}
		if s.CastTime < 0 {
			errs = append(errs, fmt.Sprintf("skills[%d].cast_time must not be negative", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("profile %q: %s", p.Name, strings.Join(errs, "; "))
	}
	return nil
}

func validateStep(s AttackStep) error {
	if s.Active <= 0 {
		return errors.New("active must be > 0")
	}
	if s.Windup < 0 || s.MinRecovery < 0 || s.RecoveryTail < 0 {
		return errors.New("phase durations must not be negative")
	}
	if s.Range <= 0 || s.Radius <= 0 {
		return errors.New("range and radius must be positive")
	}
	return nil
}

// Profiles holds every actor profile by name.
var Profiles map[string]ActorProfile

// Profile returns the named profile, falling back to the player profile.
func Profile(name string) ActorProfile {
	if p, ok := Profiles[name]; ok {
		return p
	}
	return Profiles[ProfilePlayer]
}

const (
	ProfilePlayer     = "Player"
	ProfileGuard      = "Guard"
	ProfileLightGuard = "LightGuard"
	ProfileHeavyGuard = "HeavyGuard"
)

type profileFile struct {
	Profiles []ActorProfile `yaml:"profiles"`
}

// LoadProfiles reads actor profiles from a YAML file and merges them over the
// built-in tables. A profile in the file replaces the built-in one of the same name.
//
// Precondition: path must name a readable YAML file with a top-level "profiles" list.
// Postcondition: On success Profiles contains every loaded profile; on error Profiles is unchanged.
func LoadProfiles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading profiles file: %w", err)
	}
	loaded, err := ParseProfiles(data)
	if err != nil {
		return err
	}
	for _, p := range loaded {
		Profiles[p.Name] = p
	}
	return nil
}

// ParseProfiles decodes and validates a YAML profile document.
func ParseProfiles(data []byte) ([]ActorProfile, error) {
	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding profiles: %w", err)
	}
	var errs []string
	for _, p := range f.Profiles {
		if err := p.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("profile validation failed: %s", strings.Join(errs, "; "))
	}
	return f.Profiles, nil
}

func init() {
	punch := func(name, cue string, dmg float64) AttackStep {
		return AttackStep{
			Name:         name,
			Cue:          cue,
			Windup:       100 * time.Millisecond,
			Active:       50 * time.Millisecond,
			MinRecovery:  150 * time.Millisecond,
			RecoveryTail: 150 * time.Millisecond,
			DamageMul:    dmg,
			KnockbackMul: 1.0,
			Hitstun:      300 * time.Millisecond,
			Range:        28,
			Radius:       10,
			StaminaCost:  10,
			Parryable:    true,
		}
	}

	player := ActorProfile{
		Name:            ProfilePlayer,
		Health:          100,
		Stamina:         100,
		StaminaRegen:    25,
		BaseDamage:      20,
		BaseKnockback:   5.0,
		AttackPower:     1.0,
		MoveSpeed:       6.0,
		Acceleration:    0.75,
		Friction:        0.5,
		Gravity:         0.75,
		CollisionWidth:  16,
		CollisionHeight: 40,
		CanCounter:      true,
		Combo: []AttackStep{
			punch("jab", "Punch01", 1.0),
			punch("cross", "Punch02", 1.2),
			punch("roundhouse", "Kick01", 1.6),
		},
		Charge: AttackStep{
			Name:         "charged",
			Cue:          "Kick03",
			Windup:       50 * time.Millisecond,
			Active:       80 * time.Millisecond,
			MinRecovery:  300 * time.Millisecond,
			DamageMul:    1.0,
			KnockbackMul: 1.5,
			Hitstun:      500 * time.Millisecond,
			Range:        36,
			Radius:       12,
			StaminaCost:  25,
			Parryable:    false,
		},
		Counter: AttackStep{
			Name:         "counter",
			Cue:          "Counter",
			Windup:       50 * time.Millisecond,
			Active:       60 * time.Millisecond,
			MinRecovery:  200 * time.Millisecond,
			DamageMul:    2.0,
			KnockbackMul: 2.0,
			Hitstun:      600 * time.Millisecond,
			Range:        32,
			Radius:       12,
			Parryable:    false,
		},
		Skills: []Skill{
			{Name: "second_wind", Kind: SkillHeal, CastTime: 800 * time.Millisecond, Amount: 30, StaminaCost: 20, Cue: "Heal"},
			{Name: "rally", Kind: SkillRevive, CastTime: 1500 * time.Millisecond, Radius: 64, StaminaCost: 40, Cue: "Revive"},
			{Name: "taunt", Kind: SkillCast, CastTime: 500 * time.Millisecond, Cue: "Taunt"},
		},
	}

	guard := ActorProfile{
		Name:            ProfileGuard,
		Health:          60,
		Stamina:         60,
		StaminaRegen:    15,
		BaseDamage:      40,
		BaseKnockback:   5.0,
		AttackPower:     1.0,
		MoveSpeed:       2.5,
		Acceleration:    0.5,
		Friction:        0.2,
		Gravity:         0.75,
		CollisionWidth:  16,
		CollisionHeight: 40,
		RemoveOnDeath:   true,
		Combo: []AttackStep{
			{
				Name:         "guard_punch",
				Cue:          "Punch01",
				Windup:       250 * time.Millisecond,
				Active:       100 * time.Millisecond,
				MinRecovery:  150 * time.Millisecond,
				DamageMul:    1.0,
				KnockbackMul: 1.0,
				Hitstun:      250 * time.Millisecond,
				Range:        28,
				Radius:       10,
				Parryable:    true,
			},
		},
	}

	lightGuard := guard
	lightGuard.Name = ProfileLightGuard
	lightGuard.Health = 30
	lightGuard.Stamina = 40
	lightGuard.BaseDamage = 20
	lightGuard.BaseKnockback = 3.0
	lightGuard.MoveSpeed = 3.5
	lightGuard.CollisionWidth = 14
	lightGuard.CollisionHeight = 36
	lightGuard.Combo = []AttackStep{punch("light_jab", "Punch01", 1.0), punch("light_cross", "Punch02", 1.0)}

	heavyGuard := guard
	heavyGuard.Name = ProfileHeavyGuard
	heavyGuard.Health = 100
	heavyGuard.Stamina = 120
	heavyGuard.BaseDamage = 50
	heavyGuard.BaseKnockback = 7.0
	heavyGuard.MoveSpeed = 2.0
	heavyGuard.CollisionWidth = 20
	heavyGuard.CollisionHeight = 44
	heavyGuard.ParryWindow = 100 * time.Millisecond

	Profiles = map[string]ActorProfile{
		player.Name:     player,
		guard.Name:      guard,
		lightGuard.Name: lightGuard,
		heavyGuard.Name: heavyGuard,
	}
}
