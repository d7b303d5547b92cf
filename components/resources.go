package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// ResourcesData holds an actor's health and stamina pools.
type ResourcesData struct {
	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64
	RegenRate  float64 // stamina per second

	RegenBlockedUntil time.Duration
	Broken            bool
	BrokenUntil       time.Duration
	InvulnUntil       time.Duration
}

// Invulnerable reports whether incoming hits are ignored at now.
func (r *ResourcesData) Invulnerable(now time.Duration) bool {
	return now < r.InvulnUntil
}

// ExtendInvuln pushes the invulnerability window out to now+d, never shortening it.
func (r *ResourcesData) ExtendInvuln(now, d time.Duration) {
	if until := now + d; until > r.InvulnUntil {
		r.InvulnUntil = until
	}
}

// HealthFraction returns health as a fraction of max.
func (r *ResourcesData) HealthFraction() float64 {
	if r.MaxHealth <= 0 {
		return 0
	}
	return r.Health / r.MaxHealth
}

var Resources = donburi.NewComponentType[ResourcesData]()
