package components

import (
	"github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// StatsData holds the actor's profile and stat modifiers. Attacks read it
// when their hitbox is queried, so buffs applied mid-swing count.
type StatsData struct {
	Profile     config.ActorProfile
	AttackPower float64
	DamageTaken float64 // incoming damage multiplier
}

var Stats = donburi.NewComponentType[StatsData]()
