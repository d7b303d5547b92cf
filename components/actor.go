package components

import (
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// ActorData identifies a combatant and where it is looking.
type ActorData struct {
	ID      string // uuid, stable across the network
	Name    string
	Profile string
	Team    int // actors on the same team never hit each other; NoTeam hits everyone
	// Facing is a unit vector. LastFacingX remembers the last non-zero
	// horizontal facing for knockback fallback.
	Facing      dmath.Vec2
	LastFacingX float64
	// RemoveOnDeath actors are removed after the corpse timer; others stay
	// dead until revived.
	RemoveOnDeath bool
}

// NoTeam marks a free-for-all actor.
const NoTeam = -1

// SetFacingX turns the actor left or right. Zero is ignored.
func (a *ActorData) SetFacingX(x float64) {
	switch {
	case x > 0:
		a.Facing = dmath.Vec2{X: 1, Y: 0}
		a.LastFacingX = 1
	case x < 0:
		a.Facing = dmath.Vec2{X: -1, Y: 0}
		a.LastFacingX = -1
	}
}

// SameTeam reports whether two actors are allies.
func (a *ActorData) SameTeam(other *ActorData) bool {
	return a.Team != NoTeam && a.Team == other.Team
}

var Actor = donburi.NewComponentType[ActorData]()
