package netcomponents

import "github.com/yohamta/donburi"

// NetPositionData is the top-left corner of an actor's body.
type NetPositionData struct {
	X, Y float64
}

// NetVelocityData is the actor's velocity in pixels per physics step.
type NetVelocityData struct {
	SpeedX, SpeedY float64
}

var (
	NetPosition = donburi.NewComponentType[NetPositionData]()
	NetVelocity = donburi.NewComponentType[NetVelocityData]()
)

// LerpNetPosition interpolates between two snapshots. t is clamped to [0, 1]
// so late snapshots never overshoot.
func LerpNetPosition(from, to NetPositionData, t float64) *NetPositionData {
	t = clamp01(t)
	return &NetPositionData{
		X: lerp(from.X, to.X, t),
		Y: lerp(from.Y, to.Y, t),
	}
}

// LerpNetVelocity interpolates between two velocity snapshots.
func LerpNetVelocity(from, to NetVelocityData, t float64) *NetVelocityData {
	t = clamp01(t)
	return &NetVelocityData{
		SpeedX: lerp(from.SpeedX, to.SpeedX, t),
		SpeedY: lerp(from.SpeedY, to.SpeedY, t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
