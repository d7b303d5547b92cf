package components

import "github.com/yohamta/donburi"

// Constraints are the physical settings a hard freeze overrides.
type Constraints struct {
	Kinematic bool
	Gravity   float64
}

type PhysicsData struct {
	SpeedX       float64
	SpeedY       float64
	MoveX        float64 // input intent, -1..1
	Acceleration float64
	Friction     float64
	MaxSpeed     float64
	Gravity      float64
	Kinematic    bool // frozen bodies ignore velocity and gravity
	OnGround     bool
}

// Constraints returns the current freezable settings.
func (p *PhysicsData) Constraints() Constraints {
	return Constraints{Kinematic: p.Kinematic, Gravity: p.Gravity}
}

// Restore puts back previously captured settings.
func (p *PhysicsData) Restore(c Constraints) {
	p.Kinematic = c.Kinematic
	p.Gravity = c.Gravity
}

// Stop zeroes velocity.
func (p *PhysicsData) Stop() {
	p.SpeedX = 0
	p.SpeedY = 0
}

var Physics = donburi.NewComponentType[PhysicsData]()
