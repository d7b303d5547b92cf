package systems

import (
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePhysics runs as many fixed physics steps as the frame has paid for.
// Speeds are in pixels per step.
func UpdatePhysics(ecs *ecs.ECS) {
	clockEntry, ok := components.Clock.First(ecs.World)
	if !ok {
		return
	}
	clock := components.Clock.Get(clockEntry)
	step := cfg.Combat.FixedStep
	if step <= 0 {
		return
	}
	clock.Accumulator += clock.Delta
	for clock.Accumulator >= step {
		clock.Accumulator -= step
		stepPhysics(ecs.World)
	}
}

func stepPhysics(w donburi.World) {
	tags.Actor.Each(w, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)
		if physics.Kinematic {
			return
		}

		// Input only drives movement while nothing holds a lock.
		if physics.MoveX != 0 && !IsLocked(e) && !IsDead(e) {
			physics.SpeedX += physics.MoveX * physics.Acceleration
			components.Actor.Get(e).SetFacingX(physics.MoveX)
		} else {
			physics.SpeedX = gamemath.ApplyFriction(physics.SpeedX, physics.Friction)
		}

		// Knockback may exceed the walking speed.
		if !hitstunned(e) {
			physics.SpeedX = gamemath.ClampSpeed(physics.SpeedX, physics.MaxSpeed)
		}
		physics.SpeedY += physics.Gravity

		moveHorizontal(physics, obj.Object)
		moveVertical(physics, obj.Object)
		obj.Update()
	})
}

// moveHorizontal stops the body at walls and the arena edges.
func moveHorizontal(physics *components.PhysicsData, object *resolv.Object) {
	dx := physics.SpeedX
	if dx == 0 {
		return
	}
	if check := object.Check(dx, 0, tags.ResolvSolid); check != nil {
		if walls := check.ObjectsByTags(tags.ResolvSolid); len(walls) > 0 {
			dx = check.ContactWithObject(walls[0]).X()
			physics.SpeedX = 0
		}
	}
	object.X += dx

	maxX := float64(cfg.Arena.Width) - object.W
	if object.X < 0 {
		object.X = 0
		physics.SpeedX = 0
	} else if object.X > maxX {
		object.X = maxX
		physics.SpeedX = 0
	}
}

// moveVertical lands the body on the arena floor.
func moveVertical(physics *components.PhysicsData, object *resolv.Object) {
	dy := physics.SpeedY
	floor := cfg.Arena.FloorY - object.H
	if object.Y+dy >= floor {
		object.Y = floor
		physics.SpeedY = 0
		physics.OnGround = true
		return
	}
	physics.OnGround = false
	object.Y += dy
}
