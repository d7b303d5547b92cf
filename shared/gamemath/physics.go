// Package gamemath holds the scalar motion helpers shared by the simulation.
package gamemath

import "math"

// ApplyFriction reduces speed toward zero by friction amount without
// crossing zero.
func ApplyFriction(speedX, friction float64) float64 {
	if speedX > friction {
		return speedX - friction
	}
	if speedX < -friction {
		return speedX + friction
	}
	return 0
}

// ClampSpeed clamps a value to [-limit, limit].
func ClampSpeed(speed, limit float64) float64 {
	if speed > limit {
		return limit
	}
	if speed < -limit {
		return -limit
	}
	return speed
}

// Sign returns -1, 0 or 1. Values within eps of zero count as zero.
func Sign(v, eps float64) float64 {
	if math.Abs(v) <= eps {
		return 0
	}
	if v < 0 {
		return -1
	}
	return 1
}
