package netcomponents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLerpNetPosition(t *testing.T) {
	from := NetPositionData{X: 10, Y: 100}
	to := NetPositionData{X: 30, Y: 80}

	assert.Equal(t, &NetPositionData{X: 10, Y: 100}, LerpNetPosition(from, to, 0))
	assert.Equal(t, &NetPositionData{X: 20, Y: 90}, LerpNetPosition(from, to, 0.5))
	assert.Equal(t, &NetPositionData{X: 30, Y: 80}, LerpNetPosition(from, to, 1))
}

func TestLerpClampsOvershoot(t *testing.T) {
	from := NetVelocityData{SpeedX: -2}
	to := NetVelocityData{SpeedX: 4, SpeedY: 1}

	assert.Equal(t, &NetVelocityData{SpeedX: 4, SpeedY: 1}, LerpNetVelocity(from, to, 1.7))
	assert.Equal(t, &NetVelocityData{SpeedX: -2}, LerpNetVelocity(from, to, -0.3))
}

func TestPropertyLerpStaysBetweenSnapshots(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(-1000, 1000).Draw(t, "a")
		b := rapid.Float64Range(-1000, 1000).Draw(t, "b")
		f := rapid.Float64Range(-2, 3).Draw(t, "t")

		got := LerpNetPosition(NetPositionData{X: a}, NetPositionData{X: b}, f).X
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}
		if got < lo-1e-9 || got > hi+1e-9 {
			t.Fatalf("lerp(%v, %v, %v) = %v outside [%v, %v]", a, b, f, got, lo, hi)
		}
	})
}
