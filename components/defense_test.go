package components

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	dmath "github.com/yohamta/donburi/features/math"
	"pgregory.net/rapid"
)

var (
	right = dmath.Vec2{X: 1}
	left  = dmath.Vec2{X: -1}
)

func blocking(pressedAt time.Duration) *DefenseData {
	return &DefenseData{
		State:          DefenseBlocking,
		IsBlocking:     true,
		BlockHeld:      true,
		BlockPressedAt: pressedAt,
		ParryWindow:    150 * time.Millisecond,
		GuardAngle:     120,
	}
}

func TestEvaluateNotBlocking(t *testing.T) {
	d := &DefenseData{GuardAngle: 120, ParryWindow: time.Second}
	assert.Equal(t, GuardNone, d.Evaluate(0, right, right, true))
}

func TestEvaluateFromBehind(t *testing.T) {
	d := blocking(0)
	assert.Equal(t, GuardNone, d.Evaluate(10*time.Millisecond, right, left, true))
}

func TestEvaluateParryWindowBoundary(t *testing.T) {
	d := blocking(time.Second)
	assert.Equal(t, GuardParry, d.Evaluate(time.Second+150*time.Millisecond, right, right, true))
	assert.Equal(t, GuardBlock, d.Evaluate(time.Second+151*time.Millisecond, right, right, true))
}

func TestEvaluateIgnoresBlockPressedAfterHit(t *testing.T) {
	d := blocking(160 * time.Millisecond)
	assert.Equal(t, GuardNone, d.Evaluate(155*time.Millisecond, right, right, true))
	assert.Equal(t, GuardParry, d.Evaluate(160*time.Millisecond, right, right, true))
}

func TestEvaluateUnparryable(t *testing.T) {
	d := blocking(0)
	assert.Equal(t, GuardBlock, d.Evaluate(0, right, right, false))
}

func TestEvaluateGuardCone(t *testing.T) {
	d := blocking(0)
	// 59 degrees off-axis is inside a 120 degree cone, 61 is outside.
	inside := dmath.Vec2{X: math.Cos(59 * math.Pi / 180), Y: math.Sin(59 * math.Pi / 180)}
	outside := dmath.Vec2{X: math.Cos(61 * math.Pi / 180), Y: math.Sin(61 * math.Pi / 180)}
	assert.Equal(t, GuardBlock, d.Evaluate(time.Second, right, inside, true))
	assert.Equal(t, GuardNone, d.Evaluate(time.Second, right, outside, true))
}

func TestPropertyParryWindow(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		window := time.Duration(rapid.Int64Range(1, int64(time.Second)).Draw(t, "window"))
		pressedAt := time.Duration(rapid.Int64Range(0, int64(time.Hour)).Draw(t, "pressedAt"))
		delta := time.Duration(rapid.Int64Range(0, int64(2*time.Second)).Draw(t, "delta"))

		d := blocking(pressedAt)
		d.ParryWindow = window
		got := d.Evaluate(pressedAt+delta, right, right, true)

		want := GuardBlock
		if delta <= window {
			want = GuardParry
		}
		if got != want {
			t.Fatalf("delta %v window %v: got %v want %v", delta, window, got, want)
		}
	})
}

func TestEvaluateHasNoSideEffects(t *testing.T) {
	d := blocking(0)
	before := *d
	d.Evaluate(50*time.Millisecond, right, right, true)
	assert.Equal(t, before, *d)
}

func TestActionLockNeverShortens(t *testing.T) {
	var a ActionLockData
	a.Extend(0, time.Second)
	a.Extend(100*time.Millisecond, 200*time.Millisecond)
	assert.Equal(t, time.Second, a.Until)
	assert.True(t, a.Active(999*time.Millisecond))
	assert.False(t, a.Active(time.Second))

	a.Extend(900*time.Millisecond, time.Second)
	assert.Equal(t, 1900*time.Millisecond, a.Until)
}

func TestSetFacingXIgnoresZero(t *testing.T) {
	a := ActorData{}
	a.SetFacingX(-3)
	a.SetFacingX(0)
	assert.Equal(t, -1.0, a.Facing.X)
	assert.Equal(t, -1.0, a.LastFacingX)
}
