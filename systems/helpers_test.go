package systems_test

import (
	"time"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/scenes"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

const frame = 10 * time.Millisecond

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// recorder is an animation sink that keeps every cue.
type recorder struct {
	cues  []string
	bools map[string]bool
}

func (r *recorder) Trigger(name string) { r.cues = append(r.cues, name) }

func (r *recorder) SetBool(name string, v bool) {
	if r.bools == nil {
		r.bools = make(map[string]bool)
	}
	r.bools[name] = v
}

func (r *recorder) has(name string) bool {
	for _, c := range r.cues {
		if c == name {
			return true
		}
	}
	return false
}

type fixture struct {
	arena  *scenes.Arena
	events []systems.Notification
}

func newFixture() *fixture {
	f := &fixture{arena: scenes.NewArena(nil)}
	f.arena.Subscribe(func(n systems.Notification) {
		f.events = append(f.events, n)
	})
	return f
}

// spawn places an actor standing on the floor with its left edge at x.
func (f *fixture) spawn(profile string, x float64, team int, faceX float64) (*donburi.Entry, *recorder) {
	p := config.Profile(profile)
	rec := &recorder{}
	e := f.arena.Spawn(p, x, config.Arena.FloorY-p.CollisionHeight, factory.ActorOptions{
		Team:  team,
		FaceX: faceX,
		Sink:  rec,
	})
	return e, rec
}

// press queues a button edge for the actor at an absolute arena time.
func (f *fixture) press(e *donburi.Entry, action config.ActionID, pressed bool, at time.Duration) {
	f.arena.Submit(e.Entity(), components.Command{Action: action, Pressed: pressed, At: at})
}

// runUntil advances the arena in fixed frames until it reaches at.
func (f *fixture) runUntil(at time.Duration) {
	for f.arena.Now() < at {
		f.arena.Update(frame)
	}
}

func (f *fixture) count(tag string) int {
	n := 0
	for _, ev := range f.events {
		if ev.Tag == tag {
			n++
		}
	}
	return n
}

func hitFrom(attacker, defender *donburi.Entry, damage float64, parryable bool) systems.Hit {
	a := components.Object.Get(attacker)
	d := components.Object.Get(defender)
	dir := dmath.Vec2{X: 1}
	if d.CenterX() < a.CenterX() {
		dir.X = -1
	}
	return systems.Hit{
		Attacker:      attacker,
		Defender:      defender,
		BaseDamage:    damage,
		BaseKnockback: 3,
		Hitstun:       ms(200),
		Direction:     dir,
		Parryable:     parryable,
	}
}
