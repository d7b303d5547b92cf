package components

import "github.com/yohamta/donburi"

// AnimationSink receives animation cues. Playback happens elsewhere.
type AnimationSink interface {
	Trigger(name string)
	SetBool(name string, value bool)
}

// AnimationData routes an actor's cues to its sink. A nil sink drops cues.
type AnimationData struct {
	Sink     AnimationSink
	LastCue  string
	Bools    map[string]bool
	CueCount int
}

// Trigger fires a one-shot cue.
func (a *AnimationData) Trigger(name string) {
	a.LastCue = name
	a.CueCount++
	if a.Sink != nil {
		a.Sink.Trigger(name)
	}
}

// SetBool sets a persistent animation flag, forwarding only changes.
func (a *AnimationData) SetBool(name string, value bool) {
	if a.Bools == nil {
		a.Bools = make(map[string]bool)
	}
	if prev, ok := a.Bools[name]; ok && prev == value {
		return
	}
	a.Bools[name] = value
	if a.Sink != nil {
		a.Sink.SetBool(name, value)
	}
}

var Animation = donburi.NewComponentType[AnimationData]()
