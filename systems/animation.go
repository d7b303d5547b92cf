package systems

import (
	"github.com/automoto/doomerang-combat/components"
	"github.com/yohamta/donburi"
)

func cue(e *donburi.Entry, name string) {
	if name == "" || !e.HasComponent(components.Animation) {
		return
	}
	components.Animation.Get(e).Trigger(name)
}

func cueBool(e *donburi.Entry, name string, v bool) {
	if !e.HasComponent(components.Animation) {
		return
	}
	components.Animation.Get(e).SetBool(name, v)
}
