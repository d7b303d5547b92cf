package systems

import (
	"time"

	"github.com/automoto/doomerang-combat/components"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Now returns the arena clock. Worlds without a clock are at time zero.
func Now(w donburi.World) time.Duration {
	if e, ok := components.Clock.First(w); ok {
		return components.Clock.Get(e).Now
	}
	return 0
}

func frameDelta(w donburi.World) time.Duration {
	if e, ok := components.Clock.First(w); ok {
		return components.Clock.Get(e).Delta
	}
	return 0
}

func logger(w donburi.World) *zap.Logger {
	if e, ok := components.Arena.First(w); ok {
		if l := components.Arena.Get(e).Logger; l != nil {
			return l
		}
	}
	return zap.NewNop()
}

func space(w donburi.World) *resolv.Space {
	if e, ok := components.Space.First(w); ok {
		return components.Space.Get(e)
	}
	return nil
}

// valid reports whether e is a live actor. Operations on anything else are no-ops.
func valid(e *donburi.Entry) bool {
	return e != nil && e.Valid() && e.HasComponent(components.Actor)
}

func actorField(e *donburi.Entry) zap.Field {
	return zap.String("actor", components.Actor.Get(e).Name)
}
