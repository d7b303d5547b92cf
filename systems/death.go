package systems

import (
	"github.com/automoto/doomerang-combat/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// UpdateDeaths removes dead actors whose corpse timer has run out. Actors
// without a removal time stay until revived.
func UpdateDeaths(ecs *ecs.ECS) {
	now := Now(ecs.World)
	var expired []*donburi.Entry
	components.Death.Each(ecs.World, func(e *donburi.Entry) {
		death := components.Death.Get(e)
		if death.Dead && death.RemoveAt > 0 && now >= death.RemoveAt {
			expired = append(expired, e)
		}
	})

	sp := space(ecs.World)
	for _, e := range expired {
		logger(ecs.World).Info("actor removed", actorField(e), zap.Duration("died", components.Death.Get(e).At))
		if obj := components.Object.Get(e); sp != nil && obj.Object != nil {
			sp.Remove(obj.Object)
		}
		ecs.World.Remove(e.Entity())
	}
}
