package factory

import (
	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// defaultCell is used when the arena config leaves the cell size unset.
const defaultCell = 16

// CreateSpace adds the arena's collision space singleton. Actor bodies, walls
// and attack hitboxes all live in it.
func CreateSpace(ecs *ecs.ECS, arena cfg.ArenaConfig) *donburi.Entry {
	cellW, cellH := arena.CellWidth, arena.CellHeight
	if cellW <= 0 {
		cellW = defaultCell
	}
	if cellH <= 0 {
		cellH = defaultCell
	}
	space := archetypes.Space.Spawn(ecs)
	components.Space.Set(space, resolv.NewSpace(arena.Width, arena.Height, cellW, cellH))
	return space
}
