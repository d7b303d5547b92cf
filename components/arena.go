package components

import (
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// ArenaData carries arena-wide services for systems.
type ArenaData struct {
	Logger *zap.Logger
}

var Arena = donburi.NewComponentType[ArenaData]()
