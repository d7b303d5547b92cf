package components

import (
	"time"

	"github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// SkillCastData tracks the skill being cast, if any.
type SkillCastData struct {
	Active bool
	Slot   int
	Skill  config.Skill
	EndsAt time.Duration
}

var SkillCast = donburi.NewComponentType[SkillCastData]()
