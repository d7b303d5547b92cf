package config

import "fmt"

// ActionID represents a logical combat action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionAttack
	ActionBlock
	ActionCharge
	ActionSkill1
	ActionSkill2
	ActionSkill3
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionNone:      "none",
	ActionMoveLeft:  "move_left",
	ActionMoveRight: "move_right",
	ActionAttack:    "attack",
	ActionBlock:     "block",
	ActionCharge:    "charge",
	ActionSkill1:    "skill1",
	ActionSkill2:    "skill2",
	ActionSkill3:    "skill3",
}

func (a ActionID) String() string {
	if a < 0 || a >= ActionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// SkillSlot returns the zero-based skill slot for a skill action.
func (a ActionID) SkillSlot() (int, bool) {
	if a >= ActionSkill1 && a <= ActionSkill3 {
		return int(a - ActionSkill1), true
	}
	return 0, false
}

// ParseAction converts a wire or script name to an ActionID.
func ParseAction(name string) (ActionID, error) {
	for id, n := range actionNames {
		if n == name {
			return ActionID(id), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}
