package config

import "time"

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay    time.Duration // Time between decisions
	AttackRange      float64       // Distance to start attacking
	ChaseRange       float64       // Distance to start chasing
	RetreatThreshold float64       // Health fraction to start guarding instead of attacking
	BlockHold        time.Duration // How long a defensive block is held
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay:    500 * time.Millisecond,
				AttackRange:      40.0,
				ChaseRange:       150.0,
				RetreatThreshold: 0.2,
				BlockHold:        300 * time.Millisecond,
			},
			BotDifficultyNormal: {
				ReactionDelay:    250 * time.Millisecond,
				AttackRange:      44.0,
				ChaseRange:       200.0,
				RetreatThreshold: 0.3,
				BlockHold:        400 * time.Millisecond,
			},
			BotDifficultyHard: {
				ReactionDelay:    80 * time.Millisecond,
				AttackRange:      48.0,
				ChaseRange:       250.0,
				RetreatThreshold: 0.15,
				BlockHold:        500 * time.Millisecond,
			},
		},
	}
}
