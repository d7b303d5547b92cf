package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerSettings holds the dedicated server's listener settings.
type ServerSettings struct {
	// Name is shown to clients on join.
	Name string `mapstructure:"name"`
	// Port is the websocket port.
	Port int `mapstructure:"port"`
	// TickRate is the number of simulation ticks per second.
	TickRate int `mapstructure:"tick_rate"`
	// MetricsAddr is the bind address of the metrics and health HTTP endpoint.
	MetricsAddr string `mapstructure:"metrics_addr"`
	// MaxCommandsPerSecond limits command messages per client.
	MaxCommandsPerSecond float64 `mapstructure:"max_commands_per_second"`
	// CommandBurst is the limiter burst size.
	CommandBurst int `mapstructure:"command_burst"`
	// MaxPlayers caps concurrent clients.
	MaxPlayers int `mapstructure:"max_players"`
	// ShutdownTimeout bounds graceful shutdown of the HTTP endpoint.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// MasterURL is the optional server browser to register with. Empty disables registration.
	MasterURL string `mapstructure:"master_url"`
	// AdvertiseAddr is the address the server browser hands to clients.
	AdvertiseAddr string `mapstructure:"advertise_addr"`
	// Region is shown in the server browser.
	Region string `mapstructure:"region"`
	// HeartbeatInterval is how often the master is told the server is alive.
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ArenaSettings selects what the server spawns.
type ArenaSettings struct {
	// ProfilesFile is an optional YAML file merged over the built-in profiles.
	ProfilesFile string `mapstructure:"profiles_file"`
	// PlayerProfile is the profile given to connecting clients.
	PlayerProfile string `mapstructure:"player_profile"`
	// Enemies lists profile names of AI actors spawned at start.
	Enemies []string `mapstructure:"enemies"`
	// BotDifficulty is one of "easy", "normal", "hard".
	BotDifficulty string `mapstructure:"bot_difficulty"`
}

// Config is the top-level server configuration.
type Config struct {
	Server  ServerSettings `mapstructure:"server"`
	Logging LoggingConfig  `mapstructure:"logging"`
	Arena   ArenaSettings  `mapstructure:"arena"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateArena(c.Arena); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerSettings) error {
	var errs []string
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", s.Port))
	}
	if s.TickRate < 1 || s.TickRate > 240 {
		errs = append(errs, fmt.Sprintf("server.tick_rate must be 1-240, got %d", s.TickRate))
	}
	if s.MetricsAddr == "" {
		errs = append(errs, "server.metrics_addr must not be empty")
	}
	if s.MaxCommandsPerSecond <= 0 {
		errs = append(errs, fmt.Sprintf("server.max_commands_per_second must be > 0, got %v", s.MaxCommandsPerSecond))
	}
	if s.CommandBurst < 1 {
		errs = append(errs, fmt.Sprintf("server.command_burst must be >= 1, got %d", s.CommandBurst))
	}
	if s.MaxPlayers < 1 {
		errs = append(errs, fmt.Sprintf("server.max_players must be >= 1, got %d", s.MaxPlayers))
	}
	if s.MasterURL != "" && s.AdvertiseAddr == "" {
		errs = append(errs, "server.advertise_addr is required when server.master_url is set")
	}
	if s.MasterURL != "" && s.HeartbeatInterval <= 0 {
		errs = append(errs, fmt.Sprintf("server.heartbeat_interval must be > 0, got %v", s.HeartbeatInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateArena(a ArenaSettings) error {
	if a.PlayerProfile == "" {
		return errors.New("arena.player_profile must not be empty")
	}
	if _, ok := ParseBotDifficulty(a.BotDifficulty); !ok {
		return fmt.Errorf("arena.bot_difficulty must be one of [easy, normal, hard], got %q", a.BotDifficulty)
	}
	return nil
}

// ParseBotDifficulty converts a config name to a BotDifficulty.
func ParseBotDifficulty(name string) (BotDifficulty, bool) {
	switch name {
	case "easy":
		return BotDifficultyEasy, true
	case "normal":
		return BotDifficultyNormal, true
	case "hard":
		return BotDifficultyHard, true
	}
	return BotDifficultyNormal, false
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and environment only.
//
// Precondition: path is empty or names a readable YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DOOMERANG_ prefix
	v.SetEnvPrefix("DOOMERANG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "Doomerang Arena")
	v.SetDefault("server.port", 7373)
	v.SetDefault("server.tick_rate", 60)
	v.SetDefault("server.metrics_addr", "127.0.0.1:9090")
	v.SetDefault("server.max_commands_per_second", 30)
	v.SetDefault("server.command_burst", 10)
	v.SetDefault("server.max_players", 8)
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.master_url", "")
	v.SetDefault("server.region", "local")
	v.SetDefault("server.heartbeat_interval", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("arena.player_profile", ProfilePlayer)
	v.SetDefault("arena.enemies", []string{ProfileGuard})
	v.SetDefault("arena.bot_difficulty", "normal")
}
