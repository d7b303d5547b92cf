// Command doomerang-combat runs a headless bot duel in the combat arena and
// logs every combat notification. It is the quickest way to watch tuning
// changes play out without a server. With -connect it instead joins a running
// server as a scripted player.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/observability"
	"github.com/automoto/doomerang-combat/scenes"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"go.uber.org/zap"
)

func main() {
	left := flag.String("left", config.ProfilePlayer, "Profile of the left fighter")
	right := flag.String("right", config.ProfileGuard, "Profile of the right fighter")
	difficulty := flag.String("difficulty", "normal", "Bot difficulty: easy, normal, hard")
	duration := flag.Duration("duration", 60*time.Second, "Simulated time limit")
	tickRate := flag.Int("tickrate", 60, "Simulation ticks per simulated second")
	profiles := flag.String("profiles", "", "Optional YAML profile file")
	level := flag.String("log-level", "info", "Log level")
	format := flag.String("log-format", "console", "Log format: json or console")
	connect := flag.String("connect", "", "Join the server at host:port instead of running a local duel")
	name := flag.String("name", "sparring-partner", "Player name when connecting")
	flag.Parse()

	logger, err := observability.NewLogger(config.LoggingConfig{Level: *level, Format: *format}, "duel")
	if err != nil {
		fmt.Fprintf(os.Stderr, "duel: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *connect != "" {
		if err := runRemote(logger, *connect, *name, *left, *duration); err != nil {
			logger.Error("remote session failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := runDuel(logger, duelOptions{
		left:       *left,
		right:      *right,
		difficulty: *difficulty,
		duration:   *duration,
		tickRate:   *tickRate,
		profiles:   *profiles,
	}); err != nil {
		logger.Error("duel failed", zap.Error(err))
		os.Exit(1)
	}
}

type duelOptions struct {
	left, right string
	difficulty  string
	duration    time.Duration
	tickRate    int
	profiles    string
}

func runDuel(logger *zap.Logger, opts duelOptions) error {
	if opts.profiles != "" {
		if err := config.LoadProfiles(opts.profiles); err != nil {
			return err
		}
	}
	if opts.tickRate < 1 {
		return fmt.Errorf("tick rate must be >= 1, got %d", opts.tickRate)
	}
	diff, ok := config.ParseBotDifficulty(opts.difficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q", opts.difficulty)
	}
	for _, name := range []string{opts.left, opts.right} {
		if _, known := config.Profiles[name]; !known {
			return fmt.Errorf("unknown profile %q", name)
		}
	}

	arena := scenes.NewArena(logger.Named("arena"))
	spawn := func(name string, team int, x, face float64) {
		p := config.Profile(name)
		arena.Spawn(p, x, config.Arena.FloorY-p.CollisionHeight, factory.ActorOptions{
			Name:   fmt.Sprintf("%s-%d", name, team),
			Team:   team,
			Role:   factory.RoleEnemy,
			FaceX:  face,
			Bot:    systems.NewRangeBot(diff),
			BotDif: diff,
		})
	}
	spawn(opts.left, 0, float64(config.Arena.Width)/2-80, 1)
	spawn(opts.right, 1, float64(config.Arena.Width)/2+48, -1)

	counts := make(map[string]int)
	deaths := 0
	arena.Subscribe(func(n systems.Notification) {
		counts[n.Tag]++
		if n.Tag == systems.NotifyDeath {
			deaths++
		}
		logger.Info("notification",
			zap.String("tag", n.Tag),
			zap.Uint32("source", uint32(n.Source.Id())),
			zap.Uint32("target", uint32(n.Target.Id())),
			zap.Float64("amount", n.Amount),
			zap.Duration("at", n.At))
	})

	step := time.Second / time.Duration(opts.tickRate)
	for arena.Now() < opts.duration && deaths == 0 {
		arena.Update(step)
	}

	for _, e := range arena.Actors() {
		a := components.Actor.Get(e)
		r := components.Resources.Get(e)
		logger.Info("fighter",
			zap.String("name", a.Name),
			zap.Float64("health", r.Health),
			zap.Float64("stamina", r.Stamina),
			zap.Bool("dead", components.Death.Get(e).Dead))
	}
	logger.Info("duel finished",
		zap.Duration("elapsed", arena.Now()),
		zap.Uint64("ticks", arena.Tick()),
		zap.Any("notifications", counts))
	return nil
}
