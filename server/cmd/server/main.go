package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/observability"
	"github.com/automoto/doomerang-combat/server/core"
	"github.com/automoto/doomerang-combat/shared/protocol"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (empty = defaults and DOOMERANG_* env)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging, "combat-server")
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Arena.ProfilesFile != "" {
		if err := config.LoadProfiles(cfg.Arena.ProfilesFile); err != nil {
			return fmt.Errorf("loading profiles: %w", err)
		}
		logger.Info("profiles loaded", zap.String("file", cfg.Arena.ProfilesFile), zap.Int("count", len(config.Profiles)))
	}

	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("registering components: %w", err)
	}

	server, err := core.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
		logger.Sync()
		os.Exit(0)
	}()

	return server.Start()
}
