package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/master"
	"github.com/automoto/doomerang-combat/observability"
	"go.uber.org/zap"
)

func main() {
	port := flag.Int("port", 8080, "HTTP listen port")
	ttl := flag.Duration("ttl", 90*time.Second, "Server TTL before expiry")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger, err := observability.NewLogger(config.LoggingConfig{Level: *level, Format: "json"}, "master")
	if err != nil {
		fmt.Fprintf(os.Stderr, "master: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	reg := master.NewRegistry(*ttl, logger)
	defer reg.Stop()

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting", zap.String("addr", addr), zap.Duration("ttl", *ttl))
	srv := &http.Server{
		Addr:              addr,
		Handler:           master.NewRouter(reg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("master stopped", zap.Error(err))
	}
}
