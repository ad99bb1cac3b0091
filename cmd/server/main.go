package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/nfl-draft-service/internal/config"
	"github.com/preston-bernstein/nfl-draft-service/internal/logging"
	"github.com/preston-bernstein/nfl-draft-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	// A missing .env is normal outside local development.
	envErr := godotenv.Load()

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "nfl-draft-service",
		Version: appVersion,
	})
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("failed to load .env", "error", envErr)
	}

	cfg := config.Load(logger)
	logger.Info("configuration loaded",
		logging.FieldSeason, cfg.Draft.Season(),
		"provider", cfg.Provider,
		"rounds", cfg.Draft.Rounds,
		"simulate_live", cfg.Draft.SimulateLive,
		"cache_backend", cfg.Cache.Backend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
