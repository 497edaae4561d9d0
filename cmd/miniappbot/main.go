package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/maya-florenko/miniappbot/internal/app"
	"github.com/maya-florenko/miniappbot/internal/config"
	"github.com/maya-florenko/miniappbot/internal/logging"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file (env-only when empty)")
	devMode := flag.Bool("dev", false, "console logs and unredacted secrets")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log, cfg.Runtime.Dev)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	logger.Info().
		Str("token", logging.Redact(cfg.Bot.Token, cfg.Runtime.Dev)).
		Str("webapp_url", cfg.Bot.WebAppURL).
		Msg("starting")

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}

	if err := a.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("stopped")
}
