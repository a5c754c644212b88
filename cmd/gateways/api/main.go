package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	config "github.com/xilidan/echotube/config/api"
	"github.com/xilidan/echotube/gateways/api"
	"github.com/xilidan/echotube/pkg/logger"
)

func main() {
	log := logger.Default()
	log.Info("initializing api gateway")

	log.Debug("loading configuration")
	cfg := config.MustLoad()

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warn("falling back to info level", slog.String("error", err.Error()))
	}
	log = logger.New(logger.Config{
		Level:      level,
		Output:     os.Stderr,
		AddSource:  true,
		JSONFormat: cfg.Log.JSON,
	})
	log.Info("logger configured",
		slog.String("level", level.String()),
		slog.Bool("add_source", true),
		slog.Bool("json_format", cfg.Log.JSON))

	log.Info("configuration loaded successfully",
		slog.Int("port", cfg.Port),
		slog.Int("api_version", cfg.APIVersion),
		slog.String("default_language", cfg.DefaultLanguage),
		slog.String("youtube_base_url", cfg.YouTube.BaseURL),
		slog.Duration("youtube_timeout", cfg.YouTube.Timeout))

	ctx := logger.WithContext(context.Background(), log)

	log.Info("setting up signal handling for graceful shutdown")
	rootCtx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM, os.Interrupt)
	defer func() {
		log.Info("canceling root context")
		cancel()
	}()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("application terminated with error", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}
	log.Info("application terminated successfully")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	srv, err := api.New(cfg, log)
	if err != nil {
		log.Error("server initialization failed",
			slog.String("error", err.Error()),
			slog.String("error_type", "server_creation"))
		return err
	}
	log.Info("api server instance created successfully")

	if err := srv.Start(ctx); err != nil {
		log.Error("server start failed", slog.String("error", err.Error()))
		return err
	}
	log.Info("server started and stopped gracefully")
	return nil
}
