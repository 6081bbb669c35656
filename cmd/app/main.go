package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/JackpotEngine_Go/docs"
	"github.com/osse101/JackpotEngine_Go/internal/bootstrap"
	"github.com/osse101/JackpotEngine_Go/internal/config"
	"github.com/osse101/JackpotEngine_Go/internal/handler"
	"github.com/osse101/JackpotEngine_Go/internal/server"
)

// @title JackpotEngine API
// @version 1.0
// @description Provably fair jackpot rounds: deposits, draws, history and a live event stream.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 15 * time.Second

func main() {
	if err := config.ValidateEnv(); err != nil {
		slog.Warn("Environment check failed", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logger", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if warnings, err := config.ValidateEnvWithWarnings(); err == nil {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	handler.Version = cfg.Version
	docs.SwaggerInfo.Version = cfg.Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	archive, err := bootstrap.OpenArchive(ctx, cfg)
	if err != nil {
		return err
	}

	resolver, err := bootstrap.NewResolver(cfg)
	if err != nil {
		archive.Close()
		return err
	}

	checker, err := bootstrap.NewChecker(ctx, cfg)
	if err != nil {
		archive.Close()
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		archive.Close()
		return err
	}

	engine, err := bootstrap.StartEngine(ctx, cfg, archive.Store, checker, events.Bus)
	if err != nil {
		bootstrap.GracefulShutdown(context.Background(), bootstrap.ShutdownComponents{Events: events, Archive: archive})
		return err
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit:      cfg.RateLimit,
	}, engine, resolver, events.Hub, map[string]handler.HealthChecker{
		bootstrap.HealthCheckArchive: archive.Health,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Engine:  engine,
		Events:  events,
		Archive: archive,
	})
	return err
}
