package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/JackpotEngine_Go/internal/round"
	"github.com/osse101/JackpotEngine_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Engine  round.Service
	Events  *EventSystem
	Archive *Archive
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Round engine (settle a drawn round, abort an open one, stop timers)
// 3. Announcer pool and SSE hub (drain subscribers of the final events)
// 4. Archive
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Engine != nil {
		slog.Info(LogMsgShuttingDownEngine)
		if err := components.Engine.Shutdown(ctx); err != nil {
			slog.Error(LogMsgEngineShutdownFailed, "error", err)
		}
	}

	if components.Events != nil {
		if components.Events.AnnouncerPool != nil {
			components.Events.AnnouncerPool.Stop()
		}
		components.Events.Hub.Stop()
	}

	if components.Archive != nil {
		if err := components.Archive.Close(); err != nil {
			slog.Error(LogMsgArchiveCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
