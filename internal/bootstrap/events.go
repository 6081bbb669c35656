package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/JackpotEngine_Go/internal/config"
	"github.com/osse101/JackpotEngine_Go/internal/discord"
	"github.com/osse101/JackpotEngine_Go/internal/event"
	"github.com/osse101/JackpotEngine_Go/internal/metrics"
	"github.com/osse101/JackpotEngine_Go/internal/sse"
	"github.com/osse101/JackpotEngine_Go/internal/worker"
)

// EventSystem holds the bus and every subscriber attached to it
type EventSystem struct {
	Bus           event.Bus
	Hub           *sse.Hub
	AnnouncerPool *worker.Pool
}

// InitializeEventSystem creates the bus and registers subscribers in delivery order:
// metrics, the SSE gateway, then the Discord announcer when a token is configured.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()

	sys := &EventSystem{Bus: bus, Hub: hub}

	if cfg.DiscordToken == "" {
		slog.Info(LogMsgAnnouncerDisabled)
	} else {
		session, err := discord.NewSession(cfg.DiscordToken)
		if err != nil {
			hub.Stop()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscord, err)
		}
		pool := worker.NewPool(AnnouncerWorkers, AnnouncerQueueSize).WithJobTimeout(AnnouncerJobTimeout)
		pool.Start()
		discord.NewAnnouncer(session, cfg.DiscordChannelID, cfg.DiscordLocale, pool).Subscribe(bus)
		sys.AnnouncerPool = pool
	}

	slog.Info(LogMsgEventSystemInitialized, "announcer", sys.AnnouncerPool != nil)
	return sys, nil
}
