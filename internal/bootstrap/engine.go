package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/JackpotEngine_Go/internal/archive"
	"github.com/osse101/JackpotEngine_Go/internal/config"
	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/event"
	"github.com/osse101/JackpotEngine_Go/internal/inventory"
	"github.com/osse101/JackpotEngine_Go/internal/round"
	"github.com/osse101/JackpotEngine_Go/internal/worker"
)

// PolicyFromConfig maps ROUND_* settings onto a round policy
func PolicyFromConfig(cfg *config.Config) round.Policy {
	return round.Policy{
		MinParticipants:    cfg.MinParticipants,
		Countdown:          cfg.Countdown,
		MaxParticipants:    cfg.MaxParticipants,
		MaxPot:             domain.Cents(cfg.MaxPotCents),
		MaxItemsPerDeposit: cfg.MaxItemsPerDeposit,
		RevealLead:         cfg.RevealLead,
		RevealDuration:     cfg.RevealDuration,
		CommissionBps:      cfg.CommissionBps,
	}
}

// StartEngine builds the round service on its own timer worker and opens the first round
func StartEngine(ctx context.Context, cfg *config.Config, store archive.Store, checker inventory.Checker, bus event.Bus) (round.Service, error) {
	svc := round.NewService(PolicyFromConfig(cfg), store, checker, bus, worker.NewTimers(TimersName))
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedStartEngine, err)
	}
	return svc, nil
}
