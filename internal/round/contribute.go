package round

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/event"
	"github.com/osse101/JackpotEngine_Go/internal/ledger"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
	"github.com/osse101/JackpotEngine_Go/internal/metrics"
)

// Contribute values the requested items and admits them to the open round as one unit.
// Inventory lookups run without the engine lock; admission and trigger evaluation run with it.
func (s *service) Contribute(ctx context.Context, who domain.Identity, req ContributeRequest) (domain.Round, error) {
	log := logger.FromContext(ctx)

	view, err := s.contribute(ctx, who, req)
	if err != nil {
		metrics.ContributionsRejected.WithLabelValues(rejectReason(err)).Inc()
		log.Debug(LogMsgContributionError, "user_id", who.ID, "items", len(req.ItemIDs), "error", err)
		return domain.Round{}, err
	}

	log.Info(LogMsgContribution, "user_id", who.ID, "round_hash", view.Hash, "items", len(req.ItemIDs), "total_value", view.TotalValue)
	return view, nil
}

func (s *service) contribute(ctx context.Context, who domain.Identity, req ContributeRequest) (domain.Round, error) {
	if who.ID == "" {
		return domain.Round{}, fmt.Errorf("%s: %w", ErrContextContribute, domain.ErrUnauthenticated)
	}
	if err := s.validateRequest(req); err != nil {
		return domain.Round{}, err
	}

	r, err := s.precheck(req.ItemIDs)
	if err != nil {
		return domain.Round{}, err
	}

	items := make([]domain.Item, 0, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		item, err := s.checker.Check(ctx, who.ID, id)
		if err != nil {
			return domain.Round{}, fmt.Errorf("%s %s: %w", ErrContextCheckItem, id, err)
		}
		if item.ID != id {
			return domain.Round{}, fmt.Errorf("%s %s: %w", ErrContextCheckItem, id, domain.ErrInvalidItem)
		}
		items = append(items, item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acceptingLocked(); err != nil {
		return domain.Round{}, err
	}

	// Admission goes through the ledger captured before valuation. If the round locked in
	// the meantime its ledger is frozen and the deposit is refused.
	snap, err := r.ledger.AddContribution(ledger.Contribution{
		Identity:   who,
		Items:      items,
		ClientSeed: req.ClientSeed,
	})
	if err != nil {
		return domain.Round{}, err
	}

	s.afterAdmissionLocked(ctx, r, snap)
	return s.viewLocked(r), nil
}

func (s *service) validateRequest(req ContributeRequest) error {
	if len(req.ItemIDs) == 0 {
		return fmt.Errorf("%s: %w: no items", ErrContextContribute, domain.ErrInvalidInput)
	}
	if len(req.ItemIDs) > s.policy.MaxItemsPerDeposit {
		return fmt.Errorf("%s: %w: %d items, limit %d", ErrContextContribute, domain.ErrTooManyItems, len(req.ItemIDs), s.policy.MaxItemsPerDeposit)
	}
	if len(req.ClientSeed) > MaxClientSeedLength {
		return fmt.Errorf("%s: %w: client seed too long", ErrContextContribute, domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		if id == "" || len(id) > MaxItemIDLength {
			return fmt.Errorf("%s: %w: bad item id", ErrContextContribute, domain.ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s: %w: item %s repeated", ErrContextContribute, domain.ErrDuplicateContribution, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// precheck refuses duplicates and closed rounds before any inventory call.
// Duplicates are reported first so a resubmitted item fails the same way in every state.
func (s *service) precheck(ids []string) (*liveRound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.registry.FirstClaimed(ids); ok {
		return nil, fmt.Errorf("%s: %w: item %s", ErrContextContribute, domain.ErrDuplicateContribution, id)
	}
	if err := s.acceptingLocked(); err != nil {
		return nil, err
	}
	r := s.current
	if r == nil || r.status != domain.RoundStatusOpen {
		return nil, fmt.Errorf("%s: %w", ErrContextContribute, domain.ErrRoundClosed)
	}
	return r, nil
}

// afterAdmissionLocked publishes the ledger delta and evaluates lock triggers
func (s *service) afterAdmissionLocked(ctx context.Context, r *liveRound, snap ledger.Snapshot) {
	count := len(snap.Participants)

	trigger := ""
	switch {
	case s.policy.MaxParticipants > 0 && count >= s.policy.MaxParticipants:
		trigger = TriggerMaxParticipants
	case s.policy.MaxPot > 0 && snap.Total >= s.policy.MaxPot:
		trigger = TriggerMaxPot
	case r.countdownEndsAt == nil && count >= s.policy.MinParticipants:
		if s.policy.Countdown <= 0 {
			trigger = TriggerCountdown
		} else {
			s.startCountdownLocked(ctx, r)
		}
	}

	s.publishLocked(ctx, event.NewLedgerUpdatedEvent(s.viewLocked(r)))

	if trigger != "" {
		_ = s.lockLocked(ctx, r, trigger)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateContribution):
		return RejectReasonDuplicate
	case errors.Is(err, domain.ErrRoundClosed):
		return RejectReasonClosed
	case errors.Is(err, domain.ErrInvalidItem):
		return RejectReasonInvalidItem
	case errors.Is(err, domain.ErrTooManyItems):
		return RejectReasonTooManyItems
	case errors.Is(err, domain.ErrInvalidInput):
		return RejectReasonInvalidInput
	case errors.Is(err, domain.ErrEngineHalted):
		return RejectReasonHalted
	case errors.Is(err, domain.ErrEngineStopped):
		return RejectReasonStopped
	case errors.Is(err, domain.ErrUnauthenticated):
		return RejectReasonUnauthenticated
	default:
		return RejectReasonError
	}
}
