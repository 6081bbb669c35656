package round

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/archive"
	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/event"
	"github.com/osse101/JackpotEngine_Go/internal/fairness"
	"github.com/osse101/JackpotEngine_Go/internal/inventory"
	"github.com/osse101/JackpotEngine_Go/internal/ledger"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// Service defines the round engine operations
type Service interface {
	Start(ctx context.Context) error
	Current(ctx context.Context) domain.Round
	Halted() bool
	Contribute(ctx context.Context, who domain.Identity, req ContributeRequest) (domain.Round, error)
	ForceLock(ctx context.Context) error
	Resume(ctx context.Context) error
	History(ctx context.Context, limit, offset int) (domain.HistoryPage, error)
	HistoryEntry(ctx context.Context, roundHash string) (*domain.ArchiveEntry, error)
	VerifyRound(ctx context.Context, roundHash string) (fairness.Outcome, error)
	Shutdown(ctx context.Context) error
}

// Scheduler runs keyed, cancellable one-shot callbacks. worker.Timers implements it.
type Scheduler interface {
	Schedule(key string, d time.Duration, fn func(ctx context.Context)) bool
	Cancel(key string) bool
	Shutdown(ctx context.Context) error
}

// ContributeRequest is one deposit of items into the open round
type ContributeRequest struct {
	ItemIDs    []string
	ClientSeed string
}

type drawFunc func(seed, nonce, roundHash string, entries []domain.WeightEntry) (fairness.Outcome, error)

// liveRound is the engine-private state of one round. Guarded by service.mu.
type liveRound struct {
	hash            string
	sequence        int64
	seed            string
	commitment      string
	ledger          *ledger.Ledger
	status          domain.RoundStatus
	nonce           string
	final           ledger.Snapshot
	winnerID        string
	ticket          *int64
	reveal          *domain.Reveal
	countdownEndsAt *time.Time
	commission      domain.Cents
	payout          domain.Cents
	abortReason     string
	createdAt       time.Time
	lockedAt        *time.Time
	drawnAt         *time.Time
	completedAt     *time.Time
}

type service struct {
	mu       sync.Mutex
	policy   Policy
	store    archive.Store
	checker  inventory.Checker
	bus      event.Bus
	timers   Scheduler
	registry *ledger.Registry

	current  *liveRound
	sequence int64
	started  bool
	halted   bool
	stopped  bool

	clock  func() time.Time
	seedFn func() (string, error)
	drawFn drawFunc
	retry  archive.RetryPolicy

	wg sync.WaitGroup // in-flight completions
}

// NewService creates a round engine. Call Start before accepting contributions.
func NewService(policy Policy, store archive.Store, checker inventory.Checker, bus event.Bus, timers Scheduler) Service {
	return newService(policy, store, checker, bus, timers)
}

func newService(policy Policy, store archive.Store, checker inventory.Checker, bus event.Bus, timers Scheduler) *service {
	return &service{
		policy:   policy,
		store:    store,
		checker:  checker,
		bus:      bus,
		timers:   timers,
		registry: ledger.NewRegistry(),
		clock:    time.Now,
		seedFn:   fairness.GenerateSeed,
		drawFn:   fairness.Draw,
		retry:    archive.DefaultRetryPolicy,
	}
}

// Start loads archived items into the registry and opens the first round. The sequence
// continues from the newest archived round.
func (s *service) Start(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := s.policy.Validate(); err != nil {
		return fmt.Errorf("%s: %w", ErrContextStart, err)
	}

	latest, err := s.store.LatestSequence(ctx)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", ErrContextStart, ErrContextLatestSequence, err)
	}

	warmed := 0
	err = s.store.Walk(ctx, func(e domain.ArchiveEntry) error {
		s.registry.Seed(e.Hash(), e.ItemIDs())
		warmed++
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %s: %w", ErrContextStart, ErrContextWarmRegistry, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.stopped {
		return domain.ErrEngineStopped
	}
	s.sequence = latest
	if err := s.openRoundLocked(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextStart, err)
	}
	s.started = true

	log.Info(LogMsgEngineStarted, "sequence", latest, "archived_rounds", warmed, "claimed_items", s.registry.Len())
	return nil
}

// Current returns a consistent view of the live round
func (s *service) Current(ctx context.Context) domain.Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.Round{}
	}
	return s.viewLocked(s.current)
}

// Halted reports whether the engine stopped after an integrity fault
func (s *service) Halted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.halted
}

// ForceLock locks the open round early
func (s *service) ForceLock(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acceptingLocked(); err != nil {
		return err
	}
	r := s.current
	if r == nil || r.status != domain.RoundStatusOpen {
		return domain.ErrRoundClosed
	}
	return s.lockLocked(ctx, r, TriggerAdmin)
}

// Resume opens a new round after a verification halt
func (s *service) Resume(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return domain.ErrEngineStopped
	}
	if !s.halted {
		return domain.ErrNotHalted
	}
	s.halted = false
	if err := s.openRoundLocked(ctx); err != nil {
		s.halted = true
		return err
	}
	log.Warn(LogMsgEngineResumed, "round_hash", s.current.hash)
	return nil
}

// History returns one page of archived rounds, newest first
func (s *service) History(ctx context.Context, limit, offset int) (domain.HistoryPage, error) {
	limit, offset = archive.NormalizePage(limit, offset)

	entries, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return domain.HistoryPage{}, fmt.Errorf("%s: %w", ErrContextHistory, err)
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return domain.HistoryPage{}, fmt.Errorf("%s: %w", ErrContextHistory, err)
	}
	if entries == nil {
		entries = []domain.ArchiveEntry{}
	}
	return domain.HistoryPage{Entries: entries, Total: total, Limit: limit, Offset: offset}, nil
}

// HistoryEntry returns one archived round
func (s *service) HistoryEntry(ctx context.Context, roundHash string) (*domain.ArchiveEntry, error) {
	if roundHash == "" {
		return nil, fmt.Errorf("%s: %w", ErrContextHistoryEntry, domain.ErrInvalidInput)
	}
	entry, err := s.store.Get(ctx, roundHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextHistoryEntry, err)
	}
	return entry, nil
}

// VerifyRound recomputes an archived draw from its public proof
func (s *service) VerifyRound(ctx context.Context, roundHash string) (fairness.Outcome, error) {
	entry, err := s.HistoryEntry(ctx, roundHash)
	if err != nil {
		return fairness.Outcome{}, err
	}
	out, err := fairness.VerifyProof(entry.Proof)
	if err == nil {
		err = archive.CheckConsistency(*entry)
	}
	if err != nil {
		return out, fmt.Errorf("%s: %w", ErrContextVerifyRound, err)
	}
	return out, nil
}

// Shutdown refuses new work, settles a drawn round, aborts an open one and waits for timers
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	s.mu.Lock()
	s.stopped = true
	var drawing string
	if r := s.current; r != nil {
		switch r.status {
		case domain.RoundStatusOpen:
			s.abortLocked(ctx, r, domain.ErrEngineStopped, false)
		case domain.RoundStatusDrawing:
			s.timers.Cancel(TimerKeyComplete + r.hash)
			drawing = r.hash
		}
	}
	s.mu.Unlock()

	if drawing != "" {
		s.complete(ctx, drawing)
	}

	var errs []error
	if err := s.timers.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}
	return errors.Join(errs...)
}

// acceptingLocked reports why the engine refuses new work, if it does
func (s *service) acceptingLocked() error {
	if s.stopped {
		return domain.ErrEngineStopped
	}
	if s.halted {
		return domain.ErrEngineHalted
	}
	return nil
}

// viewLocked builds a deep-copied public view. The seed stays hidden until completion.
func (s *service) viewLocked(r *liveRound) domain.Round {
	snap := r.ledger.Snapshot()
	view := domain.Round{
		Hash:          r.hash,
		Sequence:      r.sequence,
		Status:        r.status,
		Revision:      snap.Revision,
		Participants:  snap.Participants,
		TotalValue:    snap.Total,
		Commitment:    r.commitment,
		Nonce:         r.nonce,
		WinnerID:      r.winnerID,
		Ticket:        r.ticket,
		Reveal:        r.reveal,
		CommissionBps: s.policy.CommissionBps,
		Commission:    r.commission,
		Payout:        r.payout,
		AbortReason:   r.abortReason,
		CreatedAt:     r.createdAt,
		LockedAt:      r.lockedAt,
		DrawnAt:       r.drawnAt,
		CompletedAt:   r.completedAt,
	}
	if r.status == domain.RoundStatusOpen {
		view.CountdownEndsAt = r.countdownEndsAt
	}
	if r.status == domain.RoundStatusCompleted {
		view.ServerSeed = r.seed
	}
	return view.Clone()
}

func (s *service) publishLocked(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
