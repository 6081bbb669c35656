package round

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/JackpotEngine_Go/internal/archive"
	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/event"
	"github.com/osse101/JackpotEngine_Go/internal/fairness"
	"github.com/osse101/JackpotEngine_Go/internal/ledger"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
	"github.com/osse101/JackpotEngine_Go/internal/metrics"
)

// Every transition below checks the expected status first and runs with s.mu held, except
// where noted. A refused transition is a no-op, so at most one draw and one completion
// happen per round however many paths race for it.

// openRoundLocked commits a fresh server seed and makes a new OPEN round current
func (s *service) openRoundLocked(ctx context.Context) error {
	log := logger.FromContext(ctx)

	seed, err := s.seedFn()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextOpenRound, err)
	}
	commitment, err := fairness.Commit(seed)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextOpenRound, err)
	}

	s.sequence++
	hash := fairness.NewRoundHash(uuid.NewString(), commitment)
	r := &liveRound{
		hash:       hash,
		sequence:   s.sequence,
		seed:       seed,
		commitment: commitment,
		ledger:     ledger.New(hash, s.registry),
		status:     domain.RoundStatusOpen,
		createdAt:  s.clock(),
	}
	s.current = r

	log.Info(LogMsgRoundOpened, "round_hash", hash, "sequence", r.sequence, "commitment", commitment)
	s.publishLocked(ctx, event.NewRoundOpenedEvent(s.viewLocked(r)))
	return nil
}

func (s *service) startCountdownLocked(ctx context.Context, r *liveRound) {
	ends := s.clock().Add(s.policy.Countdown)
	r.countdownEndsAt = &ends

	hash := r.hash
	if !s.timers.Schedule(TimerKeyCountdown+hash, s.policy.Countdown, func(ctx context.Context) {
		s.onCountdown(ctx, hash)
	}) {
		logger.FromContext(ctx).Warn(LogMsgScheduleRefused, "round_hash", hash, "timer", TimerKeyCountdown)
		return
	}
	logger.FromContext(ctx).Info(LogMsgCountdownStarted, "round_hash", hash, "ends_at", ends)
}

func (s *service) onCountdown(ctx context.Context, roundHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.current
	if r == nil || r.hash != roundHash || s.stopped || s.halted {
		return
	}
	_ = s.lockLocked(ctx, r, TriggerCountdown)
}

// lockLocked freezes the ledger, fixes the nonce and proceeds straight to the draw
// lockLocked freezes the ledger and hands off to the draw. It returns ErrEmptyPot when the
// round was aborted instead.
func (s *service) lockLocked(ctx context.Context, r *liveRound, trigger string) error {
	if r.status != domain.RoundStatusOpen {
		return nil
	}
	log := logger.FromContext(ctx)

	s.timers.Cancel(TimerKeyCountdown + r.hash)
	snap := r.ledger.Freeze()
	now := s.clock()

	r.status = domain.RoundStatusLocked
	r.final = snap
	r.lockedAt = &now
	r.nonce = fairness.DeriveNonce(r.hash, r.sequence, snap.ClientSeeds())

	log.Info(LogMsgRoundLocked, "round_hash", r.hash, "trigger", trigger, "participants", len(snap.Participants), "total_value", snap.Total)
	s.publishLocked(ctx, event.NewRoundLockedEvent(s.viewLocked(r), trigger))

	if snap.Total == 0 {
		s.abortLocked(ctx, r, domain.ErrEmptyPot, false)
		s.openNextLocked(ctx)
		return fmt.Errorf("%s %s: %w", ErrContextLockRound, r.hash, domain.ErrEmptyPot)
	}
	s.drawLocked(ctx, r)
	return nil
}

// drawLocked computes the outcome and checks it through the public verifier before
// anything about it is broadcast
func (s *service) drawLocked(ctx context.Context, r *liveRound) {
	if r.status != domain.RoundStatusLocked {
		return
	}
	log := logger.FromContext(ctx)

	entries := r.final.Entries()
	out, err := s.drawFn(r.seed, r.nonce, r.hash, entries)
	if err != nil {
		log.Error(LogMsgIntegrityFault, "round_hash", r.hash, "error", err)
		s.abortLocked(ctx, r, err, true)
		return
	}

	in := fairness.VerifyInput{
		ServerSeed: r.seed,
		Commitment: r.commitment,
		Nonce:      r.nonce,
		RoundHash:  r.hash,
		Entries:    entries,
	}
	if _, err := fairness.VerifyClaim(in, out.WinnerID, out.Ticket); err != nil {
		log.Error(LogMsgIntegrityFault, "round_hash", r.hash, "winner_id", out.WinnerID, "ticket", out.Ticket, "error", err)
		s.abortLocked(ctx, r, domain.ErrVerificationMismatch, true)
		return
	}

	now := s.clock()
	ticket := out.Ticket
	r.status = domain.RoundStatusDrawing
	r.winnerID = out.WinnerID
	r.ticket = &ticket
	r.drawnAt = &now
	r.reveal = &domain.Reveal{StartAt: now.Add(s.policy.RevealLead), Duration: s.policy.RevealDuration}

	log.Info(LogMsgRoundDrawn, "round_hash", r.hash, "winner_id", out.WinnerID, "ticket", ticket, "reveal_start", r.reveal.StartAt)
	s.publishLocked(ctx, event.NewDrawScheduledEvent(s.viewLocked(r), now))

	hash := r.hash
	if !s.timers.Schedule(TimerKeyComplete+hash, s.policy.RevealWindow(), func(ctx context.Context) {
		s.complete(ctx, hash)
	}) {
		log.Warn(LogMsgScheduleRefused, "round_hash", hash, "timer", TimerKeyComplete)
	}
}

// complete settles a DRAWING round. It takes s.mu itself and releases it while archiving,
// during which the round reads as COMPLETED and refuses contributions.
func (s *service) complete(ctx context.Context, roundHash string) {
	s.mu.Lock()
	r := s.current
	if r == nil || r.hash != roundHash || r.status != domain.RoundStatusDrawing {
		s.mu.Unlock()
		return
	}
	entry := s.settleLocked(r)
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	log := logger.FromContext(ctx)
	if err := archive.AppendWithRetry(ctx, s.store, entry, s.retry); err != nil {
		metrics.ArchiveFailures.Inc()
		log.Error(LogMsgArchiveFailed, "round_hash", roundHash, "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info(LogMsgRoundCompleted, "round_hash", roundHash, "winner_id", entry.Round.WinnerID,
		"total_value", entry.Round.TotalValue, "payout", entry.Round.Payout, "commission", entry.Round.Commission)
	s.publishLocked(ctx, event.NewRoundCompletedEvent(entry))
	s.openNextLocked(ctx)
}

// settleLocked marks the round COMPLETED and builds its archive entry
func (s *service) settleLocked(r *liveRound) domain.ArchiveEntry {
	now := s.clock()
	r.status = domain.RoundStatusCompleted
	r.completedAt = &now
	r.commission = Commission(r.final.Total, s.policy.CommissionBps)
	r.payout = r.final.Total - r.commission

	return domain.ArchiveEntry{
		Round: s.viewLocked(r),
		Proof: domain.Proof{
			RoundHash:  r.hash,
			ServerSeed: r.seed,
			Commitment: r.commitment,
			Nonce:      r.nonce,
			Entries:    r.final.Entries(),
			Ticket:     *r.ticket,
			WinnerID:   r.winnerID,
		},
		ArchivedAt: now,
	}
}

// abortLocked ends a round without a payout. Its items stay claimed.
func (s *service) abortLocked(ctx context.Context, r *liveRound, reason error, halt bool) {
	if r.status.IsTerminal() {
		return
	}
	s.timers.Cancel(TimerKeyCountdown + r.hash)
	s.timers.Cancel(TimerKeyComplete + r.hash)
	r.ledger.Freeze()
	r.status = domain.RoundStatusAborted
	r.abortReason = reason.Error()
	if halt {
		s.halted = true
	}

	logger.FromContext(ctx).Warn(LogMsgRoundAborted, "round_hash", r.hash, "reason", r.abortReason, "halted", halt)
	s.publishLocked(ctx, event.NewRoundAbortedEvent(r.hash, r.abortReason, halt))
}

// openNextLocked opens the following round unless the engine is stopped or halted
func (s *service) openNextLocked(ctx context.Context) {
	if s.stopped || s.halted {
		return
	}
	if err := s.openRoundLocked(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgOpenFailed, "error", err)
	}
}
