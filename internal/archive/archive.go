package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// Store is the append-only record of completed rounds. Entries are never updated or deleted.
type Store interface {
	// Append records a completed round. An existing hash fails with domain.ErrArchiveConflict.
	Append(ctx context.Context, entry domain.ArchiveEntry) error
	// Get returns the entry for a round hash or domain.ErrRoundNotFound
	Get(ctx context.Context, roundHash string) (*domain.ArchiveEntry, error)
	// List returns entries newest first
	List(ctx context.Context, limit, offset int) ([]domain.ArchiveEntry, error)
	Count(ctx context.Context) (int, error)
	// LatestSequence returns the highest archived sequence, or 0 when empty
	LatestSequence(ctx context.Context) (int64, error)
	// Walk visits every entry oldest first, stopping at the first error
	Walk(ctx context.Context, fn func(domain.ArchiveEntry) error) error
	Close() error
}

// ValidateEntry rejects entries that are not complete, verifiable records
func ValidateEntry(entry domain.ArchiveEntry) error {
	switch {
	case entry.Round.Hash == "":
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingHash)
	case entry.Round.Status != domain.RoundStatusCompleted:
		return fmt.Errorf("%w: %s %s", domain.ErrInvalidInput, ErrMsgNotCompleted, entry.Round.Status)
	case entry.Proof.RoundHash != entry.Round.Hash:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgProofHashMismatch)
	}
	return nil
}

// CheckConsistency reports whether the round record agrees with its proof: same hash,
// winner and ticket, and participants matching the proof entries in order and weight.
// Disagreement is a domain.ErrVerificationMismatch.
func CheckConsistency(entry domain.ArchiveEntry) error {
	r, p := entry.Round, entry.Proof
	mismatch := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", domain.ErrVerificationMismatch, fmt.Sprintf(format, args...))
	}

	if r.Hash != p.RoundHash {
		return mismatch(ErrMsgProofHashMismatch)
	}
	if r.WinnerID != p.WinnerID {
		return mismatch("%s: round %q, proof %q", ErrMsgWinnerMismatch, r.WinnerID, p.WinnerID)
	}
	if r.Ticket != nil && *r.Ticket != p.Ticket {
		return mismatch("%s: round %d, proof %d", ErrMsgTicketMismatch, *r.Ticket, p.Ticket)
	}
	if len(r.Participants) != len(p.Entries) {
		return mismatch("%s: %d participants, %d entries", ErrMsgEntriesMismatch, len(r.Participants), len(p.Entries))
	}
	var total domain.Cents
	for i, part := range r.Participants {
		e := p.Entries[i]
		if part.Identity.ID != e.ParticipantID || part.Weight != e.Weight {
			return mismatch("%s: position %d round %s/%d, proof %s/%d",
				ErrMsgEntriesMismatch, i, part.Identity.ID, part.Weight, e.ParticipantID, e.Weight)
		}
		total += part.Weight
	}
	if r.TotalValue != total {
		return mismatch("%s: round %d, entries %d", ErrMsgTotalMismatch, r.TotalValue, total)
	}
	return nil
}

// NormalizePage clamps pagination arguments to sane bounds
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// RetryPolicy bounds AppendWithRetry
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy is used by the round engine
var DefaultRetryPolicy = RetryPolicy{
	Attempts:  DefaultAppendAttempts,
	BaseDelay: DefaultAppendBaseDelay,
	MaxDelay:  DefaultAppendMaxDelay,
}

// AppendWithRetry appends with exponential backoff. Conflicts and invalid entries are not retried.
func AppendWithRetry(ctx context.Context, store Store, entry domain.ArchiveEntry, policy RetryPolicy) error {
	log := logger.FromContext(ctx)
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := policy.BaseDelay

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = store.Append(ctx, entry)
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrArchiveConflict) || errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		if attempt == attempts {
			break
		}

		log.Warn(LogMsgAppendRetry, "round_hash", entry.Hash(), "attempt", attempt, "error", err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", ErrContextAppend, ctx.Err())
		}
		delay *= 2
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}
	return fmt.Errorf("%s: gave up after %d attempts: %w", ErrContextAppend, attempts, err)
}
