package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/JackpotEngine_Go/internal/archive"
	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// ArchiveRepository stores completed rounds in PostgreSQL. The full entry is kept as JSONB;
// the columns next to it exist for ordering and the item uniqueness constraint.
type ArchiveRepository struct {
	db *pgxpool.Pool
}

var _ archive.Store = (*ArchiveRepository)(nil)

// NewArchiveRepository creates a repository over an already migrated pool
func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

func (r *ArchiveRepository) Append(ctx context.Context, entry domain.ArchiveEntry) error {
	if err := archive.ValidateEntry(entry); err != nil {
		return fmt.Errorf("%s: %w", ErrContextAppendRound, err)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextAppendRound, err)
	}

	completedAt := entry.ArchivedAt
	if entry.Round.CompletedAt != nil {
		completedAt = *entry.Round.CompletedAt
	}

	err = inTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO jackpot_rounds
				(round_hash, sequence, total_value, winner_id, commitment, server_seed, entry, completed_at, archived_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			entry.Hash(),
			entry.Round.Sequence,
			int64(entry.Round.TotalValue),
			entry.Round.WinnerID,
			entry.Proof.Commitment,
			entry.Proof.ServerSeed,
			data,
			completedAt,
			entry.ArchivedAt,
		)
		if err != nil {
			return err
		}

		if ids := entry.ItemIDs(); len(ids) > 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO jackpot_round_items (item_id, round_hash)
				SELECT unnest($1::text[]), $2`,
				ids, entry.Hash(),
			)
		}
		return err
	})
	if err != nil {
		return r.wrapAppendErr(entry, err)
	}
	return nil
}

func (r *ArchiveRepository) wrapAppendErr(entry domain.ArchiveEntry, err error) error {
	if constraint, ok := uniqueViolation(err); ok {
		return fmt.Errorf("%s: %w: %s (%s)", ErrContextAppendRound, domain.ErrArchiveConflict, entry.Hash(), constraint)
	}
	return fmt.Errorf("%s: %w", ErrContextAppendRound, err)
}

func (r *ArchiveRepository) Get(ctx context.Context, roundHash string) (*domain.ArchiveEntry, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT entry FROM jackpot_rounds WHERE round_hash = $1`, roundHash).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", ErrContextGetRound, domain.ErrRoundNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetRound, err)
	}

	var entry domain.ArchiveEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetRound, err)
	}
	return &entry, nil
}

func (r *ArchiveRepository) List(ctx context.Context, limit, offset int) ([]domain.ArchiveEntry, error) {
	limit, offset = archive.NormalizePage(limit, offset)
	rows, err := r.db.Query(ctx,
		`SELECT entry FROM jackpot_rounds ORDER BY sequence DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListRounds, err)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListRounds, err)
	}
	return entries, nil
}

func scanEntry(row pgx.CollectableRow) (domain.ArchiveEntry, error) {
	var data []byte
	var entry domain.ArchiveEntry
	if err := row.Scan(&data); err != nil {
		return entry, err
	}
	err := json.Unmarshal(data, &entry)
	return entry, err
}

func (r *ArchiveRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jackpot_rounds`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextCountRounds, err)
	}
	return n, nil
}

func (r *ArchiveRepository) LatestSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(sequence), 0) FROM jackpot_rounds`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextLatestSeq, err)
	}
	return seq, nil
}

func (r *ArchiveRepository) Walk(ctx context.Context, fn func(domain.ArchiveEntry) error) error {
	rows, err := r.db.Query(ctx, `SELECT entry FROM jackpot_rounds ORDER BY sequence ASC`)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextWalkRounds, err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextWalkRounds, err)
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close is a no-op; the pool is owned by bootstrap
func (r *ArchiveRepository) Close() error {
	return nil
}
