package archive

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// MemoryStore keeps the archive in process memory. Entries are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []domain.ArchiveEntry // append order
	byHash  map[string]int
}

// NewMemoryStore creates an empty in-memory archive
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byHash: make(map[string]int)}
}

func (s *MemoryStore) Append(ctx context.Context, entry domain.ArchiveEntry) error {
	if err := ValidateEntry(entry); err != nil {
		return fmt.Errorf("%s: %w", ErrContextAppend, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byHash[entry.Hash()]; ok {
		return fmt.Errorf("%s: %w: %s", ErrContextAppend, domain.ErrArchiveConflict, entry.Hash())
	}
	s.byHash[entry.Hash()] = len(s.entries)
	s.entries = append(s.entries, entry.Clone())
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, roundHash string) (*domain.ArchiveEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byHash[roundHash]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ErrContextGet, domain.ErrRoundNotFound)
	}
	entry := s.entries[idx].Clone()
	return &entry, nil
}

func (s *MemoryStore) List(ctx context.Context, limit, offset int) ([]domain.ArchiveEntry, error) {
	limit, offset = NormalizePage(limit, offset)
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ArchiveEntry, 0, limit)
	for i := len(s.entries) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.entries[i].Clone())
	}
	return result, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func (s *MemoryStore) LatestSequence(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest int64
	for _, e := range s.entries {
		if e.Round.Sequence > latest {
			latest = e.Round.Sequence
		}
	}
	return latest, nil
}

func (s *MemoryStore) Walk(ctx context.Context, fn func(domain.ArchiveEntry) error) error {
	s.mu.RLock()
	snapshot := make([]domain.ArchiveEntry, len(s.entries))
	for i, e := range s.entries {
		snapshot[i] = e.Clone()
	}
	s.mu.RUnlock()

	for _, e := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
