package archive

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// BoltStore persists the archive in a single bbolt file. Rounds are keyed by hash and
// indexed by big-endian sequence so a reverse cursor walk yields newest first.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the archive file at path
func OpenBolt(ctx context.Context, path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextOpenBolt, err)
		}
	}

	db, err := bolt.Open(path, BoltFileMode, &bolt.Options{Timeout: BoltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextOpenBolt, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketRounds, bucketSequence} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrContextOpenBolt, err)
	}

	logger.FromContext(ctx).Info(LogMsgBoltOpened, "path", path)
	return &BoltStore{db: db}, nil
}

func sequenceKey(seq int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(seq))
	return key
}

func (s *BoltStore) Append(ctx context.Context, entry domain.ArchiveEntry) error {
	if err := ValidateEntry(entry); err != nil {
		return fmt.Errorf("%s: %w", ErrContextAppend, err)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextAppend, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		rounds := tx.Bucket(bucketRounds)
		sequence := tx.Bucket(bucketSequence)
		hash := []byte(entry.Hash())
		seqKey := sequenceKey(entry.Round.Sequence)

		if rounds.Get(hash) != nil || sequence.Get(seqKey) != nil {
			return fmt.Errorf("%w: %s", domain.ErrArchiveConflict, entry.Hash())
		}
		if err := rounds.Put(hash, data); err != nil {
			return err
		}
		return sequence.Put(seqKey, hash)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextAppend, err)
	}
	return nil
}

func (s *BoltStore) Get(ctx context.Context, roundHash string) (*domain.ArchiveEntry, error) {
	var entry domain.ArchiveEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketRounds).Get([]byte(roundHash))
		if data == nil {
			return domain.ErrRoundNotFound
		}
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGet, err)
	}
	return &entry, nil
}

func (s *BoltStore) List(ctx context.Context, limit, offset int) ([]domain.ArchiveEntry, error) {
	limit, offset = NormalizePage(limit, offset)
	result := make([]domain.ArchiveEntry, 0, limit)

	err := s.db.View(func(tx *bolt.Tx) error {
		rounds := tx.Bucket(bucketRounds)
		c := tx.Bucket(bucketSequence).Cursor()

		skipped := 0
		for k, hash := c.Last(); k != nil && len(result) < limit; k, hash = c.Prev() {
			if skipped < offset {
				skipped++
				continue
			}
			var entry domain.ArchiveEntry
			if err := json.Unmarshal(rounds.Get(hash), &entry); err != nil {
				return err
			}
			result = append(result, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextList, err)
	}
	return result, nil
}

func (s *BoltStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketRounds).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BoltStore) LatestSequence(ctx context.Context) (int64, error) {
	var latest int64
	err := s.db.View(func(tx *bolt.Tx) error {
		k, _ := tx.Bucket(bucketSequence).Cursor().Last()
		if k != nil {
			latest = int64(binary.BigEndian.Uint64(k))
		}
		return nil
	})
	return latest, err
}

func (s *BoltStore) Walk(ctx context.Context, fn func(domain.ArchiveEntry) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		rounds := tx.Bucket(bucketRounds)
		c := tx.Bucket(bucketSequence).Cursor()
		for k, hash := c.First(); k != nil; k, hash = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var entry domain.ArchiveEntry
			if err := json.Unmarshal(rounds.Get(hash), &entry); err != nil {
				return err
			}
			if err := fn(entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
