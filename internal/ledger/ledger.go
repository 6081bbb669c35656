package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// Contribution is one admitted-or-rejected deposit. Item values are already snapshotted.
type Contribution struct {
	Identity   domain.Identity
	Items      []domain.Item
	ClientSeed string
}

// ItemIDs returns the ids of the contributed items in submission order
func (c Contribution) ItemIDs() []string {
	ids := make([]string, len(c.Items))
	for i, it := range c.Items {
		ids[i] = it.ID
	}
	return ids
}

// Snapshot is an immutable, deep-copied view of a ledger at one point in time
type Snapshot struct {
	RoundHash    string
	Participants []domain.Participant
	Total        domain.Cents
	Revision     int64
	Frozen       bool
}

// Entries returns the draw weights in join order
func (s Snapshot) Entries() []domain.WeightEntry {
	out := make([]domain.WeightEntry, len(s.Participants))
	for i, p := range s.Participants {
		out[i] = domain.WeightEntry{ParticipantID: p.Identity.ID, Weight: p.Weight}
	}
	return out
}

// ClientSeeds returns each participant's client seed in join order
func (s Snapshot) ClientSeeds() []string {
	out := make([]string, len(s.Participants))
	for i, p := range s.Participants {
		out[i] = p.ClientSeed
	}
	return out
}

// Share returns the participant's win probability. Display only; the draw uses integer weights.
func (s Snapshot) Share(participantID string) float64 {
	if s.Total == 0 {
		return 0
	}
	for _, p := range s.Participants {
		if p.Identity.ID == participantID {
			return float64(p.Weight) / float64(s.Total)
		}
	}
	return 0
}

// Ledger is the authoritative record of one round's contributions
type Ledger struct {
	mu           sync.RWMutex
	roundHash    string
	registry     *Registry
	participants []*domain.Participant
	index        map[string]int
	total        domain.Cents
	revision     int64
	frozen       bool
	now          func() time.Time
}

// New creates an empty ledger for a round. The registry is shared across rounds.
func New(roundHash string, registry *Registry) *Ledger {
	return &Ledger{
		roundHash: roundHash,
		registry:  registry,
		index:     make(map[string]int),
		now:       time.Now,
	}
}

// AddContribution admits every item of c or none. Duplicates are reported before the
// frozen check so an already-accepted item is a duplicate in every round state.
func (l *Ledger) AddContribution(c Contribution) (Snapshot, error) {
	if c.Identity.ID == "" || len(c.Items) == 0 {
		return Snapshot{}, fmt.Errorf("%s: %w", ErrContextAddContribution, domain.ErrInvalidInput)
	}

	ids := c.ItemIDs()
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return Snapshot{}, fmt.Errorf("%s: %w: item %s repeated", ErrContextAddContribution, domain.ErrDuplicateContribution, id)
		}
		seen[id] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if id, ok := l.registry.FirstClaimed(ids); ok {
		return Snapshot{}, fmt.Errorf("%s: %w: item %s", ErrContextAddContribution, domain.ErrDuplicateContribution, id)
	}
	if l.frozen {
		return Snapshot{}, fmt.Errorf("%s: %w", ErrContextAddContribution, domain.ErrRoundClosed)
	}

	var added domain.Cents
	for _, it := range c.Items {
		if it.Value <= 0 {
			return Snapshot{}, fmt.Errorf("%s: %w: item %s has no value", ErrContextAddContribution, domain.ErrInvalidItem, it.ID)
		}
		added += it.Value
	}

	if err := l.registry.Claim(l.roundHash, ids); err != nil {
		return Snapshot{}, err
	}

	idx, ok := l.index[c.Identity.ID]
	if !ok {
		idx = len(l.participants)
		l.participants = append(l.participants, &domain.Participant{
			Identity: c.Identity,
			Color:    ColorFor(idx),
			JoinedAt: l.now(),
		})
		l.index[c.Identity.ID] = idx
	}

	p := l.participants[idx]
	p.Items = append(p.Items, c.Items...)
	p.Weight += added
	if c.ClientSeed != "" {
		p.ClientSeed = c.ClientSeed
	}
	l.total += added
	l.revision++

	return l.snapshotLocked(), nil
}

// Snapshot returns a consistent copy of the ledger
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// Freeze stops all further admissions and returns the final snapshot. Idempotent.
func (l *Ledger) Freeze() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.frozen {
		l.frozen = true
		l.revision++
	}
	return l.snapshotLocked()
}

// Frozen reports whether the ledger has been frozen
func (l *Ledger) Frozen() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frozen
}

// ParticipantCount returns the number of distinct participants
func (l *Ledger) ParticipantCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.participants)
}

// Total returns the current pot value
func (l *Ledger) Total() domain.Cents {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

func (l *Ledger) snapshotLocked() Snapshot {
	out := make([]domain.Participant, len(l.participants))
	for i, p := range l.participants {
		out[i] = p.Clone()
	}
	return Snapshot{
		RoundHash:    l.roundHash,
		Participants: out,
		Total:        l.total,
		Revision:     l.revision,
		Frozen:       l.frozen,
	}
}
