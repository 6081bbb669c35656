package ledger

import (
	"fmt"
	"sync"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// Registry records which round every accepted item was committed to. It is shared by all
// rounds of one engine and never forgets an item, so a resubmitted item is always a duplicate.
type Registry struct {
	mu     sync.RWMutex
	owners map[string]string // itemID -> roundHash
}

// NewRegistry creates an empty item registry
func NewRegistry() *Registry {
	return &Registry{owners: make(map[string]string)}
}

// Owner returns the round an item was committed to
func (r *Registry) Owner(itemID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hash, ok := r.owners[itemID]
	return hash, ok
}

// IsClaimed reports whether an item is already committed
func (r *Registry) IsClaimed(itemID string) bool {
	_, ok := r.Owner(itemID)
	return ok
}

// FirstClaimed returns the first id in ids that is already committed
func (r *Registry) FirstClaimed(ids []string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range ids {
		if _, ok := r.owners[id]; ok {
			return id, true
		}
	}
	return "", false
}

// Claim commits every id to the round, or none of them
func (r *Registry) Claim(roundHash string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if owner, ok := r.owners[id]; ok {
			return fmt.Errorf("%s: %w: item %s in round %s", ErrContextClaimItems, domain.ErrDuplicateContribution, id, owner)
		}
	}
	for _, id := range ids {
		r.owners[id] = roundHash
	}
	return nil
}

// Seed records items from an archived round without conflict checks
func (r *Registry) Seed(roundHash string, ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.owners[id]; !ok {
			r.owners[id] = roundHash
		}
	}
}

// Len returns the number of committed items
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owners)
}
