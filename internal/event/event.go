package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Round lifecycle event types
const (
	RoundOpened    Type = "round.opened"
	LedgerUpdated  Type = "ledger.updated"
	RoundLocked    Type = "round.locked"
	DrawScheduled  Type = "draw.scheduled"
	RoundCompleted Type = "round.completed"
	RoundAborted   Type = "round.aborted"
)

// RoundTypes lists every round lifecycle event in transition order
var RoundTypes = []Type{RoundOpened, LedgerUpdated, RoundLocked, DrawScheduled, RoundCompleted, RoundAborted}

// Typed event payloads for type safety

// RoundOpenedPayloadV1 announces a fresh round and its seed commitment
type RoundOpenedPayloadV1 struct {
	RoundHash  string `json:"round_hash"`
	Sequence   int64  `json:"sequence"`
	Commitment string `json:"commitment"`
	CreatedAt  int64  `json:"created_at"`
}

// LedgerUpdatedPayloadV1 carries the participant view after one admitted contribution
type LedgerUpdatedPayloadV1 struct {
	RoundHash       string               `json:"round_hash"`
	Revision        int64                `json:"revision"`
	Participants    []domain.Participant `json:"participants"`
	TotalValue      domain.Cents         `json:"total_value"`
	CountdownEndsAt *int64               `json:"countdown_ends_at,omitempty"`
}

// RoundLockedPayloadV1 marks the instant the ledger froze
type RoundLockedPayloadV1 struct {
	RoundHash        string       `json:"round_hash"`
	Revision         int64        `json:"revision"`
	TotalValue       domain.Cents `json:"total_value"`
	ParticipantCount int          `json:"participant_count"`
	Nonce            string       `json:"nonce"`
	Trigger          string       `json:"trigger"`
	LockedAt         int64        `json:"locked_at"`
}

// DrawScheduledPayloadV1 lets every observer start the same reveal animation
type DrawScheduledPayloadV1 struct {
	RoundHash        string          `json:"round_hash"`
	Winner           domain.Identity `json:"winner"`
	WinnerColor      string          `json:"winner_color"`
	Ticket           int64           `json:"ticket"`
	TotalValue       domain.Cents    `json:"total_value"`
	RevealStartAt    int64           `json:"reveal_start_at"`
	RevealDurationMs int64           `json:"reveal_duration_ms"`
	ServerTime       int64           `json:"server_time"`
}

// RoundCompletedPayloadV1 reveals the seed and every verification input
type RoundCompletedPayloadV1 struct {
	RoundHash   string          `json:"round_hash"`
	Winner      domain.Identity `json:"winner"`
	TotalValue  domain.Cents    `json:"total_value"`
	Commission  domain.Cents    `json:"commission"`
	Payout      domain.Cents    `json:"payout"`
	Proof       domain.Proof    `json:"proof"`
	CompletedAt int64           `json:"completed_at"`
}

// RoundAbortedPayloadV1 reports a round that ended without a payout
type RoundAbortedPayloadV1 struct {
	RoundHash string `json:"round_hash"`
	Reason    string `json:"reason"`
	Halted    bool   `json:"halted"`
}

// Type-safe event constructors

// NewRoundOpenedEvent creates a round opened event
func NewRoundOpenedEvent(r domain.Round) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundOpened,
		Payload: RoundOpenedPayloadV1{
			RoundHash:  r.Hash,
			Sequence:   r.Sequence,
			Commitment: r.Commitment,
			CreatedAt:  r.CreatedAt.UnixMilli(),
		},
	}
}

// NewLedgerUpdatedEvent creates a ledger updated event from a round view
func NewLedgerUpdatedEvent(r domain.Round) Event {
	payload := LedgerUpdatedPayloadV1{
		RoundHash:    r.Hash,
		Revision:     r.Revision,
		Participants: r.Participants,
		TotalValue:   r.TotalValue,
	}
	if r.CountdownEndsAt != nil {
		ms := r.CountdownEndsAt.UnixMilli()
		payload.CountdownEndsAt = &ms
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    LedgerUpdated,
		Payload: payload,
	}
}

// NewRoundLockedEvent creates a round locked event
func NewRoundLockedEvent(r domain.Round, trigger string) Event {
	var lockedAt int64
	if r.LockedAt != nil {
		lockedAt = r.LockedAt.UnixMilli()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundLocked,
		Payload: RoundLockedPayloadV1{
			RoundHash:        r.Hash,
			Revision:         r.Revision,
			TotalValue:       r.TotalValue,
			ParticipantCount: len(r.Participants),
			Nonce:            r.Nonce,
			Trigger:          trigger,
			LockedAt:         lockedAt,
		},
		Metadata: Metadata{MetadataKeyTrigger: trigger},
	}
}

// NewDrawScheduledEvent creates a draw scheduled event. The round must be DRAWING.
func NewDrawScheduledEvent(r domain.Round, now time.Time) Event {
	winner, _ := r.Winner()
	payload := DrawScheduledPayloadV1{
		RoundHash:   r.Hash,
		Winner:      winner.Identity,
		WinnerColor: winner.Color,
		TotalValue:  r.TotalValue,
		ServerTime:  now.UnixMilli(),
	}
	if r.Ticket != nil {
		payload.Ticket = *r.Ticket
	}
	if r.Reveal != nil {
		payload.RevealStartAt = r.Reveal.StartAt.UnixMilli()
		payload.RevealDurationMs = r.Reveal.Duration.Milliseconds()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    DrawScheduled,
		Payload: payload,
	}
}

// NewRoundCompletedEvent creates a round completed event from the archived entry
func NewRoundCompletedEvent(entry domain.ArchiveEntry) Event {
	winner, _ := entry.Round.Winner()
	var completedAt int64
	if entry.Round.CompletedAt != nil {
		completedAt = entry.Round.CompletedAt.UnixMilli()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundCompleted,
		Payload: RoundCompletedPayloadV1{
			RoundHash:   entry.Round.Hash,
			Winner:      winner.Identity,
			TotalValue:  entry.Round.TotalValue,
			Commission:  entry.Round.Commission,
			Payout:      entry.Round.Payout,
			Proof:       entry.Proof,
			CompletedAt: completedAt,
		},
	}
}

// NewRoundAbortedEvent creates a round aborted event
func NewRoundAbortedEvent(roundHash, reason string, halted bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundAborted,
		Payload: RoundAbortedPayloadV1{
			RoundHash: roundHash,
			Reason:    reason,
			Halted:    halted,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscribed handler synchronously, in subscription order.
// Handlers must not block; slow work belongs on a worker pool.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
