package domain

import (
	"fmt"
	"time"
)

// Cents is a monetary amount in minor currency units. Draw arithmetic never leaves this type.
type Cents int64

// String formats the amount with two decimals for display
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// RoundStatus represents the lifecycle state of a jackpot round
type RoundStatus string

const (
	RoundStatusOpen      RoundStatus = "OPEN"
	RoundStatusLocked    RoundStatus = "LOCKED"
	RoundStatusDrawing   RoundStatus = "DRAWING"
	RoundStatusCompleted RoundStatus = "COMPLETED"
	RoundStatusAborted   RoundStatus = "ABORTED"
)

// IsTerminal reports whether no further transition can leave the status
func (s RoundStatus) IsTerminal() bool {
	return s == RoundStatusCompleted || s == RoundStatusAborted
}

// Identity is a stable participant reference resolved from a request credential
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"username"`
	AvatarURL   string `json:"avatar,omitempty"`
}

// Item is a deposited asset with its value snapshotted at deposit time
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IconURL   string `json:"icon_url,omitempty"`
	Value     Cents  `json:"value"`
	AssetID   string `json:"asset_id,omitempty"`
	AppID     string `json:"app_id,omitempty"`
	ContextID string `json:"context_id,omitempty"`
}

// Participant is one user's cumulative contribution to a round
type Participant struct {
	Identity   Identity  `json:"user"`
	Items      []Item    `json:"items"`
	Color      string    `json:"color"`
	Weight     Cents     `json:"total_value"`
	ClientSeed string    `json:"client_seed,omitempty"`
	JoinedAt   time.Time `json:"joined_at"`
}

// ItemCount returns how many items the participant has deposited
func (p Participant) ItemCount() int {
	return len(p.Items)
}

// Clone returns a deep copy of the participant
func (p Participant) Clone() Participant {
	c := p
	c.Items = make([]Item, len(p.Items))
	copy(c.Items, p.Items)
	return c
}

// Reveal describes the synchronized animation window of a drawn round
type Reveal struct {
	StartAt  time.Time     `json:"start_at"`
	Duration time.Duration `json:"duration"`
}

// EndAt is the wall-clock instant the reveal finishes
func (r Reveal) EndAt() time.Time {
	return r.StartAt.Add(r.Duration)
}

// Round is a point-in-time view of a jackpot round
type Round struct {
	Hash            string        `json:"round_hash"`
	Sequence        int64         `json:"sequence"`
	Status          RoundStatus   `json:"status"`
	Revision        int64         `json:"revision"`
	Participants    []Participant `json:"participants"`
	TotalValue      Cents         `json:"total_value"`
	Commitment      string        `json:"commitment"`
	Nonce           string        `json:"nonce,omitempty"`
	ServerSeed      string        `json:"server_seed,omitempty"`
	WinnerID        string        `json:"winner_id,omitempty"`
	Ticket          *int64        `json:"ticket,omitempty"`
	Reveal          *Reveal       `json:"reveal,omitempty"`
	CountdownEndsAt *time.Time    `json:"countdown_ends_at,omitempty"`
	CommissionBps   int           `json:"commission_bps"`
	Commission      Cents         `json:"commission"`
	Payout          Cents         `json:"payout"`
	AbortReason     string        `json:"abort_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	LockedAt        *time.Time    `json:"locked_at,omitempty"`
	DrawnAt         *time.Time    `json:"drawn_at,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
}

// Winner returns the winning participant, if one has been drawn
func (r Round) Winner() (Participant, bool) {
	if r.WinnerID == "" {
		return Participant{}, false
	}
	for _, p := range r.Participants {
		if p.Identity.ID == r.WinnerID {
			return p, true
		}
	}
	return Participant{}, false
}

// Clone returns a deep copy so the result never aliases live round state
func (r Round) Clone() Round {
	c := r
	c.Participants = make([]Participant, len(r.Participants))
	for i, p := range r.Participants {
		c.Participants[i] = p.Clone()
	}
	c.Ticket = clonePtr(r.Ticket)
	c.Reveal = clonePtr(r.Reveal)
	c.CountdownEndsAt = clonePtr(r.CountdownEndsAt)
	c.LockedAt = clonePtr(r.LockedAt)
	c.DrawnAt = clonePtr(r.DrawnAt)
	c.CompletedAt = clonePtr(r.CompletedAt)
	return c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// WeightEntry is one participant's share in draw order
type WeightEntry struct {
	ParticipantID string `json:"participant_id" validate:"required"`
	Weight        Cents  `json:"weight" validate:"gte=0"`
}

// Proof holds every public input needed to recompute a draw
type Proof struct {
	RoundHash  string        `json:"round_hash"`
	ServerSeed string        `json:"server_seed"`
	Commitment string        `json:"commitment"`
	Nonce      string        `json:"nonce"`
	Entries    []WeightEntry `json:"entries"`
	Ticket     int64         `json:"ticket"`
	WinnerID   string        `json:"winner_id"`
}

// Clone returns a deep copy of the proof
func (p Proof) Clone() Proof {
	c := p
	c.Entries = make([]WeightEntry, len(p.Entries))
	copy(c.Entries, p.Entries)
	return c
}

// ArchiveEntry is the immutable record of a completed round
type ArchiveEntry struct {
	Round      Round     `json:"round"`
	Proof      Proof     `json:"proof"`
	ArchivedAt time.Time `json:"archived_at"`
}

// Hash returns the round hash the entry is keyed by
func (e ArchiveEntry) Hash() string {
	return e.Round.Hash
}

// ItemIDs returns every item id committed in the archived round
func (e ArchiveEntry) ItemIDs() []string {
	var ids []string
	for _, p := range e.Round.Participants {
		for _, it := range p.Items {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// Clone returns a deep copy of the entry
func (e ArchiveEntry) Clone() ArchiveEntry {
	return ArchiveEntry{
		Round:      e.Round.Clone(),
		Proof:      e.Proof.Clone(),
		ArchivedAt: e.ArchivedAt,
	}
}

// HistoryPage is one page of the archive ordered by recency
type HistoryPage struct {
	Entries []ArchiveEntry `json:"entries"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}
