package fairness

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// Interval is a participant's half-open share [Start, End) of the ticket space
type Interval struct {
	ParticipantID string `json:"participant_id"`
	Start         int64  `json:"start"`
	End           int64  `json:"end"`
}

// Contains reports whether the ticket falls inside the interval
func (i Interval) Contains(ticket int64) bool {
	return ticket >= i.Start && ticket < i.End
}

// Partition is the cumulative-weight layout of a frozen round over [0, Total)
type Partition struct {
	intervals []Interval
	total     int64
}

// NewPartition lays entries out contiguously in the order given
func NewPartition(entries []domain.WeightEntry) (Partition, error) {
	p := Partition{intervals: make([]Interval, 0, len(entries))}
	for _, e := range entries {
		if e.Weight < 0 {
			return Partition{}, fmt.Errorf("%s: %w: negative weight for %s", ErrContextPartition, domain.ErrInvalidInput, e.ParticipantID)
		}
		w := int64(e.Weight)
		if p.total > math.MaxInt64-w {
			return Partition{}, fmt.Errorf("%s: %w: pot overflow", ErrContextPartition, domain.ErrInvalidInput)
		}
		p.intervals = append(p.intervals, Interval{
			ParticipantID: e.ParticipantID,
			Start:         p.total,
			End:           p.total + w,
		})
		p.total += w
	}
	if p.total == 0 {
		return Partition{}, domain.ErrEmptyPot
	}
	return p, nil
}

// Total is the pot size T
func (p Partition) Total() int64 {
	return p.total
}

// Intervals returns a copy of the layout
func (p Partition) Intervals() []Interval {
	out := make([]Interval, len(p.intervals))
	copy(out, p.intervals)
	return out
}

// Winner returns the participant whose interval contains the ticket. A ticket on a
// boundary belongs to the interval that starts there.
func (p Partition) Winner(ticket int64) (string, error) {
	if ticket < 0 || ticket >= p.total {
		return "", fmt.Errorf("%w: ticket %d outside [0, %d)", domain.ErrInvalidInput, ticket, p.total)
	}
	idx := sort.Search(len(p.intervals), func(i int) bool {
		return p.intervals[i].End > ticket
	})
	return p.intervals[idx].ParticipantID, nil
}

// Ticket derives a uniform value in [0, total) from the seed, nonce and round hash.
// Candidates are HMAC-SHA256(seed, roundHash:nonce:counter); values in the biased
// tail of the uint64 range are rejected and the counter advances.
func Ticket(seed, nonce, roundHash string, total int64) (int64, error) {
	if total <= 0 {
		return 0, domain.ErrEmptyPot
	}
	key, err := decodeSeed(seed)
	if err != nil {
		return 0, err
	}

	t := uint64(total)
	rem := (math.MaxUint64%t + 1) % t // 2^64 mod t
	for counter := 0; counter < MaxTicketAttempts; counter++ {
		v := binary.BigEndian.Uint64(mix(key, nonce, roundHash, counter)[:TicketBytes])
		if rem == 0 || v <= math.MaxUint64-rem {
			return int64(v % t), nil
		}
	}
	return 0, fmt.Errorf("%s: rejection sampling exhausted", ErrContextTicket)
}

func mix(key []byte, nonce, roundHash string, counter int) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(roundHash))
	mac.Write([]byte(FieldSeparator))
	mac.Write([]byte(nonce))
	mac.Write([]byte(FieldSeparator))
	mac.Write([]byte(strconv.Itoa(counter)))
	return mac.Sum(nil)
}

// Outcome is the result of a draw
type Outcome struct {
	Ticket   int64        `json:"ticket"`
	WinnerID string       `json:"winner_id"`
	Total    domain.Cents `json:"total"`
}

// Draw computes the winner of a frozen round. It is pure over its inputs.
func Draw(seed, nonce, roundHash string, entries []domain.WeightEntry) (Outcome, error) {
	part, err := NewPartition(entries)
	if err != nil {
		return Outcome{}, err
	}
	ticket, err := Ticket(seed, nonce, roundHash, part.Total())
	if err != nil {
		return Outcome{}, err
	}
	winner, err := part.Winner(ticket)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Ticket: ticket, WinnerID: winner, Total: domain.Cents(part.Total())}, nil
}
