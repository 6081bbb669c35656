package fairness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

const testSeed = "0f1e2d3c4b5a69788796a5b4c3d2e1f00112233445566778899aabbccddeeff"

func threeWay() []domain.WeightEntry {
	return []domain.WeightEntry{
		{ParticipantID: "p1", Weight: 1000},
		{ParticipantID: "p2", Weight: 2000},
		{ParticipantID: "p3", Weight: 7000},
	}
}

func TestPartition_Layout(t *testing.T) {
	p, err := NewPartition(threeWay())
	require.NoError(t, err)

	assert.Equal(t, int64(10000), p.Total())
	assert.Equal(t, []Interval{
		{ParticipantID: "p1", Start: 0, End: 1000},
		{ParticipantID: "p2", Start: 1000, End: 3000},
		{ParticipantID: "p3", Start: 3000, End: 10000},
	}, p.Intervals())
}

func TestPartition_WinnerBoundaries(t *testing.T) {
	p, err := NewPartition(threeWay())
	require.NoError(t, err)

	tests := []struct {
		name   string
		ticket int64
		want   string
	}{
		{"first ticket", 0, "p1"},
		{"just below first boundary", 999, "p1"},
		{"first boundary starts second interval", 1000, "p2"},
		{"just below second boundary", 2999, "p2"},
		{"second boundary starts third interval", 3000, "p3"},
		{"last ticket", 9999, "p3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				got, err := p.Winner(tt.ticket)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPartition_WinnerOutOfRange(t *testing.T) {
	p, err := NewPartition(threeWay())
	require.NoError(t, err)

	_, err = p.Winner(10000)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.Winner(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPartition_ZeroWeightNeverWins(t *testing.T) {
	p, err := NewPartition([]domain.WeightEntry{
		{ParticipantID: "a", Weight: 5},
		{ParticipantID: "ghost", Weight: 0},
		{ParticipantID: "b", Weight: 5},
	})
	require.NoError(t, err)

	got, err := p.Winner(5)
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestPartition_EmptyPot(t *testing.T) {
	_, err := NewPartition(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyPot)

	_, err = NewPartition([]domain.WeightEntry{{ParticipantID: "a", Weight: 0}})
	assert.ErrorIs(t, err, domain.ErrEmptyPot)
}

func TestPartition_NegativeWeight(t *testing.T) {
	_, err := NewPartition([]domain.WeightEntry{{ParticipantID: "a", Weight: -1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTicket_Deterministic(t *testing.T) {
	a, err := Ticket(testSeed, "nonce", "round", 10000)
	require.NoError(t, err)
	b, err := Ticket(testSeed, "nonce", "round", 10000)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, int64(0))
	assert.Less(t, a, int64(10000))
}

func TestTicket_InputsChangeOutcome(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 16; i++ {
		v, err := Ticket(testSeed, fmt.Sprintf("nonce-%d", i), "round", 1<<40)
		require.NoError(t, err)
		seen[v] = true
	}
	// 16 draws over 2^40 tickets colliding would mean the nonce is ignored
	assert.Len(t, seen, 16)
}

func TestTicket_EmptyPot(t *testing.T) {
	_, err := Ticket(testSeed, "n", "r", 0)
	assert.ErrorIs(t, err, domain.ErrEmptyPot)
}

func TestTicket_InvalidSeed(t *testing.T) {
	_, err := Ticket("not-hex", "n", "r", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidSeed)

	_, err = Ticket("abcd", "n", "r", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidSeed)
}

func TestDraw_ProbabilityMatchesWeight(t *testing.T) {
	entries := []domain.WeightEntry{
		{ParticipantID: "small", Weight: 1},
		{ParticipantID: "large", Weight: 3},
	}

	const draws = 20000
	wins := 0
	for i := 0; i < draws; i++ {
		out, err := Draw(testSeed, fmt.Sprintf("%d", i), "round", entries)
		require.NoError(t, err)
		if out.WinnerID == "small" {
			wins++
		}
	}

	share := float64(wins) / draws
	assert.InDelta(t, 0.25, share, 0.02)
}

func TestDraw_UnitWeightsCoverEveryParticipant(t *testing.T) {
	entries := make([]domain.WeightEntry, 7)
	for i := range entries {
		entries[i] = domain.WeightEntry{ParticipantID: fmt.Sprintf("p%d", i), Weight: 1}
	}

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		out, err := Draw(testSeed, fmt.Sprintf("%d", i), "round", entries)
		require.NoError(t, err)
		seen[out.WinnerID] = true
	}
	assert.Len(t, seen, len(entries))
}

func TestSeed_GenerateAndCommit(t *testing.T) {
	seed, err := GenerateSeed()
	require.NoError(t, err)
	assert.Len(t, seed, SeedBytes*2)

	other, err := GenerateSeed()
	require.NoError(t, err)
	assert.NotEqual(t, seed, other)

	commitment, err := Commit(seed)
	require.NoError(t, err)
	assert.Len(t, commitment, 64)
	assert.NotContains(t, commitment, seed)

	assert.NoError(t, CheckCommitment(seed, commitment))
	assert.NoError(t, CheckCommitment(seed, strings.ToUpper(commitment)))
	assert.ErrorIs(t, CheckCommitment(other, commitment), domain.ErrCommitmentMismatch)
}

func TestDeriveNonce(t *testing.T) {
	a := DeriveNonce("round", 1, []string{"x", "y"})
	assert.Equal(t, a, DeriveNonce("round", 1, []string{"x", "y"}))
	assert.NotEqual(t, a, DeriveNonce("round", 2, []string{"x", "y"}))
	assert.NotEqual(t, a, DeriveNonce("round", 1, []string{"y", "x"}))
	assert.NotEqual(t, a, DeriveNonce("round", 1, []string{"x"}))
}

func BenchmarkDraw(b *testing.B) {
	entries := make([]domain.WeightEntry, 64)
	for i := range entries {
		entries[i] = domain.WeightEntry{ParticipantID: fmt.Sprintf("p%d", i), Weight: domain.Cents(100 + i)}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Draw(testSeed, "nonce", "round", entries); err != nil {
			b.Fatal(err)
		}
	}
}
