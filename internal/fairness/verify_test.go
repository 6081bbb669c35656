package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

func publishedProof(t *testing.T) domain.Proof {
	t.Helper()

	seed, err := GenerateSeed()
	require.NoError(t, err)
	commitment, err := Commit(seed)
	require.NoError(t, err)

	roundHash := NewRoundHash("round-id", commitment)
	nonce := DeriveNonce(roundHash, 7, []string{"alpha", "", "gamma"})
	entries := threeWay()

	out, err := Draw(seed, nonce, roundHash, entries)
	require.NoError(t, err)

	return domain.Proof{
		RoundHash:  roundHash,
		ServerSeed: seed,
		Commitment: commitment,
		Nonce:      nonce,
		Entries:    entries,
		Ticket:     out.Ticket,
		WinnerID:   out.WinnerID,
	}
}

func TestVerifyProof_RoundTrip(t *testing.T) {
	for i := 0; i < 25; i++ {
		proof := publishedProof(t)

		out, err := VerifyProof(proof)
		require.NoError(t, err)
		assert.Equal(t, proof.WinnerID, out.WinnerID)
		assert.Equal(t, proof.Ticket, out.Ticket)
		assert.Equal(t, domain.Cents(10000), out.Total)
	}
}

func TestVerifyProof_TamperedWinner(t *testing.T) {
	proof := publishedProof(t)
	if proof.WinnerID == "p1" {
		proof.WinnerID = "p2"
	} else {
		proof.WinnerID = "p1"
	}

	_, err := VerifyProof(proof)
	assert.ErrorIs(t, err, domain.ErrVerificationMismatch)
}

func TestVerifyProof_TamperedTicket(t *testing.T) {
	proof := publishedProof(t)
	proof.Ticket = (proof.Ticket + 1) % 10000

	_, err := VerifyProof(proof)
	assert.ErrorIs(t, err, domain.ErrVerificationMismatch)
}

func TestVerifyProof_SwappedSeed(t *testing.T) {
	proof := publishedProof(t)
	other, err := GenerateSeed()
	require.NoError(t, err)
	proof.ServerSeed = other

	_, err = VerifyProof(proof)
	assert.ErrorIs(t, err, domain.ErrVerificationMismatch)
	assert.ErrorIs(t, err, domain.ErrCommitmentMismatch)
}

func TestVerify_ReorderedEntriesChangeLayout(t *testing.T) {
	proof := publishedProof(t)
	in := InputFromProof(proof)
	in.Entries = []domain.WeightEntry{proof.Entries[2], proof.Entries[0], proof.Entries[1]}

	out, err := Verify(in)
	require.NoError(t, err)
	// Same ticket, different layout: the ticket does not depend on ordering
	assert.Equal(t, proof.Ticket, out.Ticket)
}

func TestVerify_EmptyEntries(t *testing.T) {
	proof := publishedProof(t)
	in := InputFromProof(proof)
	in.Entries = nil

	_, err := Verify(in)
	assert.ErrorIs(t, err, domain.ErrEmptyPot)
}

func TestMatchClaim(t *testing.T) {
	out := Outcome{Ticket: 215, WinnerID: "b", Total: 400}
	ticket := int64(215)
	other := int64(10)

	tests := []struct {
		name     string
		winnerID string
		ticket   *int64
		wantErr  bool
	}{
		{"No claim", "", nil, false},
		{"Winner and ticket", "b", &ticket, false},
		{"Winner only", "b", nil, false},
		{"Wrong winner, no ticket", "a", nil, true},
		{"Right winner, wrong ticket", "b", &other, true},
		{"Ticket only, wrong", "", &other, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MatchClaim(out, tt.winnerID, tt.ticket)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrVerificationMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
