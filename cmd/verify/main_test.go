package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/fairness"
)

func publishedProof(t *testing.T) domain.Proof {
	t.Helper()
	seed, err := fairness.GenerateSeed()
	require.NoError(t, err)
	commitment, err := fairness.Commit(seed)
	require.NoError(t, err)

	entries := []domain.WeightEntry{{ParticipantID: "a", Weight: 250}, {ParticipantID: "b", Weight: 750}}
	out, err := fairness.Draw(seed, "nonce", "round-1", entries)
	require.NoError(t, err)

	return domain.Proof{
		RoundHash:  "round-1",
		ServerSeed: seed,
		Commitment: commitment,
		Nonce:      "nonce",
		Entries:    entries,
		Ticket:     out.Ticket,
		WinnerID:   out.WinnerID,
	}
}

// publishedEntry wraps a proof in the round record the engine would archive with it
func publishedEntry(t *testing.T) domain.ArchiveEntry {
	t.Helper()
	proof := publishedProof(t)
	ticket := proof.Ticket
	round := domain.Round{
		Hash:       proof.RoundHash,
		Status:     domain.RoundStatusCompleted,
		WinnerID:   proof.WinnerID,
		Ticket:     &ticket,
		ServerSeed: proof.ServerSeed,
		Commitment: proof.Commitment,
		Nonce:      proof.Nonce,
	}
	for _, e := range proof.Entries {
		round.Participants = append(round.Participants, domain.Participant{Identity: domain.Identity{ID: e.ParticipantID}, Weight: e.Weight})
		round.TotalValue += e.Weight
	}
	return domain.ArchiveEntry{Round: round, Proof: proof}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(strings.NewReader(stdin), &out).Run(append([]string{"jackpot-verify"}, args...))
	return out.String(), err
}

func TestVerify_FromStdinBareProof(t *testing.T) {
	data, err := json.Marshal(publishedProof(t))
	require.NoError(t, err)

	out, err := run(t, string(data), "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "round round-1: valid")
}

func TestVerify_FromFileArchiveEntry(t *testing.T) {
	entry := publishedEntry(t)
	data, err := json.Marshal(entry)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "entry.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out, err := run(t, "", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
}

func TestVerify_TamperedProofFails(t *testing.T) {
	proof := publishedProof(t)
	if proof.WinnerID == "a" {
		proof.WinnerID = "b"
	} else {
		proof.WinnerID = "a"
	}
	data, err := json.Marshal(proof)
	require.NoError(t, err)

	out, err := run(t, string(data), "--file", "-")
	require.Error(t, err)
	assert.Contains(t, out, "INVALID")
}

func TestVerify_TamperedEntryFails(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(e *domain.ArchiveEntry)
	}{
		{"Round winner differs from proof", func(e *domain.ArchiveEntry) {
			if e.Round.WinnerID == "a" {
				e.Round.WinnerID = "b"
			} else {
				e.Round.WinnerID = "a"
			}
		}},
		{"Participant weight differs from proof", func(e *domain.ArchiveEntry) {
			e.Round.Participants[0].Weight += 100
			e.Round.TotalValue += 100
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := publishedEntry(t)
			tt.tamper(&entry)
			data, err := json.Marshal(entry)
			require.NoError(t, err)

			out, err := run(t, string(data), "--file", "-")
			assert.ErrorIs(t, err, domain.ErrVerificationMismatch)
			assert.Contains(t, out, "INVALID")
		})
	}
}

func TestVerify_FromServer(t *testing.T) {
	entry := publishedEntry(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/jackpot/history/round-1" {
			http.Error(w, `{"error":"Round not found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(entry)
	}))
	defer srv.Close()

	out, err := run(t, "", "--server", srv.URL+"/", "--round", "round-1")
	require.NoError(t, err)
	assert.Contains(t, out, "winner "+entry.Proof.WinnerID)

	_, err = run(t, "", "--server", srv.URL, "--round", "other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestVerify_ArgumentErrors(t *testing.T) {
	_, err := run(t, "")
	assert.Error(t, err)

	_, err = run(t, "", "--round", "r1")
	assert.Error(t, err)

	_, err = run(t, "{}", "--file", "-")
	assert.ErrorIs(t, err, errNoProof)
}
