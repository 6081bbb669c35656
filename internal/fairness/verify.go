package fairness

import (
	"fmt"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// VerifyInput holds the public, post-reveal inputs of a draw
type VerifyInput struct {
	ServerSeed string               `json:"server_seed" validate:"required,hexadecimal,len=64"`
	Commitment string               `json:"commitment" validate:"required,hexadecimal,len=64"`
	Nonce      string               `json:"nonce" validate:"required"`
	RoundHash  string               `json:"round_hash" validate:"required"`
	Entries    []domain.WeightEntry `json:"entries" validate:"required,min=1,dive"`
}

// InputFromProof extracts the verification inputs recorded on a proof
func InputFromProof(p domain.Proof) VerifyInput {
	return VerifyInput{
		ServerSeed: p.ServerSeed,
		Commitment: p.Commitment,
		Nonce:      p.Nonce,
		RoundHash:  p.RoundHash,
		Entries:    p.Entries,
	}
}

// Verify recomputes a draw from public inputs only. The seed must match the commitment.
func Verify(in VerifyInput) (Outcome, error) {
	if err := CheckCommitment(in.ServerSeed, in.Commitment); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", domain.ErrVerificationMismatch, err)
	}
	return Draw(in.ServerSeed, in.Nonce, in.RoundHash, in.Entries)
}

// VerifyClaim recomputes the draw and compares it with a published winner and ticket
func VerifyClaim(in VerifyInput, winnerID string, ticket int64) (Outcome, error) {
	out, err := Verify(in)
	if err != nil {
		return Outcome{}, err
	}
	return out, MatchClaim(out, winnerID, &ticket)
}

// MatchClaim compares a recomputed outcome with a claimed winner. A nil ticket checks the
// winner only; an empty winner id checks the ticket only.
func MatchClaim(out Outcome, winnerID string, ticket *int64) error {
	if winnerID != "" && out.WinnerID != winnerID {
		return fmt.Errorf("%w: claimed winner %s, recomputed winner %s ticket %d",
			domain.ErrVerificationMismatch, winnerID, out.WinnerID, out.Ticket)
	}
	if ticket != nil && out.Ticket != *ticket {
		return fmt.Errorf("%w: claimed ticket %d, recomputed winner %s ticket %d",
			domain.ErrVerificationMismatch, *ticket, out.WinnerID, out.Ticket)
	}
	return nil
}

// VerifyProof checks an archived proof end to end
func VerifyProof(p domain.Proof) (Outcome, error) {
	return VerifyClaim(InputFromProof(p), p.WinnerID, p.Ticket)
}
