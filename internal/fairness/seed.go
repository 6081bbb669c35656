package fairness

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
)

// GenerateSeed returns a fresh hex-encoded server seed from crypto/rand
func GenerateSeed() (string, error) {
	b := make([]byte, SeedBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%s: %w", ErrContextGenerateSeed, err)
	}
	return hex.EncodeToString(b), nil
}

// Commit returns the public commitment for a seed: hex SHA-256 over the raw seed bytes
func Commit(seed string) (string, error) {
	raw, err := decodeSeed(seed)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// CheckCommitment reports whether a revealed seed matches its earlier commitment
func CheckCommitment(seed, commitment string) error {
	got, err := Commit(seed)
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, commitment) {
		return domain.ErrCommitmentMismatch
	}
	return nil
}

// DeriveNonce builds the public round nonce from the round hash, its sequence number and
// every participant's client seed in join order
func DeriveNonce(roundHash string, sequence int64, clientSeeds []string) string {
	h := sha256.New()
	h.Write([]byte(roundHash))
	h.Write([]byte(FieldSeparator))
	h.Write([]byte(strconv.FormatInt(sequence, 10)))
	for _, s := range clientSeeds {
		h.Write([]byte(FieldSeparator))
		h.Write([]byte(s))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// NewRoundHash derives an immutable round identifier from a unique id and the seed commitment
func NewRoundHash(id string, commitment string) string {
	sum := sha256.Sum256([]byte(id + FieldSeparator + commitment))
	return hex.EncodeToString(sum[:])
}

func decodeSeed(seed string) ([]byte, error) {
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", ErrContextDecodeSeed, domain.ErrInvalidSeed, err)
	}
	if len(raw) != SeedBytes {
		return nil, fmt.Errorf("%s: %w: want %d bytes, got %d", ErrContextDecodeSeed, domain.ErrInvalidSeed, SeedBytes, len(raw))
	}
	return raw, nil
}
