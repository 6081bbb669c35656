package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Contribution errors
	ErrMsgRoundClosed           = "round is not accepting contributions"
	ErrMsgInvalidItem           = "item failed ownership, tradability or valuation checks"
	ErrMsgDuplicateContribution = "item already committed to a round"
	ErrMsgTooManyItems          = "too many items in one deposit"

	// Outcome errors
	ErrMsgEmptyPot             = "cannot draw from an empty pot"
	ErrMsgVerificationMismatch = "recomputed draw does not match published outcome"
	ErrMsgInvalidSeed          = "invalid server seed"
	ErrMsgCommitmentMismatch   = "server seed does not match commitment"

	// Engine errors
	ErrMsgEngineHalted  = "engine halted after integrity fault"
	ErrMsgEngineStopped = "engine is shutting down"
	ErrMsgRoundNotFound = "round not found"
	ErrMsgNotHalted     = "engine is not halted"

	// Archive errors
	ErrMsgArchiveConflict = "round already archived"

	// Identity errors
	ErrMsgUnauthenticated = "credential could not be resolved"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%s: %w", context, domain.ErrXxx) for additional context.
var (
	ErrRoundClosed           = errors.New(ErrMsgRoundClosed)
	ErrInvalidItem           = errors.New(ErrMsgInvalidItem)
	ErrDuplicateContribution = errors.New(ErrMsgDuplicateContribution)
	ErrTooManyItems          = errors.New(ErrMsgTooManyItems)

	ErrEmptyPot             = errors.New(ErrMsgEmptyPot)
	ErrVerificationMismatch = errors.New(ErrMsgVerificationMismatch)
	ErrInvalidSeed          = errors.New(ErrMsgInvalidSeed)
	ErrCommitmentMismatch   = errors.New(ErrMsgCommitmentMismatch)

	ErrEngineHalted  = errors.New(ErrMsgEngineHalted)
	ErrEngineStopped = errors.New(ErrMsgEngineStopped)
	ErrRoundNotFound = errors.New(ErrMsgRoundNotFound)
	ErrNotHalted     = errors.New(ErrMsgNotHalted)

	ErrArchiveConflict = errors.New(ErrMsgArchiveConflict)

	ErrUnauthenticated = errors.New(ErrMsgUnauthenticated)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
