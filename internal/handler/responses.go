package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode first so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes its user-facing mapping
func respondServiceError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error(logMsg, "error", err)
	} else {
		log.Warn(logMsg, "error", err, "status", statusCode)
	}
	respondError(w, statusCode, userMsg)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please sign in again."
	ErrMsgResourceNotFoundErr = "Resource not found."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	// Contribution messages
	ErrMsgRoundClosedError     = "The round is no longer accepting deposits"
	ErrMsgDuplicateItemError   = "That item has already been deposited"
	ErrMsgInvalidItemError     = "That item cannot be deposited"
	ErrMsgTooManyItemsError    = "Too many items in one deposit"
	ErrMsgEmptyPotError        = "The pot is empty"
	ErrMsgRoundNotFoundError   = "Round not found"
	ErrMsgEngineHaltedError    = "Jackpot is paused for an integrity check"
	ErrMsgEngineStoppedError   = "Jackpot is shutting down"
	ErrMsgNotHaltedError       = "Jackpot is not paused"
	ErrMsgVerifyMismatchError  = "Recomputed outcome does not match"
	ErrMsgInvalidSeedError     = "Server seed is malformed"
	ErrMsgArchiveConflictError = "Round is already archived"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// errors.Is walks the whole wrap chain, including errors joined with %w twice
	switch {
	case errors.Is(err, domain.ErrDuplicateContribution):
		return http.StatusConflict, ErrMsgDuplicateItemError
	case errors.Is(err, domain.ErrRoundClosed):
		return http.StatusConflict, ErrMsgRoundClosedError
	case errors.Is(err, domain.ErrInvalidItem):
		return http.StatusUnprocessableEntity, ErrMsgInvalidItemError
	case errors.Is(err, domain.ErrTooManyItems):
		return http.StatusBadRequest, ErrMsgTooManyItemsError
	case errors.Is(err, domain.ErrEmptyPot):
		return http.StatusBadRequest, ErrMsgEmptyPotError
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrMsgAuthFailedError
	case errors.Is(err, domain.ErrRoundNotFound):
		return http.StatusNotFound, ErrMsgRoundNotFoundError
	case errors.Is(err, domain.ErrEngineHalted):
		return http.StatusServiceUnavailable, ErrMsgEngineHaltedError
	case errors.Is(err, domain.ErrEngineStopped):
		return http.StatusServiceUnavailable, ErrMsgEngineStoppedError
	case errors.Is(err, domain.ErrNotHalted):
		return http.StatusConflict, ErrMsgNotHaltedError
	case errors.Is(err, domain.ErrVerificationMismatch):
		return http.StatusUnprocessableEntity, ErrMsgVerifyMismatchError
	case errors.Is(err, domain.ErrInvalidSeed), errors.Is(err, domain.ErrCommitmentMismatch):
		return http.StatusBadRequest, ErrMsgInvalidSeedError
	case errors.Is(err, domain.ErrArchiveConflict):
		return http.StatusConflict, ErrMsgArchiveConflictError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}

	// Default to generic message so internal details never reach clients
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
