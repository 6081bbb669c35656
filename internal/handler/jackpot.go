package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/fairness"
	"github.com/osse101/JackpotEngine_Go/internal/identity"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
	"github.com/osse101/JackpotEngine_Go/internal/round"
)

// JackpotHandler serves the public round endpoints
type JackpotHandler struct {
	service  round.Service
	resolver identity.Resolver
	now      func() time.Time
}

// NewJackpotHandler creates the public round handlers
func NewJackpotHandler(service round.Service, resolver identity.Resolver) *JackpotHandler {
	return &JackpotHandler{
		service:  service,
		resolver: resolver,
		now:      time.Now,
	}
}

// JoinRequest is one deposit into the open round
type JoinRequest struct {
	ItemIDs    []string `json:"item_ids" validate:"required,min=1,max=100,dive,itemid,max=128"`
	ClientSeed string   `json:"client_seed,omitempty" validate:"omitempty,printascii,max=64"`
}

// StatusResponse is the catch-up view of the live round
type StatusResponse struct {
	Round      domain.Round       `json:"round"`
	Chances    map[string]float64 `json:"chances"`
	Halted     bool               `json:"halted"`
	ServerTime int64              `json:"server_time"`
}

// VerifyRequest carries public draw inputs, optionally with the outcome they claim
type VerifyRequest struct {
	fairness.VerifyInput
	WinnerID string `json:"winner_id,omitempty"`
	Ticket   *int64 `json:"ticket,omitempty" validate:"omitempty,gte=0"`
}

// VerifyResponse is the recomputed outcome of a draw
type VerifyResponse struct {
	Valid   bool             `json:"valid"`
	Outcome fairness.Outcome `json:"outcome"`
	Reason  string           `json:"reason,omitempty"`
}

func chances(r domain.Round) map[string]float64 {
	out := make(map[string]float64, len(r.Participants))
	for _, p := range r.Participants {
		if r.TotalValue > 0 {
			out[p.Identity.ID] = float64(p.Weight) / float64(r.TotalValue)
		}
	}
	return out
}

// HandleStatus returns the live round
// @Summary Current round
// @Description Catch-up read of the live round: status, participants, pot and reveal timing
// @Tags jackpot
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/v1/jackpot/status [get]
func (h *JackpotHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	current := h.service.Current(r.Context())
	respondJSON(w, http.StatusOK, StatusResponse{
		Round:      current,
		Chances:    chances(current),
		Halted:     h.service.Halted(),
		ServerTime: h.now().UnixMilli(),
	})
}

// HandleJoin deposits items into the open round
// @Summary Join the round
// @Description Deposits items for the bearer of the credential. All items are admitted or none.
// @Tags jackpot
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer credential"
// @Param request body JoinRequest true "Items to deposit"
// @Success 201 {object} domain.Round
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/jackpot/join [post]
func (h *JackpotHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	credential, ok := BearerCredential(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgMissingCredential)
		return
	}

	who, err := h.resolver.Resolve(r.Context(), credential)
	if err != nil {
		respondServiceError(w, r, LogMsgResolveFailed, err)
		return
	}

	var req JoinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Join round"); err != nil {
		return
	}
	LogRequestFields(logger.FromContext(r.Context()), "user_id", who.ID, "items", len(req.ItemIDs))

	view, err := h.service.Contribute(r.Context(), who, round.ContributeRequest{
		ItemIDs:    req.ItemIDs,
		ClientSeed: req.ClientSeed,
	})
	if err != nil {
		respondServiceError(w, r, LogMsgJoinFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, view)
}

// HandleHistory lists archived rounds, newest first
// @Summary Round history
// @Tags jackpot
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Entries to skip"
// @Success 200 {object} domain.HistoryPage
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/jackpot/history [get]
func (h *JackpotHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetIntQueryParam(r, w, ParamLimit, 0)
	if !ok {
		return
	}
	offset, ok := GetIntQueryParam(r, w, ParamOffset, 0)
	if !ok {
		return
	}

	page, err := h.service.History(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, r, LogMsgHistoryFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// HandleHistoryEntry returns one archived round with its proof
// @Summary Archived round
// @Tags jackpot
// @Produce json
// @Param roundHash path string true "Round hash"
// @Success 200 {object} domain.ArchiveEntry
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/jackpot/history/{roundHash} [get]
func (h *JackpotHandler) HandleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, ParamRoundHash)
	if hash == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingRoundHash)
		return
	}

	entry, err := h.service.HistoryEntry(r.Context(), hash)
	if err != nil {
		respondServiceError(w, r, LogMsgHistoryEntryFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// HandleVerifyRound recomputes an archived round on the server
// @Summary Verify archived round
// @Tags jackpot
// @Produce json
// @Param roundHash path string true "Round hash"
// @Success 200 {object} VerifyResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/jackpot/history/{roundHash}/verify [get]
func (h *JackpotHandler) HandleVerifyRound(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, ParamRoundHash)
	if hash == "" {
		respondError(w, http.StatusBadRequest, ErrMsgMissingRoundHash)
		return
	}

	out, err := h.service.VerifyRound(r.Context(), hash)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationMismatch) {
			respondJSON(w, http.StatusOK, VerifyResponse{Valid: false, Outcome: out, Reason: err.Error()})
			return
		}
		respondServiceError(w, r, LogMsgVerifyRoundFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, VerifyResponse{Valid: true, Outcome: out})
}

// HandleVerify recomputes a draw from caller-supplied public inputs. Nothing is read from
// server state.
// @Summary Verify a draw
// @Description Recomputes ticket and winner from server seed, commitment, nonce, round hash and weights
// @Tags jackpot
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Public draw inputs"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/jackpot/verify [post]
func (h *JackpotHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Verify draw"); err != nil {
		return
	}

	out, err := fairness.Verify(req.VerifyInput)
	if err == nil {
		err = fairness.MatchClaim(out, req.WinnerID, req.Ticket)
	}

	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, VerifyResponse{Valid: true, Outcome: out})
	case errors.Is(err, domain.ErrVerificationMismatch):
		respondJSON(w, http.StatusOK, VerifyResponse{Valid: false, Outcome: out, Reason: err.Error()})
	default:
		logger.FromContext(r.Context()).Warn(ErrMsgVerifyInputRejected, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgVerifyInputRejected)
	}
}
