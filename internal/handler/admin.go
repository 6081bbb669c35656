package handler

import (
	"net/http"

	"github.com/osse101/JackpotEngine_Go/internal/logger"
	"github.com/osse101/JackpotEngine_Go/internal/round"
)

// AdminHandler serves operator actions on the round engine
type AdminHandler struct {
	service round.Service
}

// NewAdminHandler creates the admin handlers
func NewAdminHandler(service round.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// HandleForceLock locks the open round early. An empty pot aborts the round and answers 400.
// @Summary Force lock
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/admin/jackpot/lock [post]
func (h *AdminHandler) HandleForceLock(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ForceLock(r.Context()); err != nil {
		respondServiceError(w, r, LogMsgForceLockFailed, err)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgAdminAction, "action", "force_lock")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRoundLockedSuccess})
}

// HandleResume reopens the engine after an integrity halt
// @Summary Resume after halt
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/jackpot/resume [post]
func (h *AdminHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Resume(r.Context()); err != nil {
		respondServiceError(w, r, LogMsgResumeFailed, err)
		return
	}
	logger.FromContext(r.Context()).Warn(LogMsgAdminAction, "action", "resume")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEngineResumedSuccess})
}
