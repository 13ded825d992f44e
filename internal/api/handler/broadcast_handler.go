package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/service"
)

// BroadcastHandler handles household fan-out endpoints.
type BroadcastHandler struct {
	svc    *service.ReminderService
	logger *zap.Logger
}

func NewBroadcastHandler(svc *service.ReminderService, logger *zap.Logger) *BroadcastHandler {
	return &BroadcastHandler{svc: svc, logger: logger}
}

// CreateBroadcast handles POST /api/v1/reminders/broadcast
//
// @Summary  Create one reminder per household member in a single request
// @Tags     broadcasts
// @Accept   json
// @Produce  json
// @Param    body  body      domain.CreateBroadcastRequest  true  "Broadcast payload"
// @Success  201   {object}  domain.Broadcast
// @Failure  422   {object}  map[string]string
// @Router   /api/v1/reminders/broadcast [post]
func (h *BroadcastHandler) CreateBroadcast(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	b, err := h.svc.CreateBroadcast(r.Context(), req)
	if err != nil {
		h.logger.Warn("create broadcast failed", zap.Error(err))
		mapError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, b)
}

// GetBroadcast handles GET /api/v1/broadcasts/{id}
//
// @Summary  Get a broadcast and its reminders
// @Tags     broadcasts
// @Produce  json
// @Param    id   path      string  true  "Broadcast UUID"
// @Success  200  {object}  map[string]any
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/broadcasts/{id} [get]
func (h *BroadcastHandler) GetBroadcast(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, reminders, err := h.svc.GetBroadcast(r.Context(), id)
	if err != nil {
		mapError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"broadcast": b,
		"reminders": reminders,
	})
}
