package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/service"
)

// TapHandler resolves tap payloads echoed back by the mobile client into
// navigation routes.
type TapHandler struct {
	svc *service.ReminderService
}

func NewTapHandler(svc *service.ReminderService) *TapHandler {
	return &TapHandler{svc: svc}
}

// Resolve handles POST /api/v1/taps
//
// @Summary  Resolve a notification tap payload to a navigation route
// @Tags     taps
// @Accept   json
// @Produce  json
// @Param    body  body      map[string]string  true  "payload"
// @Success  200   {object}  domain.Route
// @Failure  422   {object}  map[string]string
// @Router   /api/v1/taps [post]
func (h *TapHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	route, err := h.svc.ResolveTap(req.Payload)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, route)
}
