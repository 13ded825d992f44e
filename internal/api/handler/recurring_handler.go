package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/service"
)

// RecurringHandler handles standing reminder definitions.
type RecurringHandler struct {
	svc    *service.ReminderService
	logger *zap.Logger
}

func NewRecurringHandler(svc *service.ReminderService, logger *zap.Logger) *RecurringHandler {
	return &RecurringHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/recurring
//
// @Summary  Create a recurring reminder definition
// @Tags     recurring
// @Accept   json
// @Produce  json
// @Param    body  body      domain.CreateRecurringRequest  true  "Recurring payload"
// @Success  201   {object}  domain.RecurringReminder
// @Failure  422   {object}  map[string]string
// @Router   /api/v1/recurring [post]
func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRecurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := h.svc.CreateRecurring(r.Context(), req)
	if err != nil {
		h.logger.Warn("create recurring reminder failed", zap.Error(err))
		mapError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}

// List handles GET /api/v1/recurring
//
// @Summary  List all recurring reminder definitions
// @Tags     recurring
// @Produce  json
// @Success  200  {object}  map[string]any
// @Router   /api/v1/recurring [get]
func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListRecurring(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list recurring reminders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": recs})
}

// Delete handles DELETE /api/v1/recurring/{id}
//
// @Summary  Delete a recurring reminder definition
// @Tags     recurring
// @Param    id   path      string  true  "Recurring UUID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/recurring/{id} [delete]
func (h *RecurringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteRecurring(r.Context(), id); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScheduleWeeklyReport handles POST /api/v1/reports/weekly
//
// @Summary  Register the Sunday-morning weekly report for a member
// @Tags     recurring
// @Accept   json
// @Produce  json
// @Param    body  body      map[string]string  true  "member_id"
// @Success  201   {object}  domain.RecurringReminder
// @Router   /api/v1/reports/weekly [post]
func (h *RecurringHandler) ScheduleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"member_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MemberID == "" {
		mapError(w, domain.ErrInvalidMember)
		return
	}

	rec, err := h.svc.ScheduleWeeklyReport(r.Context(), req.MemberID)
	if err != nil {
		h.logger.Warn("schedule weekly report failed", zap.Error(err))
		mapError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}
