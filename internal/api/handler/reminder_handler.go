package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apimw "github.com/Samuel-J-Mathew/chorewarsOfficial/internal/api/middleware"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/service"
)

// ReminderHandler handles single-reminder CRUD endpoints.
type ReminderHandler struct {
	svc    *service.ReminderService
	logger *zap.Logger
}

func NewReminderHandler(svc *service.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/reminders
//
// @Summary     Create a reminder
// @Tags        reminders
// @Accept      json
// @Produce     json
// @Param       X-Idempotency-Key  header    string                        false  "Idempotency key"
// @Param       body               body      domain.CreateReminderRequest  true   "Reminder payload"
// @Success     201                {object}  domain.Reminder
// @Success     200                {object}  domain.Reminder               "Duplicate: returned existing reminder"
// @Failure     422                {object}  map[string]string
// @Failure     503                {object}  map[string]string
// @Router      /api/v1/reminders [post]
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	idempotencyKey := r.Header.Get("X-Idempotency-Key")
	rem, isDuplicate, err := h.svc.Create(r.Context(), req, idempotencyKey)
	if err != nil {
		h.logger.Warn("create reminder failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}

	status := http.StatusCreated
	if isDuplicate {
		status = http.StatusOK
	}
	respondJSON(w, status, rem)
}

// GetByID handles GET /api/v1/reminders/{id}
//
// @Summary  Get a reminder by ID
// @Tags     reminders
// @Produce  json
// @Param    id   path      string  true  "Reminder UUID"
// @Success  200  {object}  domain.Reminder
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/reminders/{id} [get]
func (h *ReminderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rem, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rem)
}

// List handles GET /api/v1/reminders
//
// @Summary  List reminders with filtering and pagination
// @Tags     reminders
// @Produce  json
// @Param    status     query     string  false  "Filter by status"
// @Param    category   query     string  false  "Filter by category"
// @Param    member_id  query     string  false  "Filter by member"
// @Param    from       query     string  false  "Created after (RFC3339)"
// @Param    to         query     string  false  "Created before (RFC3339)"
// @Param    page       query     int     false  "Page number (default 1)"
// @Param    limit      query     int     false  "Items per page (default 20, max 100)"
// @Success  200        {object}  map[string]any
// @Router   /api/v1/reminders [get]
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)
	reminders, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list reminders")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  reminders,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// Cancel handles DELETE /api/v1/reminders/{id}
//
// @Summary  Cancel a pending reminder
// @Tags     reminders
// @Param    id   path      string  true  "Reminder UUID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Failure  409  {object}  map[string]string
// @Router   /api/v1/reminders/{id} [delete]
func (h *ReminderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Cancel(r.Context(), id); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelAll handles DELETE /api/v1/members/{memberID}/reminders
//
// @Summary  Cancel every undelivered reminder for a member
// @Tags     reminders
// @Produce  json
// @Param    memberID  path      string  true  "Member ID"
// @Success  200       {object}  map[string]int
// @Router   /api/v1/members/{memberID}/reminders [delete]
func (h *ReminderHandler) CancelAll(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	count, err := h.svc.CancelAll(r.Context(), memberID)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"cancelled": count})
}

func parseListFilter(r *http.Request) domain.ListFilter {
	q := r.URL.Query()
	filter := domain.ListFilter{Page: 1, Limit: 20}

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l <= 100 {
		filter.Limit = l
	}
	if s := q.Get("status"); s != "" {
		st := domain.Status(s)
		filter.Status = &st
	}
	if c := q.Get("category"); c != "" {
		cat := domain.Category(c)
		filter.Category = &cat
	}
	if m := q.Get("member_id"); m != "" {
		filter.MemberID = &m
	}
	if f := q.Get("from"); f != "" {
		if t, err := time.Parse(time.RFC3339, f); err == nil {
			filter.From = &t
		}
	}
	if to := q.Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}
	return filter
}
