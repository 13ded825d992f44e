package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/service"
)

// UnreadHandler exposes the unread chat message count from the document store.
type UnreadHandler struct {
	svc    *service.ReminderService
	logger *zap.Logger
}

func NewUnreadHandler(svc *service.ReminderService, logger *zap.Logger) *UnreadHandler {
	return &UnreadHandler{svc: svc, logger: logger}
}

// UnreadCount handles GET /api/v1/unread/{memberID}
//
// @Summary  Count unread chat messages for a member
// @Tags     unread
// @Produce  json
// @Param    memberID  path      string  true  "Member ID"
// @Success  200       {object}  map[string]int
// @Router   /api/v1/unread/{memberID} [get]
func (h *UnreadHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	count, err := h.svc.UnreadCount(r.Context(), memberID)
	if err != nil {
		h.logger.Warn("unread count failed",
			zap.String("member_id", memberID), zap.Error(err))
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"unread": count})
}
