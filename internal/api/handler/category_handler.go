package handler

import (
	"net/http"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/category"
)

// CategoryHandler serves the static channel registry. The mobile app fetches
// it on first launch to register the matching notification channels and
// groups locally.
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler { return &CategoryHandler{} }

// List handles GET /api/v1/categories
//
// @Summary  List notification channel definitions
// @Tags     system
// @Produce  json
// @Success  200  {object}  map[string]any
// @Router   /api/v1/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"data": category.All()})
}
