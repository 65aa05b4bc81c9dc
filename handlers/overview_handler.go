package handlers

import (
	"net/http"

	"github.com/campstack/camp-system/services"
)

type OverviewHandler struct {
	overviewService services.OverviewService
}

func NewOverviewHandler(overviewService services.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

func (h *OverviewHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	stats, err := h.overviewService.Snapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
