package api

import (
	"net/http"

	"github.com/flashneiga/backend/internal/service"
)

// GET /api/stats/summary
func (h *Handler) statsSummary(w http.ResponseWriter, r *http.Request) {
	userID, _ := CurrentUser(r)

	summary, err := h.stats.Summary(r.Context(), userID)
	if h.handleError(w, err, "stats") {
		return
	}
	if summary.RecentExams == nil {
		summary.RecentExams = []service.ExamHistoryEntry{}
	}
	if summary.Categories == nil {
		summary.Categories = []service.CategoryStat{}
	}

	respondJSON(w, http.StatusOK, summary)
}

// GET /api/stats/activity
func (h *Handler) statsActivity(w http.ResponseWriter, r *http.Request) {
	userID, _ := CurrentUser(r)

	activity, err := h.stats.Activity(r.Context(), userID)
	if h.handleError(w, err, "stats") {
		return
	}
	if activity == nil {
		activity = []service.ExamHistoryEntry{}
	}

	respondJSON(w, http.StatusOK, activity)
}
