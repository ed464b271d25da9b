package api

import (
	"net/http"

	"github.com/flashneiga/backend/internal/domain/sign"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSignRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type ImportSignsResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /api/signs
func (h *Handler) listSigns(w http.ResponseWriter, r *http.Request) {
	signs, err := h.store.ListSigns(r.Context())
	if h.handleError(w, err, "signs") {
		return
	}
	if signs == nil {
		signs = []sign.TrafficSign{}
	}
	respondJSON(w, http.StatusOK, signs)
}

// POST /api/signs
func (h *Handler) createSign(w http.ResponseWriter, r *http.Request) {
	var req CreateSignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := sign.New(req.Name, req.Category, req.Description, req.ImageURL)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveSign(r.Context(), s); h.handleError(w, err, "sign") {
		return
	}

	respondJSON(w, http.StatusCreated, s)
}

// POST /api/signs/import
//
// Walks the configured sign catalog site and stores every sign it can
// parse. Pages that fail are reported but do not abort the run.
func (h *Handler) importSigns(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		respondError(w, http.StatusServiceUnavailable, "no sign catalog is configured")
		return
	}

	signs, pageErrs, err := h.catalog.FetchAll(r.Context())
	if err != nil {
		h.logger.Error("sign catalog unreachable", "error", err)
		respondError(w, http.StatusBadGateway, "sign catalog unreachable")
		return
	}

	result := ImportSignsResult{}
	for _, e := range pageErrs {
		result.Skipped++
		result.Errors = append(result.Errors, e.Error())
	}
	for i := range signs {
		if err := h.store.SaveSign(r.Context(), &signs[i]); h.handleError(w, err, "sign") {
			return
		}
		result.Imported++
	}

	h.logger.Info("signs imported", "imported", result.Imported, "skipped", result.Skipped)
	respondJSON(w, http.StatusCreated, result)
}
