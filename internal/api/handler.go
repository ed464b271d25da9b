package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/flashneiga/backend/internal/auth"
	examsession "github.com/flashneiga/backend/internal/domain/exam_session"
	"github.com/flashneiga/backend/internal/domain/question"
	"github.com/flashneiga/backend/internal/importer"
	"github.com/flashneiga/backend/internal/payment"
	"github.com/flashneiga/backend/internal/scraper"
	"github.com/flashneiga/backend/internal/service"
	"github.com/flashneiga/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store    store.Store
	exams    *service.ExamService
	stats    *service.StatsService
	importer *importer.Importer
	tokens   *auth.TokenManager
	gate     payment.Gate
	catalog  *scraper.Catalog // nil when no sign catalog is configured
	logger   *slog.Logger
}

// Deps bundles the Handler's collaborators.
type Deps struct {
	Store    store.Store
	Exams    *service.ExamService
	Stats    *service.StatsService
	Importer *importer.Importer
	Tokens   *auth.TokenManager
	Gate     payment.Gate
	Catalog  *scraper.Catalog
	Logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(d Deps) *Handler {
	return &Handler{
		store:    d.Store,
		exams:    d.Exams,
		stats:    d.Stats,
		importer: d.Importer,
		tokens:   d.Tokens,
		gate:     d.Gate,
		catalog:  d.Catalog,
		logger:   d.Logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON decodes the request body into v. On failure it writes a
// 400 and returns false (caller should return).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// queryInt reads an integer query parameter, falling back on absence
// or garbage.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// handleError maps domain and store errors onto HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	var ve *question.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrDuplicate):
		respondError(w, http.StatusConflict, entity+" already exists")
	case errors.Is(err, examsession.ErrNotActive):
		respondError(w, http.StatusConflict, "exam session is not active")
	case errors.Is(err, examsession.ErrUnknownQuestion):
		respondError(w, http.StatusNotFound, "question is not part of this exam session")
	case errors.Is(err, service.ErrEmptyPool):
		respondError(w, http.StatusBadRequest, "no questions match the requested categories")
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, ve.Error())
	default:
		h.logger.Error("request failed", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
