package api

import (
	"net/http"
	"time"

	"github.com/flashneiga/backend/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateQuestionRequest struct {
	Text        string                `json:"text"`
	Category    string                `json:"category"`
	ImageURL    string                `json:"image_url,omitempty"`
	Explanation string                `json:"explanation"`
	Options     []question.OptionSpec `json:"options"`
}

type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse is the learner-facing question shape: option
// correctness flags are stripped.
type QuestionResponse struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	Category  string           `json:"category"`
	ImageURL  string           `json:"image_url,omitempty"`
	Options   []OptionResponse `json:"options"`
	CreatedAt time.Time        `json:"created_at"`
}

type TrainingCheckRequest struct {
	QuestionID       string `json:"question_id"`
	SelectedOptionID string `json:"selected_option_id"`
}

// TrainingCheckResponse reveals the answer key; training mode has no
// score to protect.
type TrainingCheckResponse struct {
	IsCorrect       bool   `json:"is_correct"`
	CorrectOptionID string `json:"correct_option_id"`
	Explanation     string `json:"explanation"`
}

func toQuestionResponse(q question.Question) QuestionResponse {
	options := make([]OptionResponse, len(q.Options))
	for i, o := range q.Options {
		options[i] = OptionResponse{ID: o.ID, Text: o.Text}
	}
	return QuestionResponse{
		ID:        q.ID,
		Text:      q.Text,
		Category:  q.Category,
		ImageURL:  q.ImageURL,
		Options:   options,
		CreatedAt: q.CreatedAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /api/questions?category=signs&category=priorities&limit=20
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	categories := r.URL.Query()["category"]
	limit := queryInt(r, "limit", 0)

	questions, err := h.store.ListQuestions(r.Context(), categories, limit)
	if h.handleError(w, err, "questions") {
		return
	}

	response := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		response[i] = toQuestionResponse(q)
	}
	respondJSON(w, http.StatusOK, response)
}

// POST /api/questions
func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := question.New(req.Text, req.Category, req.ImageURL, req.Explanation, req.Options)
	if h.handleError(w, err, "question") {
		return
	}

	if err := h.store.SaveQuestion(r.Context(), q); h.handleError(w, err, "question") {
		return
	}

	// Admins get the full record back, correctness flags included.
	respondJSON(w, http.StatusCreated, q)
}

// DELETE /api/questions/{questionID}
func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")

	if err := h.store.DeleteQuestion(r.Context(), questionID); h.handleError(w, err, "question") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/questions/import
func (h *Handler) importQuestions(w http.ResponseWriter, r *http.Request) {
	report, err := h.importer.Import(r.Context(), r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("questions imported", "imported", report.Imported, "rejected", report.Rejected)
	respondJSON(w, http.StatusCreated, report)
}

// POST /api/training/check
func (h *Handler) checkTrainingAnswer(w http.ResponseWriter, r *http.Request) {
	var req TrainingCheckRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := h.store.GetQuestion(r.Context(), req.QuestionID)
	if h.handleError(w, err, "question") {
		return
	}

	correct, _ := q.CorrectOption()
	respondJSON(w, http.StatusOK, TrainingCheckResponse{
		IsCorrect:       req.SelectedOptionID == correct.ID,
		CorrectOptionID: correct.ID,
		Explanation:     q.Explanation,
	})
}
