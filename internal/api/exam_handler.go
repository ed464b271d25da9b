package api

import (
	"net/http"
	"time"

	"github.com/flashneiga/backend/internal/cert"
	examsession "github.com/flashneiga/backend/internal/domain/exam_session"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartExamRequest struct {
	Categories []string `json:"categories,omitempty"`
}

type ExamOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ExamQuestion struct {
	QuestionID string       `json:"question_id"`
	Text       string       `json:"text"`
	Category   string       `json:"category"`
	ImageURL   string       `json:"image_url,omitempty"`
	Options    []ExamOption `json:"options"`
}

type ExamAnswer struct {
	QuestionID       string    `json:"question_id"`
	SelectedOptionID string    `json:"selected_option_id"`
	IsCorrect        bool      `json:"is_correct"`
	AnsweredAt       time.Time `json:"answered_at"`
}

type ExamResult struct {
	CorrectAnswers  int     `json:"correct_answers"`
	TotalQuestions  int     `json:"total_questions"`
	ScorePercentage float64 `json:"score_percentage"`
	Passed          bool    `json:"passed"`
}

// ExamAnswerKey maps question ID to correct option ID. It is attached
// to the transcript only once the session is terminal.
type ExamAnswerKey map[string]string

type ExamResponse struct {
	ID             string            `json:"id"`
	Status         string            `json:"status"`
	Questions      []ExamQuestion    `json:"questions"`
	Answers        []ExamAnswer      `json:"answers,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	TimeBudgetSecs int               `json:"time_budget_secs"`
	Result         *ExamResult       `json:"result,omitempty"`
	AnswerKey      ExamAnswerKey     `json:"answer_key,omitempty"`
	Explanations   map[string]string `json:"explanations,omitempty"`
}

type SubmitExamAnswerRequest struct {
	QuestionID       string `json:"question_id"`
	SelectedOptionID string `json:"selected_option_id"`
}

type SubmitExamAnswerResponse struct {
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

func toExamResult(res examsession.Result) *ExamResult {
	return &ExamResult{
		CorrectAnswers:  res.CorrectAnswers,
		TotalQuestions:  res.TotalQuestions,
		ScorePercentage: res.ScorePercentage,
		Passed:          res.Passed,
	}
}

// toExamResponse converts a session into its API shape. Correctness
// flags stay hidden while the exam is running; the answer key and
// explanations appear once the session is terminal.
func toExamResponse(s *examsession.Session) ExamResponse {
	resp := ExamResponse{
		ID:             s.ID,
		Status:         string(s.Status),
		Questions:      make([]ExamQuestion, len(s.Questions)),
		CreatedAt:      s.CreatedAt,
		CompletedAt:    s.CompletedAt,
		TimeBudgetSecs: int(s.TimeBudget.Seconds()),
	}
	for i, q := range s.Questions {
		eq := ExamQuestion{
			QuestionID: q.QuestionID,
			Text:       q.Text,
			Category:   q.Category,
			ImageURL:   q.ImageURL,
			Options:    make([]ExamOption, len(q.Options)),
		}
		for j, o := range q.Options {
			eq.Options[j] = ExamOption{ID: o.ID, Text: o.Text}
		}
		resp.Questions[i] = eq
	}
	for _, a := range s.Answers {
		resp.Answers = append(resp.Answers, ExamAnswer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			IsCorrect:        a.IsCorrect,
			AnsweredAt:       a.AnsweredAt,
		})
	}
	if s.Result != nil {
		resp.Result = toExamResult(*s.Result)
	}
	if s.Status != examsession.StatusInProgress {
		resp.AnswerKey = make(ExamAnswerKey, len(s.Questions))
		resp.Explanations = make(map[string]string, len(s.Questions))
		for _, q := range s.Questions {
			resp.AnswerKey[q.QuestionID] = q.CorrectOptionID()
			resp.Explanations[q.QuestionID] = q.Explanation
		}
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /api/exams
func (h *Handler) startExam(w http.ResponseWriter, r *http.Request) {
	userID, _ := CurrentUser(r)

	var req StartExamRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.exams.Start(r.Context(), userID, req.Categories)
	if h.handleError(w, err, "exam") {
		return
	}

	respondJSON(w, http.StatusCreated, toExamResponse(session))
}

// GET /api/exams/{sessionID}
func (h *Handler) getExam(w http.ResponseWriter, r *http.Request) {
	userID, _ := CurrentUser(r)

	session, err := h.exams.Get(r.Context(), r.PathValue("sessionID"), userID)
	if h.handleError(w, err, "exam session") {
		return
	}

	respondJSON(w, http.StatusOK, toExamResponse(session))
}

// POST /api/exams/{sessionID}/answers
func (h *Handler) submitExamAnswer(w http.ResponseWriter, r *http.Request) {
	userID, _ := CurrentUser(r)

	var req SubmitExamAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	feedback, err := h.exams.RecordAnswer(r.Context(), r.PathValue("sessionID"), userID, req.QuestionID, req.SelectedOptionID)
	if h.handleError(w, err, "exam session") {
		return
	}

	respondJSON(w, http.StatusOK, SubmitExamAnswerResponse{
		IsCorrect:   feedback.IsCorrect,
		Explanation: feedback.Explanation,
	})
}

// POST /api/exams/{sessionID}/finish
func (h *Handler) finishExam(w http.ResponseWriter, r *http.Request) {
	userID, _ := CurrentUser(r)

	res, err := h.exams.Finish(r.Context(), r.PathValue("sessionID"), userID)
	if h.handleError(w, err, "exam session") {
		return
	}

	respondJSON(w, http.StatusOK, toExamResult(res))
}

// POST /api/exams/{sessionID}/abandon
func (h *Handler) abandonExam(w http.ResponseWriter, r *http.Request) {
	userID, _ := CurrentUser(r)

	if err := h.exams.Abandon(r.Context(), r.PathValue("sessionID"), userID); h.handleError(w, err, "exam session") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/exams/{sessionID}/certificate
//
// Renders the completed session as a PDF result sheet. Only completed
// sessions have one.
func (h *Handler) examCertificate(w http.ResponseWriter, r *http.Request) {
	userID, _ := CurrentUser(r)

	session, err := h.exams.Get(r.Context(), r.PathValue("sessionID"), userID)
	if h.handleError(w, err, "exam session") {
		return
	}
	if session.Status != examsession.StatusCompleted || session.Result == nil {
		respondError(w, http.StatusConflict, "certificate is only available for completed exams")
		return
	}

	u, err := h.store.GetUser(r.Context(), userID)
	if h.handleError(w, err, "user") {
		return
	}

	completedAt := session.CreatedAt
	if session.CompletedAt != nil {
		completedAt = *session.CompletedAt
	}

	pdf, err := cert.GeneratePDF(cert.Data{
		SessionID:   session.ID,
		LearnerName: u.FullName,
		Correct:     session.Result.CorrectAnswers,
		Total:       session.Result.TotalQuestions,
		Passed:      session.Result.Passed,
		CompletedAt: completedAt,
		Categories:  categoryRows(session),
	})
	if err != nil {
		h.logger.Error("rendering certificate", "error", err, "session_id", session.ID)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="exam-result.pdf"`)
	w.Write(pdf)
}

// categoryRows folds the session transcript into per-category counts.
// Unanswered questions count as answered-and-wrong, matching scoring.
func categoryRows(s *examsession.Session) []cert.CategoryRow {
	byCategory := make(map[string]*cert.CategoryRow)
	order := []string{}
	for _, q := range s.Questions {
		row, ok := byCategory[q.Category]
		if !ok {
			row = &cert.CategoryRow{Category: q.Category}
			byCategory[q.Category] = row
			order = append(order, q.Category)
		}
		row.Answered++
		if a, answered := s.Answers[q.QuestionID]; answered && a.IsCorrect {
			row.Correct++
		}
	}
	rows := make([]cert.CategoryRow, 0, len(order))
	for _, c := range order {
		rows = append(rows, *byCategory[c])
	}
	return rows
}
