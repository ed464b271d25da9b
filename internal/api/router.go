package api

import "net/http"

// RegisterRoutes mounts the full API surface under /api.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("GET /api/auth/me", h.requireUser(h.me))

	// Question catalog
	mux.HandleFunc("GET /api/questions", h.requireUser(h.listQuestions))
	mux.HandleFunc("POST /api/questions", h.requireAdmin(h.createQuestion))
	mux.HandleFunc("DELETE /api/questions/{questionID}", h.requireAdmin(h.deleteQuestion))
	mux.HandleFunc("POST /api/questions/import", h.requireAdmin(h.importQuestions))

	// Training mode: untimed, answer key revealed per question
	mux.HandleFunc("POST /api/training/check", h.requireUser(h.checkTrainingAnswer))

	// Road sign reference
	mux.HandleFunc("GET /api/signs", h.requireUser(h.listSigns))
	mux.HandleFunc("POST /api/signs", h.requireAdmin(h.createSign))
	mux.HandleFunc("POST /api/signs/import", h.requireAdmin(h.importSigns))

	// Exam sessions
	mux.HandleFunc("POST /api/exams", h.requireUser(h.startExam))
	mux.HandleFunc("GET /api/exams/{sessionID}", h.requireUser(h.getExam))
	mux.HandleFunc("POST /api/exams/{sessionID}/answers", h.requireUser(h.submitExamAnswer))
	mux.HandleFunc("POST /api/exams/{sessionID}/finish", h.requireUser(h.finishExam))
	mux.HandleFunc("POST /api/exams/{sessionID}/abandon", h.requireUser(h.abandonExam))
	mux.HandleFunc("GET /api/exams/{sessionID}/certificate", h.requireUser(h.examCertificate))

	// Stats
	mux.HandleFunc("GET /api/stats/summary", h.requireUser(h.statsSummary))
	mux.HandleFunc("GET /api/stats/activity", h.requireUser(h.statsActivity))
}
