// internal/store/sqlite_exams.go
package store

import (
	"context"
	"database/sql"
	"time"

	examsession "github.com/flashneiga/backend/internal/domain/exam_session"
)

// ============================================================================
// Sessions
// ============================================================================

func (s *SQLiteStore) SaveSession(ctx context.Context, session *examsession.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, status, created_at, time_budget_secs) VALUES (?, ?, ?, ?, ?)",
		session.ID, session.UserID, string(session.Status), formatTime(session.CreatedAt),
		int(session.TimeBudget.Seconds()),
	)
	if err != nil {
		return err
	}

	for i, q := range session.Questions {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO session_questions (session_id, question_id, position, text, category, image_url, explanation) VALUES (?, ?, ?, ?, ?, ?, ?)",
			session.ID, q.QuestionID, i, q.Text, q.Category, q.ImageURL, q.Explanation,
		)
		if err != nil {
			return err
		}
		for j, o := range q.Options {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO session_options (session_id, question_id, option_id, text, is_correct, position) VALUES (?, ?, ?, ?, ?, ?)",
				session.ID, q.QuestionID, o.ID, o.Text, o.IsCorrect, j,
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetSession loads the full session transcript, scoped to its owner.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID, userID string) (*examsession.Session, error) {
	var session examsession.Session
	var status, createdAt string
	var completedAt sql.NullString
	var budgetSecs int
	var correct, total sql.NullInt64
	var pct sql.NullFloat64
	var passed sql.NullBool

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, status, created_at, completed_at, time_budget_secs,
		        correct_answers, total_questions, score_percentage, passed
		 FROM sessions WHERE id = ? AND user_id = ?`,
		sessionID, userID,
	).Scan(&session.ID, &session.UserID, &status, &createdAt, &completedAt, &budgetSecs,
		&correct, &total, &pct, &passed)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	session.Status = examsession.Status(status)
	session.CreatedAt = parseTime(createdAt)
	session.TimeBudget = time.Duration(budgetSecs) * time.Second
	if completedAt.Valid {
		t := parseTime(completedAt.String)
		session.CompletedAt = &t
	}
	if correct.Valid {
		session.Result = &examsession.Result{
			CorrectAnswers:  int(correct.Int64),
			TotalQuestions:  int(total.Int64),
			ScorePercentage: pct.Float64,
			Passed:          passed.Bool,
		}
	}

	if session.Questions, err = s.sessionQuestions(ctx, sessionID); err != nil {
		return nil, err
	}
	if session.Answers, err = s.sessionAnswers(ctx, sessionID); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SQLiteStore) sessionQuestions(ctx context.Context, sessionID string) ([]examsession.SnapshotQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT question_id, text, category, image_url, explanation FROM session_questions WHERE session_id = ? ORDER BY position",
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []examsession.SnapshotQuestion
	index := make(map[string]int)
	for rows.Next() {
		var q examsession.SnapshotQuestion
		if err := rows.Scan(&q.QuestionID, &q.Text, &q.Category, &q.ImageURL, &q.Explanation); err != nil {
			return nil, err
		}
		index[q.QuestionID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optRows, err := s.db.QueryContext(ctx,
		"SELECT question_id, option_id, text, is_correct FROM session_options WHERE session_id = ? ORDER BY question_id, position",
		sessionID)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var questionID string
		var o examsession.SnapshotOption
		if err := optRows.Scan(&questionID, &o.ID, &o.Text, &o.IsCorrect); err != nil {
			return nil, err
		}
		if i, ok := index[questionID]; ok {
			questions[i].Options = append(questions[i].Options, o)
		}
	}
	return questions, optRows.Err()
}

func (s *SQLiteStore) sessionAnswers(ctx context.Context, sessionID string) (map[string]examsession.Answer, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT question_id, selected_option_id, is_correct, answered_at FROM session_answers WHERE session_id = ?",
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make(map[string]examsession.Answer)
	for rows.Next() {
		var a examsession.Answer
		var answeredAt string
		if err := rows.Scan(&a.QuestionID, &a.SelectedOptionID, &a.IsCorrect, &answeredAt); err != nil {
			return nil, err
		}
		a.AnsweredAt = parseTime(answeredAt)
		answers[a.QuestionID] = a
	}
	return answers, rows.Err()
}

// UpsertAnswer records the learner's latest choice for one question.
// The status check and the write share a transaction, so an answer can
// never slip into a session that has already completed.
func (s *SQLiteStore) UpsertAnswer(ctx context.Context, sessionID string, ans examsession.Answer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, "SELECT status FROM sessions WHERE id = ?", sessionID).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if examsession.Status(status) != examsession.StatusInProgress {
		return examsession.ErrNotActive
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO session_answers (session_id, question_id, selected_option_id, is_correct, answered_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id, question_id) DO UPDATE SET
		   selected_option_id = excluded.selected_option_id,
		   is_correct = excluded.is_correct,
		   answered_at = excluded.answered_at`,
		sessionID, ans.QuestionID, ans.SelectedOptionID, ans.IsCorrect, formatTime(ans.AnsweredAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// CompleteSession scores the session from its stored answers and flips
// the status to completed, all inside one transaction. A late answer
// therefore either lands before the count (and is scored) or observes
// the terminal status in UpsertAnswer. Completing an already-completed
// session returns the stored result with applied=false; an abandoned
// session yields examsession.ErrNotActive.
func (s *SQLiteStore) CompleteSession(ctx context.Context, sessionID, userID string, completedAt time.Time) (examsession.Result, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return examsession.Result{}, false, err
	}
	defer tx.Rollback()

	var status string
	var correct, total sql.NullInt64
	var pct sql.NullFloat64
	var passed sql.NullBool
	err = tx.QueryRowContext(ctx,
		`SELECT status, correct_answers, total_questions, score_percentage, passed
		 FROM sessions WHERE id = ? AND user_id = ?`,
		sessionID, userID,
	).Scan(&status, &correct, &total, &pct, &passed)
	if err == sql.ErrNoRows {
		return examsession.Result{}, false, ErrNotFound
	}
	if err != nil {
		return examsession.Result{}, false, err
	}

	switch examsession.Status(status) {
	case examsession.StatusCompleted:
		return examsession.Result{
			CorrectAnswers:  int(correct.Int64),
			TotalQuestions:  int(total.Int64),
			ScorePercentage: pct.Float64,
			Passed:          passed.Bool,
		}, false, nil
	case examsession.StatusAbandoned:
		return examsession.Result{}, false, examsession.ErrNotActive
	}

	var correctCount, questionCount int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(is_correct), 0) FROM session_answers WHERE session_id = ?",
		sessionID).Scan(&correctCount)
	if err != nil {
		return examsession.Result{}, false, err
	}
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM session_questions WHERE session_id = ?",
		sessionID).Scan(&questionCount)
	if err != nil {
		return examsession.Result{}, false, err
	}

	res := examsession.Score(correctCount, questionCount)
	_, err = tx.ExecContext(ctx,
		`UPDATE sessions SET status = ?, completed_at = ?,
		        correct_answers = ?, total_questions = ?, score_percentage = ?, passed = ?
		 WHERE id = ?`,
		string(examsession.StatusCompleted), formatTime(completedAt),
		res.CorrectAnswers, res.TotalQuestions, res.ScorePercentage, res.Passed,
		sessionID,
	)
	if err != nil {
		return examsession.Result{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return examsession.Result{}, false, err
	}
	return res, true, nil
}

// AbandonSession ends an in-progress session without a score. It
// reports false when the session was already terminal.
func (s *SQLiteStore) AbandonSession(ctx context.Context, sessionID, userID string, endedAt time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET status = ?, completed_at = ? WHERE id = ? AND user_id = ? AND status = ?",
		string(examsession.StatusAbandoned), formatTime(endedAt),
		sessionID, userID, string(examsession.StatusInProgress),
	)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected == 1 {
		return true, nil
	}

	var status string
	err = s.db.QueryRowContext(ctx,
		"SELECT status FROM sessions WHERE id = ? AND user_id = ?", sessionID, userID).Scan(&status)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *SQLiteStore) ListRecentSessions(ctx context.Context, userID string, limit int) ([]SessionSummary, error) {
	return s.listSessions(ctx,
		`SELECT id, status, created_at, completed_at, correct_answers, total_questions, score_percentage, passed
		 FROM sessions WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit)
}

func (s *SQLiteStore) ListCompletedSessions(ctx context.Context, userID string, limit int) ([]SessionSummary, error) {
	return s.listSessions(ctx,
		`SELECT id, status, created_at, completed_at, correct_answers, total_questions, score_percentage, passed
		 FROM sessions WHERE user_id = ? AND status = 'completed' ORDER BY completed_at DESC LIMIT ?`,
		userID, limit)
}

func (s *SQLiteStore) listSessions(ctx context.Context, query string, args ...any) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var status, createdAt string
		var completedAt sql.NullString
		var correct, total sql.NullInt64
		var pct sql.NullFloat64
		var passed sql.NullBool
		if err := rows.Scan(&sum.ID, &status, &createdAt, &completedAt, &correct, &total, &pct, &passed); err != nil {
			return nil, err
		}
		sum.Status = examsession.Status(status)
		sum.CreatedAt = parseTime(createdAt)
		if completedAt.Valid {
			t := parseTime(completedAt.String)
			sum.CompletedAt = &t
		}
		if correct.Valid {
			sum.Result = &examsession.Result{
				CorrectAnswers:  int(correct.Int64),
				TotalQuestions:  int(total.Int64),
				ScorePercentage: pct.Float64,
				Passed:          passed.Bool,
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// ============================================================================
// Error weights
// ============================================================================

func (s *SQLiteStore) ErrorWeights(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT question_id, weight FROM error_weights WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weights := make(map[string]int)
	for rows.Next() {
		var questionID string
		var weight int
		if err := rows.Scan(&questionID, &weight); err != nil {
			return nil, err
		}
		weights[questionID] = weight
	}
	return weights, rows.Err()
}

// BumpErrorWeight adds one to the learner's error count for a question,
// never past the cap.
func (s *SQLiteStore) BumpErrorWeight(ctx context.Context, userID, questionID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO error_weights (user_id, question_id, weight) VALUES (?, ?, 1)
		 ON CONFLICT(user_id, question_id) DO UPDATE SET weight = MIN(weight + 1, ?)`,
		userID, questionID, examsession.MaxErrorWeight,
	)
	return err
}

// ============================================================================
// Stats reads
// ============================================================================

func (s *SQLiteStore) TotalErrors(ctx context.Context, userID string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_answers sa
		 JOIN sessions s ON s.id = sa.session_id
		 WHERE s.user_id = ? AND s.status = 'completed' AND sa.is_correct = 0`,
		userID,
	).Scan(&total)
	return total, err
}

func (s *SQLiteStore) CategoryBreakdown(ctx context.Context, userID string) (map[string]CategoryScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sq.category, COUNT(*), COALESCE(SUM(sa.is_correct), 0)
		 FROM session_answers sa
		 JOIN session_questions sq ON sq.session_id = sa.session_id AND sq.question_id = sa.question_id
		 JOIN sessions s ON s.id = sa.session_id
		 WHERE s.user_id = ? AND s.status = 'completed'
		 GROUP BY sq.category`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breakdown := make(map[string]CategoryScore)
	for rows.Next() {
		var category string
		var score CategoryScore
		if err := rows.Scan(&category, &score.Answered, &score.Correct); err != nil {
			return nil, err
		}
		breakdown[category] = score
	}
	return breakdown, rows.Err()
}
