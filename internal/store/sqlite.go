// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/flashneiga/backend/internal/domain/question"
	"github.com/flashneiga/backend/internal/domain/sign"
	"github.com/flashneiga/backend/internal/domain/user"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL,
    hashed_password TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    category TEXT NOT NULL,
    image_url TEXT NOT NULL DEFAULT '',
    explanation TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS question_options (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL,
    text TEXT NOT NULL,
    is_correct INTEGER NOT NULL,
    position INTEGER NOT NULL,
    FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS signs (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    completed_at TEXT,
    time_budget_secs INTEGER NOT NULL,
    correct_answers INTEGER,
    total_questions INTEGER,
    score_percentage REAL,
    passed INTEGER,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS session_questions (
    session_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    category TEXT NOT NULL,
    image_url TEXT NOT NULL DEFAULT '',
    explanation TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (session_id, question_id),
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS session_options (
    session_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    option_id TEXT NOT NULL,
    text TEXT NOT NULL,
    is_correct INTEGER NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (session_id, question_id, option_id),
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS session_answers (
    session_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    selected_option_id TEXT NOT NULL,
    is_correct INTEGER NOT NULL,
    answered_at TEXT NOT NULL,
    PRIMARY KEY (session_id, question_id),
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS error_weights (
    user_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    weight INTEGER NOT NULL,
    PRIMARY KEY (user_id, question_id)
);
`

type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check: *SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}

// ============================================================================
// Users
// ============================================================================

func (s *SQLiteStore) SaveUser(ctx context.Context, u *user.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, full_name, hashed_password, role, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.Email, u.FullName, u.HashedPassword, string(u.Role), formatTime(u.CreatedAt),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, full_name, hashed_password, role, created_at FROM users WHERE id = ?", id))
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, full_name, hashed_password, role, created_at FROM users WHERE email = ?", email))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	var role, createdAt string
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &role, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = user.Role(role)
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

// ============================================================================
// Question catalog
// ============================================================================

func (s *SQLiteStore) SaveQuestion(ctx context.Context, q *question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO questions (id, text, category, image_url, explanation, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		q.ID, q.Text, q.Category, q.ImageURL, q.Explanation, formatTime(q.CreatedAt),
	)
	if err != nil {
		return err
	}

	for i, o := range q.Options {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO question_options (id, question_id, text, is_correct, position) VALUES (?, ?, ?, ?, ?)",
			o.ID, q.ID, o.Text, o.IsCorrect, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetQuestion(ctx context.Context, id string) (*question.Question, error) {
	var q question.Question
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, text, category, image_url, explanation, created_at FROM questions WHERE id = ?", id,
	).Scan(&q.ID, &q.Text, &q.Category, &q.ImageURL, &q.Explanation, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	q.CreatedAt = parseTime(createdAt)

	q.Options, err = s.questionOptions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *SQLiteStore) questionOptions(ctx context.Context, questionID string) ([]question.Option, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, text, is_correct FROM question_options WHERE question_id = ? ORDER BY position", questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []question.Option
	for rows.Next() {
		var o question.Option
		if err := rows.Scan(&o.ID, &o.Text, &o.IsCorrect); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// ListQuestions returns catalog questions, optionally restricted to the
// given categories. A limit <= 0 means no limit.
func (s *SQLiteStore) ListQuestions(ctx context.Context, categories []string, limit int) ([]question.Question, error) {
	query := "SELECT id, text, category, image_url, explanation, created_at FROM questions"
	var args []any
	if len(categories) > 0 {
		query += " WHERE category IN (?" + strings.Repeat(", ?", len(categories)-1) + ")"
		for _, c := range categories {
			args = append(args, c)
		}
	}
	query += " ORDER BY created_at"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		var q question.Question
		var createdAt string
		if err := rows.Scan(&q.ID, &q.Text, &q.Category, &q.ImageURL, &q.Explanation, &createdAt); err != nil {
			return nil, err
		}
		q.CreatedAt = parseTime(createdAt)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		questions[i].Options, err = s.questionOptions(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return questions, nil
}

func (s *SQLiteStore) DeleteQuestion(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "DELETE FROM question_options WHERE question_id = ?", id)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// ============================================================================
// Traffic signs
// ============================================================================

func (s *SQLiteStore) SaveSign(ctx context.Context, sg *sign.TrafficSign) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO signs (id, name, category, description, image_url) VALUES (?, ?, ?, ?, ?)",
		sg.ID, sg.Name, sg.Category, sg.Description, sg.ImageURL,
	)
	return err
}

func (s *SQLiteStore) ListSigns(ctx context.Context) ([]sign.TrafficSign, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, description, image_url FROM signs ORDER BY category, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signs []sign.TrafficSign
	for rows.Next() {
		var sg sign.TrafficSign
		if err := rows.Scan(&sg.ID, &sg.Name, &sg.Category, &sg.Description, &sg.ImageURL); err != nil {
			return nil, err
		}
		signs = append(signs, sg)
	}
	return signs, rows.Err()
}
