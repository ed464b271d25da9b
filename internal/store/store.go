package store

import (
	"context"
	"errors"
	"time"

	examsession "github.com/flashneiga/backend/internal/domain/exam_session"
	"github.com/flashneiga/backend/internal/domain/question"
	"github.com/flashneiga/backend/internal/domain/sign"
	"github.com/flashneiga/backend/internal/domain/user"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// SessionSummary is the lightweight row used by history and stats
// reads, without the full question transcript.
type SessionSummary struct {
	ID          string
	Status      examsession.Status
	CreatedAt   time.Time
	CompletedAt *time.Time
	Result      *examsession.Result
}

// CategoryScore accumulates per-category correctness over completed
// sessions.
type CategoryScore struct {
	Answered int
	Correct  int
}

// Store is the persistence contract consumed by services. Callers get
// sentinel errors for the interesting cases; anything else is a
// storage failure they may retry.
type Store interface {
	// Users
	SaveUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)

	// Question catalog
	SaveQuestion(ctx context.Context, q *question.Question) error
	GetQuestion(ctx context.Context, id string) (*question.Question, error)
	ListQuestions(ctx context.Context, categories []string, limit int) ([]question.Question, error)
	DeleteQuestion(ctx context.Context, id string) error

	// Traffic signs
	SaveSign(ctx context.Context, s *sign.TrafficSign) error
	ListSigns(ctx context.Context) ([]sign.TrafficSign, error)

	// Exam sessions. UpsertAnswer and the two transition methods are the
	// only mutation paths after SaveSession. UpsertAnswer returns
	// examsession.ErrNotActive once a session is terminal.
	// CompleteSession scores the session from its stored answers inside
	// the same transaction that flips the status, so it can safely race
	// a late UpsertAnswer; calling it on an already-completed session
	// returns the stored result with applied=false.
	SaveSession(ctx context.Context, s *examsession.Session) error
	GetSession(ctx context.Context, sessionID, userID string) (*examsession.Session, error)
	UpsertAnswer(ctx context.Context, sessionID string, ans examsession.Answer) error
	CompleteSession(ctx context.Context, sessionID, userID string, completedAt time.Time) (res examsession.Result, applied bool, err error)
	AbandonSession(ctx context.Context, sessionID, userID string, endedAt time.Time) (applied bool, err error)
	ListRecentSessions(ctx context.Context, userID string, limit int) ([]SessionSummary, error)
	ListCompletedSessions(ctx context.Context, userID string, limit int) ([]SessionSummary, error)

	// Error weights, keyed (learner, question)
	ErrorWeights(ctx context.Context, userID string) (map[string]int, error)
	BumpErrorWeight(ctx context.Context, userID, questionID string) error

	// Stats reads
	TotalErrors(ctx context.Context, userID string) (int, error)
	CategoryBreakdown(ctx context.Context, userID string) (map[string]CategoryScore, error)
}
