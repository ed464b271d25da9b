package examsession

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/flashneiga/backend/internal/domain/question"
)

const (
	// ExamLength is the number of questions in a full simulated exam.
	// Sessions built from smaller pools legitimately contain fewer.
	ExamLength = 30

	// TimeBudget is the advisory countdown attached to every session.
	// It is enforced by the client calling Finish, not by a server timer.
	TimeBudget = 40 * time.Minute

	// passThresholdPct expresses the pass bar as a share of the session's
	// own question count (25/30 ≈ 83%), so it holds for short sessions too.
	passThresholdPct = 83.0
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAbandoned  Status = "abandoned"
)

var (
	// ErrNotActive is returned when an operation needs an in-progress session.
	ErrNotActive = errors.New("exam session is not active")
	// ErrUnknownQuestion is returned when the question is not part of the
	// session's snapshot.
	ErrUnknownQuestion = errors.New("question is not part of this exam session")
)

// SnapshotOption is an answer option frozen into a session at creation.
type SnapshotOption struct {
	ID        string
	Text      string
	IsCorrect bool
}

// SnapshotQuestion is a question frozen into a session at creation.
// Later edits to the catalog never reach it.
type SnapshotQuestion struct {
	QuestionID  string
	Text        string
	Category    string
	ImageURL    string
	Explanation string
	Options     []SnapshotOption
}

// CorrectOptionID returns the ID of the option marked correct.
func (q SnapshotQuestion) CorrectOptionID() string {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o.ID
		}
	}
	return ""
}

// Answer is the learner's latest choice for one snapshotted question.
type Answer struct {
	QuestionID       string
	SelectedOptionID string
	IsCorrect        bool
	AnsweredAt       time.Time
}

// Result holds the score fields computed once at completion.
type Result struct {
	CorrectAnswers  int
	TotalQuestions  int
	ScorePercentage float64
	Passed          bool
}

// Score computes the derived score fields from raw counts. Unanswered
// questions are simply absent from the correct count.
func Score(correct, total int) Result {
	pct := 0.0
	if total > 0 {
		pct = float64(correct) / float64(total) * 100
	}
	return Result{
		CorrectAnswers:  correct,
		TotalQuestions:  total,
		ScorePercentage: pct,
		Passed:          pct >= passThresholdPct,
	}
}

// Session is a single timed exam attempt. It is mutated only through
// Record, Finish and Abandon, and becomes read-only once terminal.
type Session struct {
	ID          string
	UserID      string
	Questions   []SnapshotQuestion
	Answers     map[string]Answer
	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time
	TimeBudget  time.Duration
	Result      *Result
}

// New creates an in-progress session owning the given snapshot.
func New(userID string, questions []SnapshotQuestion) *Session {
	return &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		Questions:  questions,
		Answers:    make(map[string]Answer),
		Status:     StatusInProgress,
		CreatedAt:  time.Now().UTC(),
		TimeBudget: TimeBudget,
	}
}

// Snapshot deep-copies catalog questions into session-owned values.
func Snapshot(questions []question.Question) []SnapshotQuestion {
	out := make([]SnapshotQuestion, len(questions))
	for i, q := range questions {
		sq := SnapshotQuestion{
			QuestionID:  q.ID,
			Text:        q.Text,
			Category:    q.Category,
			ImageURL:    q.ImageURL,
			Explanation: q.Explanation,
			Options:     make([]SnapshotOption, len(q.Options)),
		}
		for j, o := range q.Options {
			sq.Options[j] = SnapshotOption{ID: o.ID, Text: o.Text, IsCorrect: o.IsCorrect}
		}
		out[i] = sq
	}
	return out
}

// Question looks up a snapshotted question by its catalog ID.
func (s *Session) Question(questionID string) (SnapshotQuestion, bool) {
	for _, q := range s.Questions {
		if q.QuestionID == questionID {
			return q, true
		}
	}
	return SnapshotQuestion{}, false
}

// Record upserts the learner's answer for one question. Re-answering
// replaces the previous choice, so retries and out-of-order delivery
// are safe. Correctness is judged against the snapshot only.
func (s *Session) Record(questionID, selectedOptionID string, at time.Time) (Answer, error) {
	if s.Status != StatusInProgress {
		return Answer{}, ErrNotActive
	}
	q, ok := s.Question(questionID)
	if !ok {
		return Answer{}, ErrUnknownQuestion
	}
	ans := Answer{
		QuestionID:       questionID,
		SelectedOptionID: selectedOptionID,
		IsCorrect:        selectedOptionID == q.CorrectOptionID(),
		AnsweredAt:       at,
	}
	s.Answers[questionID] = ans
	return ans, nil
}

// Finish scores the session and moves it to Completed. Calling it again
// returns the stored result untouched. Unanswered questions count as
// incorrect.
func (s *Session) Finish(at time.Time) (Result, error) {
	if s.Result != nil {
		return *s.Result, nil
	}
	if s.Status != StatusInProgress {
		return Result{}, ErrNotActive
	}

	correct := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	res := Score(correct, len(s.Questions))
	s.Result = &res
	s.Status = StatusCompleted
	completedAt := at
	s.CompletedAt = &completedAt
	return res, nil
}

// Abandon ends an in-progress session without scoring it. A terminal
// session stays as it is.
func (s *Session) Abandon(at time.Time) error {
	if s.Status != StatusInProgress {
		return ErrNotActive
	}
	s.Status = StatusAbandoned
	completedAt := at
	s.CompletedAt = &completedAt
	return nil
}

// Expired reports whether the advisory time budget has elapsed.
func (s *Session) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > s.TimeBudget
}
