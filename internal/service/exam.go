// internal/service/exam.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	examsession "github.com/flashneiga/backend/internal/domain/exam_session"
	"github.com/flashneiga/backend/internal/store"
)

// ErrEmptyPool is returned by Start when the category filter matches
// no questions at all. A pool smaller than the exam length is fine.
var ErrEmptyPool = errors.New("no questions match the requested categories")

// AnswerFeedback is the immediate response to a recorded answer. It
// carries the explanation but deliberately not the correct option ID;
// the answer key only becomes visible in the completed transcript.
type AnswerFeedback struct {
	IsCorrect   bool
	Explanation string
}

// ExamService orchestrates exam attempts: weighted selection,
// snapshotting, answer recording, error-weight upkeep and scoring.
type ExamService struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewExamService creates an ExamService.
func NewExamService(s store.Store, logger *slog.Logger) *ExamService {
	return &ExamService{
		store:  s,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start opens a new exam attempt for the learner. The pool is filtered
// by the optional categories, sampled with the learner's error weights
// and frozen into the session before anything is returned.
func (es *ExamService) Start(ctx context.Context, userID string, categories []string) (*examsession.Session, error) {
	pool, err := es.store.ListQuestions(ctx, categories, 0)
	if err != nil {
		return nil, fmt.Errorf("loading question pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	weights, err := es.store.ErrorWeights(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading error weights: %w", err)
	}

	es.mu.Lock()
	picked := examsession.WeightedSample(pool, weights, examsession.ExamLength, es.rng)
	es.mu.Unlock()

	session := examsession.New(userID, examsession.Snapshot(picked))
	if err := es.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	es.logger.Info("exam started",
		"session_id", session.ID,
		"user_id", userID,
		"questions", len(session.Questions),
		"pool", len(pool),
	)
	return session, nil
}

// RecordAnswer judges the selected option against the session snapshot
// and upserts it. Incorrect answers bump the learner's error weight for
// that question. Any storage failure is surfaced; a failed call never
// looks recorded.
func (es *ExamService) RecordAnswer(ctx context.Context, sessionID, userID, questionID, selectedOptionID string) (AnswerFeedback, error) {
	session, err := es.store.GetSession(ctx, sessionID, userID)
	if err != nil {
		return AnswerFeedback{}, err
	}

	ans, err := session.Record(questionID, selectedOptionID, es.now())
	if err != nil {
		return AnswerFeedback{}, err
	}

	// The store re-checks the status inside the write transaction, so a
	// Finish that slipped in after our read still rejects this answer.
	if err := es.store.UpsertAnswer(ctx, sessionID, ans); err != nil {
		return AnswerFeedback{}, err
	}

	if !ans.IsCorrect {
		if err := es.store.BumpErrorWeight(ctx, userID, questionID); err != nil {
			return AnswerFeedback{}, fmt.Errorf("updating error weight: %w", err)
		}
	}

	q, _ := session.Question(questionID)
	return AnswerFeedback{IsCorrect: ans.IsCorrect, Explanation: q.Explanation}, nil
}

// Finish completes the session and returns its score. Finishing twice
// returns the stored result unchanged, so the 40-minute auto-finish
// and a user-triggered finish cannot disagree.
func (es *ExamService) Finish(ctx context.Context, sessionID, userID string) (examsession.Result, error) {
	res, applied, err := es.store.CompleteSession(ctx, sessionID, userID, es.now())
	if err != nil {
		return examsession.Result{}, err
	}
	if applied {
		es.logger.Info("exam finished",
			"session_id", sessionID,
			"user_id", userID,
			"correct", res.CorrectAnswers,
			"total", res.TotalQuestions,
			"passed", res.Passed,
		)
	}
	return res, nil
}

// Abandon ends an in-progress session without scoring it.
func (es *ExamService) Abandon(ctx context.Context, sessionID, userID string) error {
	applied, err := es.store.AbandonSession(ctx, sessionID, userID, es.now())
	if err != nil {
		return err
	}
	if !applied {
		return examsession.ErrNotActive
	}
	es.logger.Info("exam abandoned", "session_id", sessionID, "user_id", userID)
	return nil
}

// Get returns the session transcript, scoped to its owner.
func (es *ExamService) Get(ctx context.Context, sessionID, userID string) (*examsession.Session, error) {
	return es.store.GetSession(ctx, sessionID, userID)
}
