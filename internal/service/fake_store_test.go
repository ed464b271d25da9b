package service_test

import (
	"context"
	"errors"
	"sort"
	"time"

	examsession "github.com/flashneiga/backend/internal/domain/exam_session"
	"github.com/flashneiga/backend/internal/domain/question"
	"github.com/flashneiga/backend/internal/domain/sign"
	"github.com/flashneiga/backend/internal/domain/user"
	"github.com/flashneiga/backend/internal/store"
)

// fakeStore is an in-memory Store for service tests. Optional error
// fields simulate storage failures for the propagation tests.
type fakeStore struct {
	users     map[string]*user.User
	questions []question.Question
	signs     []sign.TrafficSign
	sessions  map[string]*examsession.Session
	weights   map[string]map[string]int

	failSave   error
	failUpsert error
	failBump   error
}

var _ store.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*user.User),
		sessions: make(map[string]*examsession.Session),
		weights:  make(map[string]map[string]int),
	}
}

func (f *fakeStore) SaveUser(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) SaveQuestion(_ context.Context, q *question.Question) error {
	f.questions = append(f.questions, *q)
	return nil
}

func (f *fakeStore) GetQuestion(_ context.Context, id string) (*question.Question, error) {
	for _, q := range f.questions {
		if q.ID == id {
			q := q
			return &q, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListQuestions(_ context.Context, categories []string, limit int) ([]question.Question, error) {
	var out []question.Question
	for _, q := range f.questions {
		if len(categories) > 0 && !contains(categories, q.Category) {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteQuestion(_ context.Context, id string) error {
	for i, q := range f.questions {
		if q.ID == id {
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) SaveSign(_ context.Context, s *sign.TrafficSign) error {
	f.signs = append(f.signs, *s)
	return nil
}

func (f *fakeStore) ListSigns(_ context.Context) ([]sign.TrafficSign, error) {
	return f.signs, nil
}

func (f *fakeStore) SaveSession(_ context.Context, s *examsession.Session) error {
	if f.failSave != nil {
		return f.failSave
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeStore) GetSession(_ context.Context, sessionID, userID string) (*examsession.Session, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, store.ErrNotFound
	}
	return s, nil
}

func (f *fakeStore) UpsertAnswer(_ context.Context, sessionID string, ans examsession.Answer) error {
	if f.failUpsert != nil {
		return f.failUpsert
	}
	s, ok := f.sessions[sessionID]
	if !ok {
		return store.ErrNotFound
	}
	if s.Status != examsession.StatusInProgress {
		return examsession.ErrNotActive
	}
	s.Answers[ans.QuestionID] = ans
	return nil
}

func (f *fakeStore) CompleteSession(_ context.Context, sessionID, userID string, completedAt time.Time) (examsession.Result, bool, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return examsession.Result{}, false, store.ErrNotFound
	}
	switch s.Status {
	case examsession.StatusCompleted:
		return *s.Result, false, nil
	case examsession.StatusAbandoned:
		return examsession.Result{}, false, examsession.ErrNotActive
	}
	correct := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	res := examsession.Score(correct, len(s.Questions))
	s.Result = &res
	s.Status = examsession.StatusCompleted
	s.CompletedAt = &completedAt
	return res, true, nil
}

func (f *fakeStore) AbandonSession(_ context.Context, sessionID, userID string, endedAt time.Time) (bool, error) {
	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID {
		return false, store.ErrNotFound
	}
	if s.Status != examsession.StatusInProgress {
		return false, nil
	}
	s.Status = examsession.StatusAbandoned
	s.CompletedAt = &endedAt
	return true, nil
}

func (f *fakeStore) ListRecentSessions(_ context.Context, userID string, limit int) ([]store.SessionSummary, error) {
	return f.listSessions(userID, limit, false), nil
}

func (f *fakeStore) ListCompletedSessions(_ context.Context, userID string, limit int) ([]store.SessionSummary, error) {
	return f.listSessions(userID, limit, true), nil
}

func (f *fakeStore) listSessions(userID string, limit int, completedOnly bool) []store.SessionSummary {
	var out []store.SessionSummary
	for _, s := range f.sessions {
		if s.UserID != userID {
			continue
		}
		if completedOnly && s.Status != examsession.StatusCompleted {
			continue
		}
		out = append(out, store.SessionSummary{
			ID:          s.ID,
			Status:      s.Status,
			CreatedAt:   s.CreatedAt,
			CompletedAt: s.CompletedAt,
			Result:      s.Result,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeStore) ErrorWeights(_ context.Context, userID string) (map[string]int, error) {
	out := make(map[string]int)
	for q, w := range f.weights[userID] {
		out[q] = w
	}
	return out, nil
}

func (f *fakeStore) BumpErrorWeight(_ context.Context, userID, questionID string) error {
	if f.failBump != nil {
		return f.failBump
	}
	if f.weights[userID] == nil {
		f.weights[userID] = make(map[string]int)
	}
	w := f.weights[userID][questionID] + 1
	if w > examsession.MaxErrorWeight {
		w = examsession.MaxErrorWeight
	}
	f.weights[userID][questionID] = w
	return nil
}

func (f *fakeStore) TotalErrors(_ context.Context, userID string) (int, error) {
	total := 0
	for _, s := range f.sessions {
		if s.UserID != userID || s.Status != examsession.StatusCompleted {
			continue
		}
		for _, a := range s.Answers {
			if !a.IsCorrect {
				total++
			}
		}
	}
	return total, nil
}

func (f *fakeStore) CategoryBreakdown(_ context.Context, userID string) (map[string]store.CategoryScore, error) {
	out := make(map[string]store.CategoryScore)
	for _, s := range f.sessions {
		if s.UserID != userID || s.Status != examsession.StatusCompleted {
			continue
		}
		for _, a := range s.Answers {
			q, ok := s.Question(a.QuestionID)
			if !ok {
				continue
			}
			score := out[q.Category]
			score.Answered++
			if a.IsCorrect {
				score.Correct++
			}
			out[q.Category] = score
		}
	}
	return out, nil
}

func contains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

var errStorageDown = errors.New("storage down")
