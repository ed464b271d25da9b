package examsession_test

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	examsession "github.com/flashneiga/backend/internal/domain/exam_session"
	"github.com/flashneiga/backend/internal/domain/question"
)

func catalogQuestions(t *testing.T, n int) []question.Question {
	t.Helper()
	out := make([]question.Question, 0, n)
	for i := 0; i < n; i++ {
		q, err := question.New(
			fmt.Sprintf("Question %d", i),
			"priorities",
			"",
			fmt.Sprintf("Explanation %d", i),
			[]question.OptionSpec{
				{Text: "right answer", IsCorrect: true},
				{Text: "wrong answer"},
				{Text: "other wrong answer"},
			},
		)
		if err != nil {
			t.Fatalf("building question: %v", err)
		}
		out = append(out, *q)
	}
	return out
}

func newSession(t *testing.T, n int) *examsession.Session {
	t.Helper()
	return examsession.New("user-1", examsession.Snapshot(catalogQuestions(t, n)))
}

func TestNew_StartsInProgress(t *testing.T) {
	s := newSession(t, 5)

	if s.Status != examsession.StatusInProgress {
		t.Errorf("expected status in_progress, got %s", s.Status)
	}
	if len(s.Answers) != 0 {
		t.Errorf("expected no answers on a fresh session, got %d", len(s.Answers))
	}
	if s.TimeBudget != 40*time.Minute {
		t.Errorf("expected 40m time budget, got %v", s.TimeBudget)
	}
	if s.CompletedAt != nil {
		t.Error("expected CompletedAt to be nil while in progress")
	}
}

func TestSnapshot_CopiesCatalogContent(t *testing.T) {
	catalog := catalogQuestions(t, 3)
	snap := examsession.Snapshot(catalog)

	// Mutating the catalog after snapshotting must not reach the session.
	catalog[0].Text = "edited after start"
	catalog[0].Options[0].IsCorrect = false
	catalog[0].Options[1].IsCorrect = true

	if snap[0].Text == "edited after start" {
		t.Error("snapshot shares question text with the catalog")
	}
	if snap[0].CorrectOptionID() != catalog[0].Options[0].ID {
		t.Error("snapshot shares option flags with the catalog")
	}
}

func TestRecord_JudgesAgainstSnapshot(t *testing.T) {
	s := newSession(t, 3)
	q := s.Questions[0]

	ans, err := s.Record(q.QuestionID, q.CorrectOptionID(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ans.IsCorrect {
		t.Error("expected correct option to be judged correct")
	}

	wrongID := ""
	for _, o := range q.Options {
		if !o.IsCorrect {
			wrongID = o.ID
			break
		}
	}
	ans, err = s.Record(q.QuestionID, wrongID, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.IsCorrect {
		t.Error("expected wrong option to be judged incorrect")
	}
}

func TestRecord_UpsertsLatestAnswer(t *testing.T) {
	s := newSession(t, 3)
	q := s.Questions[0]

	wrongID := ""
	for _, o := range q.Options {
		if !o.IsCorrect {
			wrongID = o.ID
			break
		}
	}

	if _, err := s.Record(q.QuestionID, wrongID, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Record(q.QuestionID, q.CorrectOptionID(), time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Answers) != 1 {
		t.Fatalf("expected exactly one stored answer, got %d", len(s.Answers))
	}
	if got := s.Answers[q.QuestionID].SelectedOptionID; got != q.CorrectOptionID() {
		t.Errorf("expected latest answer to win, got option %s", got)
	}
}

func TestRecord_UnknownQuestion(t *testing.T) {
	s := newSession(t, 3)
	before := len(s.Answers)

	_, err := s.Record("no-such-question", "whatever", time.Now())
	if !errors.Is(err, examsession.ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
	if len(s.Answers) != before {
		t.Error("expected session state unchanged after rejected answer")
	}
}

func TestFinish_AllCorrect(t *testing.T) {
	s := newSession(t, 30)
	for _, q := range s.Questions {
		if _, err := s.Record(q.QuestionID, q.CorrectOptionID(), time.Now()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	res, err := s.Finish(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CorrectAnswers != 30 || res.TotalQuestions != 30 {
		t.Errorf("expected 30/30, got %d/%d", res.CorrectAnswers, res.TotalQuestions)
	}
	if res.ScorePercentage != 100.0 {
		t.Errorf("expected 100%%, got %v", res.ScorePercentage)
	}
	if !res.Passed {
		t.Error("expected a perfect exam to pass")
	}
	if s.Status != examsession.StatusCompleted {
		t.Errorf("expected status completed, got %s", s.Status)
	}
	if s.CompletedAt == nil {
		t.Error("expected CompletedAt to be set")
	}
}

func TestFinish_PassThresholdIsRelative(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		correct    int
		wantPct    float64
		wantPassed bool
	}{
		{"24 of 30 fails", 30, 24, 80.0, false},
		{"25 of 30 passes", 30, 25, float64(25) / 30 * 100, true},
		{"short pool scales", 10, 9, 90.0, true},
		{"short pool below bar", 10, 8, 80.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, tt.total)
			for i, q := range s.Questions {
				optionID := q.CorrectOptionID()
				if i >= tt.correct {
					for _, o := range q.Options {
						if !o.IsCorrect {
							optionID = o.ID
							break
						}
					}
				}
				if _, err := s.Record(q.QuestionID, optionID, time.Now()); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			res, err := s.Finish(time.Now())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.CorrectAnswers != tt.correct {
				t.Errorf("expected %d correct, got %d", tt.correct, res.CorrectAnswers)
			}
			if math.Abs(res.ScorePercentage-tt.wantPct) > 1e-9 {
				t.Errorf("expected %.2f%%, got %v", tt.wantPct, res.ScorePercentage)
			}
			if res.Passed != tt.wantPassed {
				t.Errorf("expected passed=%v, got %v", tt.wantPassed, res.Passed)
			}
		})
	}
}

func TestFinish_UnansweredCountAsIncorrect(t *testing.T) {
	s := newSession(t, 10)
	for _, q := range s.Questions[:4] {
		if _, err := s.Record(q.QuestionID, q.CorrectOptionID(), time.Now()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	res, err := s.Finish(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CorrectAnswers != 4 {
		t.Errorf("expected 4 correct, got %d", res.CorrectAnswers)
	}
	if res.TotalQuestions != 10 {
		t.Errorf("expected total 10, got %d", res.TotalQuestions)
	}
}

func TestFinish_Idempotent(t *testing.T) {
	s := newSession(t, 5)
	for _, q := range s.Questions {
		if _, err := s.Record(q.QuestionID, q.CorrectOptionID(), time.Now()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	first, err := s.Finish(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstCompletedAt := *s.CompletedAt

	second, err := s.Finish(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error on second finish: %v", err)
	}
	if first != second {
		t.Errorf("expected identical results, got %+v then %+v", first, second)
	}
	if !s.CompletedAt.Equal(firstCompletedAt) {
		t.Error("expected CompletedAt unchanged on second finish")
	}
}

func TestRecord_AfterFinishFails(t *testing.T) {
	s := newSession(t, 3)
	if _, err := s.Finish(time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := s.Questions[0]
	_, err := s.Record(q.QuestionID, q.CorrectOptionID(), time.Now())
	if !errors.Is(err, examsession.ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
}

func TestAbandon(t *testing.T) {
	s := newSession(t, 3)
	if err := s.Abandon(time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != examsession.StatusAbandoned {
		t.Errorf("expected status abandoned, got %s", s.Status)
	}

	if err := s.Abandon(time.Now()); !errors.Is(err, examsession.ErrNotActive) {
		t.Errorf("expected ErrNotActive on second abandon, got %v", err)
	}
	if _, err := s.Finish(time.Now()); !errors.Is(err, examsession.ErrNotActive) {
		t.Errorf("expected ErrNotActive finishing an abandoned session, got %v", err)
	}
}

func TestExpired(t *testing.T) {
	s := newSession(t, 3)
	if s.Expired(s.CreatedAt.Add(39 * time.Minute)) {
		t.Error("expected session within budget to not be expired")
	}
	if !s.Expired(s.CreatedAt.Add(41 * time.Minute)) {
		t.Error("expected session past budget to be expired")
	}
}
