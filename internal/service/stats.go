// internal/service/stats.go
package service

import (
	"context"
	"time"

	"github.com/flashneiga/backend/internal/store"
)

// ExamHistoryEntry summarizes one past exam for the history views.
type ExamHistoryEntry struct {
	ID              string     `json:"id"`
	Status          string     `json:"status"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	CorrectAnswers  int        `json:"correct_answers"`
	TotalQuestions  int        `json:"total_questions"`
	ScorePercentage float64    `json:"score_percentage"`
	Passed          bool       `json:"passed"`
}

// CategoryStat is per-category correctness over completed exams.
type CategoryStat struct {
	Category   string  `json:"category"`
	Answered   int     `json:"answered"`
	Correct    int     `json:"correct"`
	SuccessPct float64 `json:"success_pct"`
}

// StatsSummary is the dashboard payload: recent exams, total error
// count and the learner's strongest and weakest categories.
type StatsSummary struct {
	RecentExams   []ExamHistoryEntry `json:"recent_exams"`
	TotalErrors   int                `json:"total_errors"`
	BestCategory  string             `json:"best_category"`
	WorstCategory string             `json:"worst_category"`
	Categories    []CategoryStat     `json:"categories"`
}

// StatsService is a read-side aggregator over stored exam sessions.
// It derives everything from the score fields and transcripts the
// ExamService persisted; it never mutates anything.
type StatsService struct {
	store store.Store
}

// NewStatsService creates a StatsService.
func NewStatsService(s store.Store) *StatsService {
	return &StatsService{store: s}
}

const (
	recentExamLimit = 5
	activityLimit   = 20

	// Categories with fewer answers than this are too noisy to call
	// best or worst.
	minCategorySample = 3
)

// Summary builds the learner's dashboard numbers.
func (ss *StatsService) Summary(ctx context.Context, userID string) (*StatsSummary, error) {
	recent, err := ss.store.ListCompletedSessions(ctx, userID, recentExamLimit)
	if err != nil {
		return nil, err
	}

	totalErrors, err := ss.store.TotalErrors(ctx, userID)
	if err != nil {
		return nil, err
	}

	breakdown, err := ss.store.CategoryBreakdown(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &StatsSummary{
		RecentExams: toHistory(recent),
		TotalErrors: totalErrors,
	}

	bestPct, worstPct := -1.0, 101.0
	for category, score := range breakdown {
		pct := 0.0
		if score.Answered > 0 {
			pct = float64(score.Correct) / float64(score.Answered) * 100
		}
		summary.Categories = append(summary.Categories, CategoryStat{
			Category:   category,
			Answered:   score.Answered,
			Correct:    score.Correct,
			SuccessPct: pct,
		})
		if score.Answered < minCategorySample {
			continue
		}
		if pct > bestPct {
			bestPct = pct
			summary.BestCategory = category
		}
		if pct < worstPct {
			worstPct = pct
			summary.WorstCategory = category
		}
	}
	return summary, nil
}

// Activity returns the learner's recent sessions regardless of outcome.
func (ss *StatsService) Activity(ctx context.Context, userID string) ([]ExamHistoryEntry, error) {
	recent, err := ss.store.ListRecentSessions(ctx, userID, activityLimit)
	if err != nil {
		return nil, err
	}
	return toHistory(recent), nil
}

func toHistory(summaries []store.SessionSummary) []ExamHistoryEntry {
	out := make([]ExamHistoryEntry, len(summaries))
	for i, s := range summaries {
		entry := ExamHistoryEntry{
			ID:         s.ID,
			Status:     string(s.Status),
			StartedAt:  s.CreatedAt,
			FinishedAt: s.CompletedAt,
		}
		if s.Result != nil {
			entry.CorrectAnswers = s.Result.CorrectAnswers
			entry.TotalQuestions = s.Result.TotalQuestions
			entry.ScorePercentage = s.Result.ScorePercentage
			entry.Passed = s.Result.Passed
		}
		out[i] = entry
	}
	return out
}
