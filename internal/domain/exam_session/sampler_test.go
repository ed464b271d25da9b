package examsession_test

import (
	"fmt"
	"math/rand"
	"testing"

	examsession "github.com/flashneiga/backend/internal/domain/exam_session"
	"github.com/flashneiga/backend/internal/domain/question"
)

func samplerPool(t *testing.T, n int) []question.Question {
	t.Helper()
	return catalogQuestions(t, n)
}

func TestSampleWeight(t *testing.T) {
	tests := []struct {
		errorCount int
		want       int
	}{
		{0, 1},
		{1, 2},
		{9, 10},
		{10, 10},
		{50, 10},
		{-3, 1},
	}
	for _, tt := range tests {
		if got := examsession.SampleWeight(tt.errorCount); got != tt.want {
			t.Errorf("SampleWeight(%d) = %d, want %d", tt.errorCount, got, tt.want)
		}
	}
}

func TestWeightedSample_NoDuplicates(t *testing.T) {
	pool := samplerPool(t, 40)
	rng := rand.New(rand.NewSource(1))

	picked := examsession.WeightedSample(pool, nil, 30, rng)

	if len(picked) != 30 {
		t.Fatalf("expected 30 questions, got %d", len(picked))
	}
	inPool := make(map[string]bool, len(pool))
	for _, q := range pool {
		inPool[q.ID] = true
	}
	seen := make(map[string]bool, len(picked))
	for _, q := range picked {
		if !inPool[q.ID] {
			t.Errorf("question %s is not from the pool", q.ID)
		}
		if seen[q.ID] {
			t.Errorf("question %s selected twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestWeightedSample_PoolSmallerThanK(t *testing.T) {
	pool := samplerPool(t, 12)
	rng := rand.New(rand.NewSource(1))

	picked := examsession.WeightedSample(pool, nil, 30, rng)

	if len(picked) != 12 {
		t.Errorf("expected the whole 12-question pool, got %d", len(picked))
	}
}

func TestWeightedSample_EmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if picked := examsession.WeightedSample(nil, nil, 30, rng); picked != nil {
		t.Errorf("expected nil for empty pool, got %d questions", len(picked))
	}
}

// Over many trials a max-weight question must appear measurably more
// often than an unweighted sibling. This checks the bias statistically,
// not exact probabilities.
func TestWeightedSample_BiasTowardsPastErrors(t *testing.T) {
	pool := samplerPool(t, 100)
	heavy := pool[0].ID
	baseline := pool[1].ID
	weights := map[string]int{heavy: examsession.MaxErrorWeight}

	rng := rand.New(rand.NewSource(42))

	const trials = 1000
	heavyHits, baselineHits := 0, 0
	for i := 0; i < trials; i++ {
		picked := examsession.WeightedSample(pool, weights, 30, rng)
		for _, q := range picked {
			switch q.ID {
			case heavy:
				heavyHits++
			case baseline:
				baselineHits++
			}
		}
	}

	if baselineHits == 0 {
		t.Fatal("baseline question never selected across 1000 trials")
	}
	ratio := float64(heavyHits) / float64(baselineHits)
	if ratio < 1.5 {
		t.Errorf("expected heavy question at least 1.5x more often, got %.2fx (%d vs %d)",
			ratio, heavyHits, baselineHits)
	}
}

func TestWeightedSample_DeterministicForSeed(t *testing.T) {
	pool := samplerPool(t, 25)

	first := examsession.WeightedSample(pool, nil, 10, rand.New(rand.NewSource(7)))
	second := examsession.WeightedSample(pool, nil, 10, rand.New(rand.NewSource(7)))

	if fmt.Sprint(questionIDs(first)) != fmt.Sprint(questionIDs(second)) {
		t.Error("expected identical selections for identical seeds")
	}
}

func questionIDs(qs []question.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
