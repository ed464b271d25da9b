package examsession

import (
	"math/rand"

	"github.com/flashneiga/backend/internal/domain/question"
)

// MaxErrorWeight caps both the stored per-question error count and the
// sampling weight derived from it, so a question missed dozens of times
// cannot crowd everything else out.
const MaxErrorWeight = 10

// SampleWeight converts a stored error count into a sampling weight.
// Unseen questions weigh 1; every past mistake adds 1, capped.
func SampleWeight(errorCount int) int {
	w := errorCount + 1
	if w > MaxErrorWeight {
		w = MaxErrorWeight
	}
	if w < 1 {
		w = 1
	}
	return w
}

// WeightedSample picks up to k questions from the pool without
// replacement, each draw proportional to the question's current weight:
// sum the weights of the not-yet-selected items, draw uniformly in
// [0, sum), and walk the items accumulating weight until the draw lands
// inside one's band. Historically missed questions therefore show up
// more often, but any question can still appear.
func WeightedSample(pool []question.Question, errorWeights map[string]int, k int, rng *rand.Rand) []question.Question {
	if k > len(pool) {
		k = len(pool)
	}
	if k <= 0 {
		return nil
	}

	remaining := make([]question.Question, len(pool))
	copy(remaining, pool)
	weights := make([]int, len(remaining))
	total := 0
	for i, q := range remaining {
		weights[i] = SampleWeight(errorWeights[q.ID])
		total += weights[i]
	}

	selected := make([]question.Question, 0, k)
	for len(selected) < k {
		draw := rng.Intn(total)
		acc := 0
		idx := len(remaining) - 1
		for i, w := range weights {
			acc += w
			if draw < acc {
				idx = i
				break
			}
		}

		selected = append(selected, remaining[idx])
		total -= weights[idx]

		last := len(remaining) - 1
		remaining[idx] = remaining[last]
		weights[idx] = weights[last]
		remaining = remaining[:last]
		weights = weights[:last]
	}
	return selected
}
