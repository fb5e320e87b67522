package scheduler

import (
	"math/rand"

	"github.com/bporter/mcattrainer/internal/models"
)

// PickInput carries everything one selection draw needs. Exclude is a hard
// filter (a question never repeats within a session); Recent only dampens.
type PickInput struct {
	Questions []models.Question
	Weights   map[models.Topic]float64
	Exclude   map[string]bool
	Recent    map[string]bool
}

// Pick performs one weighted random draw over the candidate pool and returns
// the selected question, or nil when every candidate is excluded. Exactly one
// sample is taken from rng per call, so a seeded source makes the outcome
// reproducible.
func Pick(in PickInput, rng *rand.Rand) *models.Question {
	candidates := make([]models.Question, 0, len(in.Questions))
	for _, q := range in.Questions {
		if in.Exclude[q.ID] {
			continue
		}
		candidates = append(candidates, q)
	}
	if len(candidates) == 0 {
		return nil
	}

	weights := make([]float64, len(candidates))
	total := 0.0
	for i, q := range candidates {
		w, ok := in.Weights[q.Topic()]
		if !ok {
			w = DefaultTopicWeight
		}
		if in.Recent[q.ID] {
			w *= recentPenalty
		}
		weights[i] = w
		total += w
	}

	if total <= 0 {
		// Degenerate weights; never return nil while candidates exist.
		return &candidates[rng.Intn(len(candidates))]
	}

	r := rng.Float64() * total
	cumulative := 0.0
	for i := range candidates {
		cumulative += weights[i]
		if r <= cumulative {
			return &candidates[i]
		}
	}
	// Floating point slack on the last boundary.
	return &candidates[len(candidates)-1]
}
