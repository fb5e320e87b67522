package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bporter/mcattrainer/internal/models"
)

func question(id, subject string, chapter int) models.Question {
	return models.Question{ID: id, Subject: subject, Chapter: chapter}
}

func TestPick_ExcludesSessionQuestions(t *testing.T) {
	in := PickInput{
		Questions: []models.Question{
			question("q1", "biology", 1),
			question("q2", "biology", 1),
		},
		Exclude: map[string]bool{"q1": true},
	}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		got := Pick(in, rng)
		require.NotNil(t, got)
		assert.Equal(t, "q2", got.ID)
	}
}

func TestPick_PoolExhausted(t *testing.T) {
	in := PickInput{
		Questions: []models.Question{question("q1", "biology", 1)},
		Exclude:   map[string]bool{"q1": true},
	}

	assert.Nil(t, Pick(in, rand.New(rand.NewSource(1))))
}

func TestPick_EmptyPool(t *testing.T) {
	assert.Nil(t, Pick(PickInput{}, rand.New(rand.NewSource(1))))
}

func TestPick_SeededDeterminism(t *testing.T) {
	in := PickInput{
		Questions: []models.Question{
			question("q1", "biology", 1),
			question("q2", "chemistry", 2),
			question("q3", "physics", 3),
		},
		Weights: map[models.Topic]float64{
			{Subject: "biology", Chapter: 1}:   0.9,
			{Subject: "chemistry", Chapter: 2}: 0.5,
			{Subject: "physics", Chapter: 3}:   0.1,
		},
	}

	first := Pick(in, rand.New(rand.NewSource(42)))
	second := Pick(in, rand.New(rand.NewSource(42)))

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID, "same seed, same draw")
}

func TestPick_ZeroWeightsFallBackToUniform(t *testing.T) {
	in := PickInput{
		Questions: []models.Question{
			question("q1", "biology", 1),
			question("q2", "biology", 2),
		},
		Weights: map[models.Topic]float64{
			{Subject: "biology", Chapter: 1}: 0,
			{Subject: "biology", Chapter: 2}: 0,
		},
	}
	rng := rand.New(rand.NewSource(7))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got := Pick(in, rng)
		require.NotNil(t, got, "candidates remain, so the draw never comes back empty")
		seen[got.ID] = true
	}
	assert.Len(t, seen, 2)
}

func TestPick_WeakTopicsDrawnMoreOften(t *testing.T) {
	in := PickInput{
		Questions: []models.Question{
			question("weak", "biology", 1),
			question("strong", "biology", 2),
		},
		Weights: map[models.Topic]float64{
			{Subject: "biology", Chapter: 1}: 1.0,
			{Subject: "biology", Chapter: 2}: 0.1,
		},
	}
	rng := rand.New(rand.NewSource(99))

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		counts[Pick(in, rng).ID]++
	}
	assert.Greater(t, counts["weak"], counts["strong"]*3, "10x weight should dominate the draw")
}

func TestPick_RecentQuestionsDampened(t *testing.T) {
	in := PickInput{
		Questions: []models.Question{
			question("recent", "biology", 1),
			question("fresh", "biology", 1),
		},
		Weights: map[models.Topic]float64{
			{Subject: "biology", Chapter: 1}: 1.0,
		},
		Recent: map[string]bool{"recent": true},
	}
	rng := rand.New(rand.NewSource(5))

	counts := map[string]int{}
	for i := 0; i < 5000; i++ {
		counts[Pick(in, rng).ID]++
	}
	// 0.7 vs 1.0 weight: the fresh question leads but the recent one still shows up.
	assert.Greater(t, counts["fresh"], counts["recent"])
	assert.Greater(t, counts["recent"], 1000)
}

func TestPick_UnknownTopicGetsDefaultWeight(t *testing.T) {
	in := PickInput{
		Questions: []models.Question{question("q1", "psychology", 9)},
		Weights:   map[models.Topic]float64{},
	}

	got := Pick(in, rand.New(rand.NewSource(3)))
	require.NotNil(t, got)
	assert.Equal(t, "q1", got.ID)
}
