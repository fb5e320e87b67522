package scheduler

import (
	"github.com/bporter/mcattrainer/internal/models"
)

const (
	// DefaultTopicWeight is applied by callers to topics with no recorded
	// history, keeping unseen material competitive against memorized topics.
	DefaultTopicWeight = 0.5

	// MinTopicWeight floors the accuracy mapping so no topic ever reaches
	// zero selection probability.
	MinTopicWeight = 0.1

	// recentPenalty dampens questions seen in the user's recent attempt
	// window outside the current session.
	recentPenalty = 0.7
)

// TopicWeights converts per-topic accuracy and recency history into
// selection weights. Lower accuracy means a higher weight; topics untouched
// for a while get boosted up to +50% after four weeks. Topics without
// history are not emitted.
func TopicWeights(stats []models.TopicStat) map[models.Topic]float64 {
	weights := make(map[models.Topic]float64, len(stats))
	for _, t := range stats {
		if t.Total == 0 {
			continue
		}
		// 0% accuracy -> 1.0, 50% -> 0.55, 100% -> 0.1
		base := 1.0 - t.Accuracy*0.9
		if base < MinTopicWeight {
			base = MinTopicWeight
		}

		boost := t.DaysSinceLast / 28
		if boost > 0.5 {
			boost = 0.5
		}
		weights[t.Topic()] = base * (1 + boost)
	}
	return weights
}
