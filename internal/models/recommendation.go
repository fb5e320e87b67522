package models

// RecommendationType identifies which signal produced a recommendation.
type RecommendationType string

const (
	RecommendDailyGoal   RecommendationType = "daily_goal"
	RecommendDueReviews  RecommendationType = "due_reviews"
	RecommendLeeches     RecommendationType = "leeches"
	RecommendWeakSubject RecommendationType = "weak_subject"
)

// RecommendationAction tells the caller what to offer the learner.
type RecommendationAction string

const (
	ActionPractice     RecommendationAction = "practice"
	ActionReviewMissed RecommendationAction = "review_missed"
	ActionDrillLeeches RecommendationAction = "drill_leeches"
	ActionFocusSubject RecommendationAction = "focus_subject"
)

// Recommendation is one ranked entry in the action list. Lower priority is
// more urgent.
type Recommendation struct {
	Type     RecommendationType   `json:"type"`
	Priority int                  `json:"priority"`
	Message  string               `json:"message"`
	Action   RecommendationAction `json:"action"`
	Count    int                  `json:"count,omitempty"`
	Subject  string               `json:"subject,omitempty"`
}
