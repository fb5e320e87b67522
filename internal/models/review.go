package models

import "time"

// ReviewType tags the fixed re-exposure offsets for missed questions.
type ReviewType string

const (
	ReviewDay1 ReviewType = "day_1"
	ReviewDay7 ReviewType = "day_7"
)

// ValidReviewType reports whether t is one of the closed set of tags.
func ValidReviewType(t ReviewType) bool {
	return t == ReviewDay1 || t == ReviewDay7
}

// QuestionReview schedules one re-exposure of a missed question. Transitions
// exactly once from pending to completed.
type QuestionReview struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	QuestionID    string     `json:"question_id"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	ReviewType    ReviewType `json:"review_type"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DueReview is a pending review joined with its question's catalog metadata.
type DueReview struct {
	QuestionReview
	Subject      string `json:"subject"`
	Chapter      int    `json:"chapter"`
	ChapterTitle string `json:"chapter_title"`
	QuestionText string `json:"question_text"`
}

// Leech is a chronically missed question. Status never decays once earned.
type Leech struct {
	Question
	WrongCount int       `json:"wrong_count"`
	LastMissed time.Time `json:"last_missed"`
}
