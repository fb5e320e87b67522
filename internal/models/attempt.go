package models

import "time"

// ErrorType tags why an attempt went wrong. Applied after the fact by the
// learner; the only field of an attempt that is ever updated.
type ErrorType string

const (
	ErrorConceptual   ErrorType = "conceptual"
	ErrorCareless     ErrorType = "careless"
	ErrorTimePressure ErrorType = "time_pressure"
)

// ValidErrorType reports whether t is one of the closed set of tags.
func ValidErrorType(t ErrorType) bool {
	switch t {
	case ErrorConceptual, ErrorCareless, ErrorTimePressure:
		return true
	}
	return false
}

// Attempt is an append-only record of one answer submission.
type Attempt struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	QuestionID       string    `json:"question_id"`
	SessionID        int64     `json:"session_id"`
	Correct          bool      `json:"correct"`
	SelectedAnswer   string    `json:"selected_answer"`
	TimeTakenSeconds float64   `json:"time_taken_seconds"`
	TimedOut         bool      `json:"timed_out"`
	ErrorType        ErrorType `json:"error_type,omitempty"`
	AnsweredAt       time.Time `json:"answered_at"`
}

// SessionAttempt is an attempt joined with the catalog metadata of its
// question, as shown in session reviews.
type SessionAttempt struct {
	Attempt
	Subject      string `json:"subject"`
	Chapter      int    `json:"chapter"`
	ChapterTitle string `json:"chapter_title"`
}
