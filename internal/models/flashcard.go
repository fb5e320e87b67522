package models

import "time"

// Flashcard is an immutable catalog entry.
type Flashcard struct {
	ID         string `json:"id"`
	Subject    string `json:"subject"`
	Chapter    int    `json:"chapter"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Mnemonic   string `json:"mnemonic,omitempty"`
	Category   string `json:"category"`
}

// FlashcardReview is one append-only entry in the review log. Scheduling
// state at the time of the review is denormalized onto the row.
type FlashcardReview struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	FlashcardID      string    `json:"flashcard_id"`
	SessionID        int64     `json:"session_id"`
	Correct          bool      `json:"correct"`
	TimeTakenSeconds float64   `json:"time_taken_seconds"`
	EaseFactor       float64   `json:"ease_factor"`
	IntervalDays     int       `json:"interval_days"`
	NextReviewDate   time.Time `json:"next_review_date"`
	ReviewedAt       time.Time `json:"reviewed_at"`
}

// FlashcardState is the current scheduling state for one (user, flashcard)
// pair, updated in place on every review. Due queries read this projection,
// never the log.
type FlashcardState struct {
	UserID         int64     `json:"user_id"`
	FlashcardID    string    `json:"flashcard_id"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	NextReviewDate time.Time `json:"next_review_date"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DueFlashcard is a flashcard joined with its scheduling state, if any.
// NextReviewDate is nil for cards the user has never reviewed.
type DueFlashcard struct {
	Flashcard
	NextReviewDate *time.Time `json:"next_review_date,omitempty"`
}
