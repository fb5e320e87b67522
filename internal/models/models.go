package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionMode selects how questions are drawn for a session.
type SessionMode string

const (
	ModeMixed   SessionMode = "mixed"
	ModeFocused SessionMode = "focused"
)

type Session struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"user_id"`
	Mode           SessionMode `json:"mode"`
	Subjects       JSONStrings `json:"subjects"`
	TotalQuestions int         `json:"total_questions"`
	CorrectCount   int         `json:"correct_count"`
	StartedAt      time.Time   `json:"started_at"`
	EndedAt        *time.Time  `json:"ended_at,omitempty"`
}

// SessionSummary is the roll-up returned when a session ends.
type SessionSummary struct {
	SessionID      int64                    `json:"session_id"`
	TotalQuestions int                      `json:"total_questions"`
	CorrectCount   int                      `json:"correct_count"`
	Accuracy       float64                  `json:"accuracy"`
	AvgTimeSeconds float64                  `json:"avg_time_seconds"`
	BySubject      map[string]*SubjectSplit `json:"by_subject"`
	EndedAt        time.Time                `json:"ended_at"`
}

type SubjectSplit struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}
