package models

// TopicStat is the per-topic aggregate derived from attempt history. Never
// persisted; recomputed from attempts on demand.
type TopicStat struct {
	Subject       string  `json:"subject"`
	Chapter       int     `json:"chapter"`
	ChapterTitle  string  `json:"chapter_title"`
	Correct       int     `json:"correct"`
	Total         int     `json:"total"`
	Accuracy      float64 `json:"accuracy"`
	DaysSinceLast float64 `json:"days_since_last"`
}

func (t TopicStat) Topic() Topic {
	return Topic{Subject: t.Subject, Chapter: t.Chapter}
}

// WeakTopic is a topic surfaced for review suggestions.
type WeakTopic struct {
	Subject       string  `json:"subject"`
	Chapter       int     `json:"chapter"`
	ChapterTitle  string  `json:"chapter_title"`
	Accuracy      float64 `json:"accuracy"`
	TotalAttempts int     `json:"total_attempts"`
}

// SubjectStat aggregates attempts at subject granularity.
type SubjectStat struct {
	Subject  string  `json:"subject"`
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// TrendPoint is one day of attempt history.
type TrendPoint struct {
	Date           string  `json:"date"`
	Total          int     `json:"total"`
	Correct        int     `json:"correct"`
	Accuracy       float64 `json:"accuracy"`
	AvgTimeSeconds float64 `json:"avg_time"`
}

// UserStats is the overall dashboard aggregate for one user.
type UserStats struct {
	TotalAttempts   int                     `json:"total_attempts"`
	CorrectAttempts int                     `json:"correct_attempts"`
	Accuracy        float64                 `json:"accuracy"`
	AvgTimeSeconds  float64                 `json:"avg_time_seconds"`
	BySubject       map[string]*SubjectStat `json:"by_subject"`
	RecentTrend     []TrendPoint            `json:"recent_trend"`
	SessionCount    int                     `json:"session_count"`
}

// ChapterAnalytics is one chapter inside a subject's analytics breakdown.
type ChapterAnalytics struct {
	Chapter      int     `json:"chapter"`
	ChapterTitle string  `json:"chapter_title"`
	Accuracy     float64 `json:"accuracy"`
	Attempts     int     `json:"attempts"`
}

// SubjectAnalytics groups chapter performance under a subject.
type SubjectAnalytics struct {
	Chapters      []ChapterAnalytics `json:"chapters"`
	TotalCorrect  int                `json:"total_correct"`
	TotalAttempts int                `json:"total_attempts"`
	Accuracy      float64            `json:"accuracy"`
}

// ErrorTypeCount is the tally of tagged attempts per error type.
type ErrorTypeCount struct {
	ErrorType ErrorType `json:"error_type"`
	Count     int       `json:"count"`
}

// DailyProgress tracks today's answering against the configured goal.
type DailyProgress struct {
	Goal      int `json:"goal"`
	Answered  int `json:"answered"`
	Correct   int `json:"correct"`
	Remaining int `json:"remaining"`
}
