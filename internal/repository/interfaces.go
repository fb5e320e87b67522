package repository

import (
	"context"
	"time"

	"github.com/bporter/mcattrainer/internal/models"
)

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, name string) (*models.User, error)
}

// QuestionRepository handles question catalog access
type QuestionRepository interface {
	Get(ctx context.Context, id string) (*models.Question, error)
	List(ctx context.Context, subjects []string) ([]models.Question, error)
	Subjects(ctx context.Context) ([]string, error)
	CountBySubject(ctx context.Context, subjects []string) (map[string]int, error)
	Upsert(ctx context.Context, q models.Question) error
}

// SessionRepository handles study session data access
type SessionRepository interface {
	Get(ctx context.Context, id int64) (*models.Session, error)
	Insert(ctx context.Context, s models.Session) (int64, error)
	UpdateProgress(ctx context.Context, id int64, correctCount int, ended bool) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Session, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

// AttemptRepository handles the append-only attempt log and the aggregates
// derived from it
type AttemptRepository interface {
	Insert(ctx context.Context, a models.Attempt) (int64, error)
	SetErrorType(ctx context.Context, id int64, errorType models.ErrorType) (bool, error)
	SessionAttempts(ctx context.Context, sessionID int64) ([]models.SessionAttempt, error)
	SessionQuestionIDs(ctx context.Context, sessionID int64) ([]string, error)
	RecentQuestionIDs(ctx context.Context, userID int64, limit int) ([]string, error)
	TopicAccuracy(ctx context.Context, userID int64) ([]models.TopicStat, error)
	SubjectAccuracy(ctx context.Context, userID int64) ([]models.SubjectStat, error)
	Overall(ctx context.Context, userID int64) (total, correct int, avgTime float64, err error)
	Trend(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error)
	TodayCounts(ctx context.Context, userID int64) (answered, correct int, err error)
	WrongCounts(ctx context.Context, userID int64, minWrongCount int) ([]models.Leech, error)
	ErrorTypeCounts(ctx context.Context, userID int64) ([]models.ErrorTypeCount, error)
}

// FlashcardRepository handles the flashcard catalog, review log, and the
// per-user scheduling state projection
type FlashcardRepository interface {
	Get(ctx context.Context, id string) (*models.Flashcard, error)
	List(ctx context.Context, subject string, chapter int) ([]models.Flashcard, error)
	Upsert(ctx context.Context, f models.Flashcard) error
	State(ctx context.Context, userID int64, flashcardID string) (*models.FlashcardState, error)
	RecordReview(ctx context.Context, review models.FlashcardReview) error
	Due(ctx context.Context, userID int64, subject string, limit int) ([]models.DueFlashcard, error)
}

// QuestionReviewRepository handles scheduled re-exposures of missed questions
type QuestionReviewRepository interface {
	ScheduleIfAbsent(ctx context.Context, userID int64, questionID string, reviewType models.ReviewType, scheduledDate time.Time) (bool, error)
	Due(ctx context.Context, userID int64, limit int) ([]models.DueReview, error)
	CountDue(ctx context.Context, userID int64) (int, error)
	Complete(ctx context.Context, userID int64, questionID string, reviewType models.ReviewType) (bool, error)
	PurgeCompleted(ctx context.Context, olderThan time.Time) (int64, error)
}
