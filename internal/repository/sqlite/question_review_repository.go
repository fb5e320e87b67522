package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

type questionReviewRepository struct {
	db *sql.DB
}

// NewQuestionReviewRepository creates a new QuestionReviewRepository implementation
func NewQuestionReviewRepository(db *sql.DB) repository.QuestionReviewRepository {
	return &questionReviewRepository{db: db}
}

// ScheduleIfAbsent inserts a pending review unless one with the same
// (user, question, type) already exists. Returns whether a row was created.
func (r *questionReviewRepository) ScheduleIfAbsent(ctx context.Context, userID int64, questionID string, reviewType models.ReviewType, scheduledDate time.Time) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("scheduling review: user_id=%d, question_id=%s, type=%s", userID, questionID, reviewType)

	var created bool
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var existing int64
		err := tx.QueryRowContext(ctx, `
SELECT id FROM question_reviews
WHERE user_id = ? AND question_id = ? AND review_type = ? AND completed = FALSE
`, userID, questionID, string(reviewType)).Scan(&existing)
		if err == nil {
			log.Debug("pending review already exists: id=%d", existing)
			return nil
		}
		if err != sql.ErrNoRows {
			return err
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO question_reviews (user_id, question_id, scheduled_date, review_type)
VALUES (?, ?, DATE(?), ?)
`, userID, questionID, scheduledDate.Format("2006-01-02"), string(reviewType))
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		log.Error("failed to schedule review: %v", err)
		return false, err
	}
	return created, nil
}

func (r *questionReviewRepository) Due(ctx context.Context, userID int64, limit int) ([]models.DueReview, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("fetching due reviews: user_id=%d, limit=%d", userID, limit)

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT r.id, r.user_id, r.question_id, r.scheduled_date, r.review_type, r.completed, r.completed_at, r.created_at,
       q.subject, q.chapter, q.chapter_title, q.question_text
FROM question_reviews r
JOIN questions q ON q.id = r.question_id
WHERE r.user_id = ? AND r.completed = FALSE AND r.scheduled_date <= DATE('now')
ORDER BY r.scheduled_date ASC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to fetch due reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	var reviews []models.DueReview
	for rows.Next() {
		var d models.DueReview
		var completedAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.UserID, &d.QuestionID, &d.ScheduledDate, &d.ReviewType, &d.Completed, &completedAt, &d.CreatedAt,
			&d.Subject, &d.Chapter, &d.ChapterTitle, &d.QuestionText); err != nil {
			log.Error("failed to scan due review row: %v", err)
			return nil, err
		}
		if completedAt.Valid {
			d.CompletedAt = &completedAt.Time
		}
		reviews = append(reviews, d)
	}
	log.Debug("found %d due reviews", len(reviews))
	return reviews, rows.Err()
}

func (r *questionReviewRepository) CountDue(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM question_reviews
WHERE user_id = ? AND completed = FALSE AND scheduled_date <= DATE('now')
`, userID).Scan(&count)
	return count, err
}

// Complete marks the single matching pending review completed. Returns false
// when nothing matched; completing an absent review is not an error.
func (r *questionReviewRepository) Complete(ctx context.Context, userID int64, questionID string, reviewType models.ReviewType) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("completing review: user_id=%d, question_id=%s, type=%s", userID, questionID, reviewType)

	res, err := r.db.ExecContext(ctx, `
UPDATE question_reviews
SET completed = TRUE, completed_at = CURRENT_TIMESTAMP
WHERE user_id = ? AND question_id = ? AND review_type = ? AND completed = FALSE
`, userID, questionID, string(reviewType))
	if err != nil {
		log.Error("failed to complete review: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *questionReviewRepository) PurgeCompleted(ctx context.Context, olderThan time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("purging completed reviews older than %s", olderThan.Format("2006-01-02"))

	res, err := r.db.ExecContext(ctx, `
DELETE FROM question_reviews
WHERE completed = TRUE AND completed_at < ?
`, olderThan)
	if err != nil {
		log.Error("failed to purge completed reviews: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}
