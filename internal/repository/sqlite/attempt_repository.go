package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: user_id=%d, question_id=%s, correct=%v", a.UserID, a.QuestionID, a.Correct)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO attempts (user_id, question_id, session_id, correct, selected_answer, time_taken_seconds, timed_out)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, a.UserID, a.QuestionID, a.SessionID, a.Correct, a.SelectedAnswer, a.TimeTakenSeconds, a.TimedOut)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *attemptRepository) SetErrorType(ctx context.Context, id int64, errorType models.ErrorType) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("tagging attempt: id=%d, error_type=%s", id, errorType)

	res, err := r.db.ExecContext(ctx, `UPDATE attempts SET error_type = ? WHERE id = ?`, string(errorType), id)
	if err != nil {
		log.Error("failed to tag attempt: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *attemptRepository) SessionAttempts(ctx context.Context, sessionID int64) ([]models.SessionAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing session attempts: session_id=%d", sessionID)

	rows, err := r.db.QueryContext(ctx, `
SELECT a.id, a.user_id, a.question_id, a.session_id, a.correct, COALESCE(a.selected_answer, ''),
       a.time_taken_seconds, a.timed_out, COALESCE(a.error_type, ''), a.answered_at,
       q.subject, q.chapter, q.chapter_title
FROM attempts a
JOIN questions q ON q.id = a.question_id
WHERE a.session_id = ?
ORDER BY a.answered_at
`, sessionID)
	if err != nil {
		log.Error("failed to list session attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.SessionAttempt
	for rows.Next() {
		var a models.SessionAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.SessionID, &a.Correct, &a.SelectedAnswer,
			&a.TimeTakenSeconds, &a.TimedOut, &a.ErrorType, &a.AnsweredAt,
			&a.Subject, &a.Chapter, &a.ChapterTitle); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (r *attemptRepository) SessionQuestionIDs(ctx context.Context, sessionID int64) ([]string, error) {
	return r.questionIDs(ctx, `SELECT question_id FROM attempts WHERE session_id = ?`, sessionID)
}

func (r *attemptRepository) RecentQuestionIDs(ctx context.Context, userID int64, limit int) ([]string, error) {
	return r.questionIDs(ctx, `
SELECT DISTINCT question_id FROM attempts
WHERE user_id = ?
ORDER BY answered_at DESC
LIMIT ?
`, userID, limit)
}

func (r *attemptRepository) questionIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list question ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *attemptRepository) TopicAccuracy(ctx context.Context, userID int64) ([]models.TopicStat, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("computing topic accuracy: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT
    q.subject,
    q.chapter,
    q.chapter_title,
    SUM(CASE WHEN a.correct THEN 1 ELSE 0 END) AS correct,
    COUNT(*) AS total,
    JULIANDAY('now') - JULIANDAY(MAX(a.answered_at)) AS days_since
FROM attempts a
JOIN questions q ON q.id = a.question_id
WHERE a.user_id = ?
GROUP BY q.subject, q.chapter
`, userID)
	if err != nil {
		log.Error("failed to compute topic accuracy: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.TopicStat
	for rows.Next() {
		var t models.TopicStat
		var daysSince sql.NullFloat64
		if err := rows.Scan(&t.Subject, &t.Chapter, &t.ChapterTitle, &t.Correct, &t.Total, &daysSince); err != nil {
			log.Error("failed to scan topic row: %v", err)
			return nil, err
		}
		if t.Total > 0 {
			t.Accuracy = float64(t.Correct) / float64(t.Total)
		}
		if daysSince.Valid {
			t.DaysSinceLast = daysSince.Float64
		}
		stats = append(stats, t)
	}
	log.Debug("found %d topics with history", len(stats))
	return stats, rows.Err()
}

func (r *attemptRepository) SubjectAccuracy(ctx context.Context, userID int64) ([]models.SubjectStat, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("computing subject accuracy: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT
    q.subject,
    COUNT(*) AS total,
    SUM(CASE WHEN a.correct THEN 1 ELSE 0 END) AS correct
FROM attempts a
JOIN questions q ON q.id = a.question_id
WHERE a.user_id = ?
GROUP BY q.subject
`, userID)
	if err != nil {
		log.Error("failed to compute subject accuracy: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.SubjectStat
	for rows.Next() {
		var s models.SubjectStat
		if err := rows.Scan(&s.Subject, &s.Total, &s.Correct); err != nil {
			return nil, err
		}
		if s.Total > 0 {
			s.Accuracy = float64(s.Correct) / float64(s.Total)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *attemptRepository) Overall(ctx context.Context, userID int64) (int, int, float64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	var total, correct sql.NullInt64
	var avgTime sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), SUM(CASE WHEN correct THEN 1 ELSE 0 END), AVG(time_taken_seconds)
FROM attempts
WHERE user_id = ?
`, userID).Scan(&total, &correct, &avgTime)
	if err != nil {
		log.Error("failed to compute overall stats: %v", err)
		return 0, 0, 0, err
	}
	return int(total.Int64), int(correct.Int64), avgTime.Float64, nil
}

func (r *attemptRepository) Trend(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("computing trend: user_id=%d, days=%d", userID, days)

	if days <= 0 {
		days = 7
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT
    DATE(answered_at) AS date,
    COUNT(*) AS total,
    SUM(CASE WHEN correct THEN 1 ELSE 0 END) AS correct,
    AVG(time_taken_seconds) AS avg_time
FROM attempts
WHERE user_id = ? AND answered_at >= DATE('now', ?)
GROUP BY DATE(answered_at)
ORDER BY date
`, userID, fmt.Sprintf("-%d days", days))
	if err != nil {
		log.Error("failed to compute trend: %v", err)
		return nil, err
	}
	defer rows.Close()

	var points []models.TrendPoint
	for rows.Next() {
		var p models.TrendPoint
		var avgTime sql.NullFloat64
		if err := rows.Scan(&p.Date, &p.Total, &p.Correct, &avgTime); err != nil {
			return nil, err
		}
		if p.Total > 0 {
			p.Accuracy = float64(p.Correct) / float64(p.Total) * 100
		}
		p.AvgTimeSeconds = avgTime.Float64
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *attemptRepository) TodayCounts(ctx context.Context, userID int64) (int, int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	var answered, correct sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), SUM(CASE WHEN correct THEN 1 ELSE 0 END)
FROM attempts
WHERE user_id = ? AND DATE(answered_at) = DATE('now')
`, userID).Scan(&answered, &correct)
	if err != nil {
		log.Error("failed to count today's attempts: %v", err)
		return 0, 0, err
	}
	return int(answered.Int64), int(correct.Int64), nil
}

func (r *attemptRepository) WrongCounts(ctx context.Context, userID int64, minWrongCount int) ([]models.Leech, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("detecting leeches: user_id=%d, min_wrong_count=%d", userID, minWrongCount)

	rows, err := r.db.QueryContext(ctx, `
SELECT q.id, q.subject, q.chapter, q.chapter_title, q.question_number, q.question_text,
       q.options, q.correct_answer, q.explanation, COALESCE(q.short_reason, ''), q.wrong_answer_explanations,
       COUNT(*) AS wrong_count,
       MAX(a.answered_at) AS last_missed
FROM attempts a
JOIN questions q ON q.id = a.question_id
WHERE a.user_id = ? AND a.correct = FALSE
GROUP BY a.question_id
HAVING COUNT(*) >= ?
ORDER BY wrong_count DESC, last_missed DESC
`, userID, minWrongCount)
	if err != nil {
		log.Error("failed to detect leeches: %v", err)
		return nil, err
	}
	defer rows.Close()

	var leeches []models.Leech
	for rows.Next() {
		var l models.Leech
		if err := rows.Scan(&l.ID, &l.Subject, &l.Chapter, &l.ChapterTitle, &l.QuestionNumber, &l.QuestionText,
			&l.Options, &l.CorrectAnswer, &l.Explanation, &l.ShortReason, &l.WrongAnswerExplanations,
			&l.WrongCount, &l.LastMissed); err != nil {
			log.Error("failed to scan leech row: %v", err)
			return nil, err
		}
		leeches = append(leeches, l)
	}
	log.Debug("found %d leeches", len(leeches))
	return leeches, rows.Err()
}

func (r *attemptRepository) ErrorTypeCounts(ctx context.Context, userID int64) ([]models.ErrorTypeCount, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT error_type, COUNT(*)
FROM attempts
WHERE user_id = ? AND error_type IS NOT NULL
GROUP BY error_type
ORDER BY COUNT(*) DESC
`, userID)
	if err != nil {
		log.Error("failed to count error types: %v", err)
		return nil, err
	}
	defer rows.Close()

	var counts []models.ErrorTypeCount
	for rows.Next() {
		var c models.ErrorTypeCount
		if err := rows.Scan(&c.ErrorType, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
