package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%d", id)

	var s models.Session
	var endedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, mode, subjects, total_questions, correct_count, started_at, ended_at
FROM sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.UserID, &s.Mode, &s.Subjects, &s.TotalQuestions, &s.CorrectCount, &s.StartedAt, &endedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	if endedAt.Valid {
		s.EndedAt = &endedAt.Time
	}
	return &s, nil
}

func (r *sessionRepository) Insert(ctx context.Context, s models.Session) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: user_id=%d, mode=%s", s.UserID, s.Mode)

	subjects, err := s.Subjects.Value()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (user_id, mode, subjects, total_questions)
VALUES (?, ?, ?, ?)
`, s.UserID, s.Mode, subjects, s.TotalQuestions)
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get session id: %v", err)
		return 0, err
	}
	log.Debug("session inserted: id=%d", id)
	return id, nil
}

func (r *sessionRepository) UpdateProgress(ctx context.Context, id int64, correctCount int, ended bool) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("updating session: id=%d, correct_count=%d, ended=%v", id, correctCount, ended)

	var err error
	if ended {
		_, err = r.db.ExecContext(ctx, `
UPDATE sessions SET correct_count = ?, ended_at = CURRENT_TIMESTAMP WHERE id = ?
`, correctCount, id)
	} else {
		_, err = r.db.ExecContext(ctx, `
UPDATE sessions SET correct_count = ? WHERE id = ?
`, correctCount, id)
	}
	if err != nil {
		log.Error("failed to update session: %v", err)
	}
	return err
}

func (r *sessionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions: user_id=%d, limit=%d", userID, limit)

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, mode, subjects, total_questions, correct_count, started_at, ended_at
FROM sessions
WHERE user_id = ?
ORDER BY started_at DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		var endedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.UserID, &s.Mode, &s.Subjects, &s.TotalQuestions, &s.CorrectCount, &s.StartedAt, &endedAt); err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		if endedAt.Valid {
			s.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}
