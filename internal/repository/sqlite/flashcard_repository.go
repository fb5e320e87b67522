package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Get(ctx context.Context, id string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%s", id)

	var f models.Flashcard
	var mnemonic sql.NullString
	err := r.db.QueryRowContext(ctx, `
SELECT id, subject, chapter, term, definition, mnemonic, category
FROM flashcards
WHERE id = ?
`, id).Scan(&f.ID, &f.Subject, &f.Chapter, &f.Term, &f.Definition, &mnemonic, &f.Category)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	f.Mnemonic = mnemonic.String
	return &f, nil
}

func (r *flashcardRepository) List(ctx context.Context, subject string, chapter int) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: subject=%s, chapter=%d", subject, chapter)

	query := sqlBuilder.Select("id", "subject", "chapter", "term", "definition", "mnemonic", "category").
		From("flashcards")
	if subject != "" {
		query = query.Where(squirrel.Eq{"subject": subject})
	}
	if chapter > 0 {
		query = query.Where(squirrel.Eq{"chapter": chapter})
	}
	query = query.OrderBy("subject", "chapter", "term")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var f models.Flashcard
		var mnemonic sql.NullString
		if err := rows.Scan(&f.ID, &f.Subject, &f.Chapter, &f.Term, &f.Definition, &mnemonic, &f.Category); err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		f.Mnemonic = mnemonic.String
		cards = append(cards, f)
	}
	return cards, rows.Err()
}

func (r *flashcardRepository) Upsert(ctx context.Context, f models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("upserting flashcard: id=%s", f.ID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO flashcards (id, subject, chapter, term, definition, mnemonic, category)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    subject = excluded.subject,
    chapter = excluded.chapter,
    term = excluded.term,
    definition = excluded.definition,
    mnemonic = excluded.mnemonic,
    category = excluded.category
`, f.ID, f.Subject, f.Chapter, f.Term, f.Definition, f.Mnemonic, f.Category)
	if err != nil {
		log.Error("failed to upsert flashcard: %v", err)
	}
	return err
}

func (r *flashcardRepository) State(ctx context.Context, userID int64, flashcardID string) (*models.FlashcardState, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard state: user_id=%d, flashcard_id=%s", userID, flashcardID)

	var st models.FlashcardState
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, flashcard_id, ease_factor, interval_days, next_review_date, updated_at
FROM flashcard_states
WHERE user_id = ? AND flashcard_id = ?
`, userID, flashcardID).Scan(&st.UserID, &st.FlashcardID, &st.EaseFactor, &st.IntervalDays, &st.NextReviewDate, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Never reviewed; caller falls back to scheduling defaults.
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard state: %v", err)
		return nil, err
	}
	return &st, nil
}

// RecordReview appends one review row and updates the current-state
// projection in a single transaction.
func (r *flashcardRepository) RecordReview(ctx context.Context, review models.FlashcardReview) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("recording review: user_id=%d, flashcard_id=%s, correct=%v, interval=%d, ease=%.2f",
		review.UserID, review.FlashcardID, review.Correct, review.IntervalDays, review.EaseFactor)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO flashcard_reviews (user_id, flashcard_id, session_id, correct, time_taken_seconds,
                               ease_factor, interval_days, next_review_date)
VALUES (?, ?, ?, ?, ?, ?, ?, DATE(?))
`, review.UserID, review.FlashcardID, review.SessionID, review.Correct, review.TimeTakenSeconds,
			review.EaseFactor, review.IntervalDays, review.NextReviewDate.Format("2006-01-02"))
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO flashcard_states (user_id, flashcard_id, ease_factor, interval_days, next_review_date, updated_at)
VALUES (?, ?, ?, ?, DATE(?), CURRENT_TIMESTAMP)
ON CONFLICT(user_id, flashcard_id) DO UPDATE SET
    ease_factor = excluded.ease_factor,
    interval_days = excluded.interval_days,
    next_review_date = excluded.next_review_date,
    updated_at = CURRENT_TIMESTAMP
`, review.UserID, review.FlashcardID, review.EaseFactor, review.IntervalDays,
			review.NextReviewDate.Format("2006-01-02"))
		return err
	})
}

func (r *flashcardRepository) Due(ctx context.Context, userID int64, subject string, limit int) ([]models.DueFlashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("fetching due flashcards: user_id=%d, subject=%s, limit=%d", userID, subject, limit)

	if limit <= 0 {
		limit = 20
	}

	query := sqlBuilder.Select(
		"f.id", "f.subject", "f.chapter", "f.term", "f.definition", "f.mnemonic", "f.category",
		"s.next_review_date",
	).From("flashcards f").
		LeftJoin("flashcard_states s ON s.flashcard_id = f.id AND s.user_id = ?", userID).
		Where("s.next_review_date IS NULL OR s.next_review_date <= DATE('now')")
	if subject != "" {
		query = query.Where(squirrel.Eq{"f.subject": subject})
	}
	// Unseen cards first, then the longest overdue.
	query = query.OrderBy("s.next_review_date IS NULL DESC", "s.next_review_date ASC", "f.id").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to fetch due flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.DueFlashcard
	for rows.Next() {
		var c models.DueFlashcard
		var mnemonic sql.NullString
		var due sql.NullTime
		if err := rows.Scan(&c.ID, &c.Subject, &c.Chapter, &c.Term, &c.Definition, &mnemonic, &c.Category, &due); err != nil {
			log.Error("failed to scan due flashcard row: %v", err)
			return nil, err
		}
		c.Mnemonic = mnemonic.String
		if due.Valid {
			t := due.Time
			c.NextReviewDate = &t
		}
		cards = append(cards, c)
	}
	log.Debug("found %d due flashcards", len(cards))
	return cards, rows.Err()
}
