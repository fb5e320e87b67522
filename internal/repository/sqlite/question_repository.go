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

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

const questionColumns = `id, subject, chapter, chapter_title, question_number, question_text,
       options, correct_answer, explanation, COALESCE(short_reason, ''), wrong_answer_explanations`

func scanQuestion(scan func(dest ...any) error) (models.Question, error) {
	var q models.Question
	err := scan(&q.ID, &q.Subject, &q.Chapter, &q.ChapterTitle, &q.QuestionNumber,
		&q.QuestionText, &q.Options, &q.CorrectAnswer, &q.Explanation,
		&q.ShortReason, &q.WrongAnswerExplanations)
	return q, err
}

func (r *questionRepository) Get(ctx context.Context, id string) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("getting question: id=%s", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("question not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) List(ctx context.Context, subjects []string) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions: subjects=%v", subjects)

	query := sqlBuilder.Select(
		"id", "subject", "chapter", "chapter_title", "question_number", "question_text",
		"options", "correct_answer", "explanation", "COALESCE(short_reason, '')",
		"wrong_answer_explanations",
	).From("questions")
	if len(subjects) > 0 {
		query = query.Where(squirrel.Eq{"subject": subjects})
	}
	query = query.OrderBy("subject", "chapter", "question_number")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		questions = append(questions, q)
	}
	log.Debug("found %d questions", len(questions))
	return questions, rows.Err()
}

func (r *questionRepository) Subjects(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT subject FROM questions ORDER BY subject`)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, err
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *questionRepository) CountBySubject(ctx context.Context, subjects []string) (map[string]int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	query := sqlBuilder.Select("subject", "COUNT(*)").From("questions").GroupBy("subject")
	if len(subjects) > 0 {
		query = query.Where(squirrel.Eq{"subject": subjects})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to count questions by subject: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var subject string
		var count int
		if err := rows.Scan(&subject, &count); err != nil {
			return nil, err
		}
		counts[subject] = count
	}
	return counts, rows.Err()
}

func (r *questionRepository) Upsert(ctx context.Context, q models.Question) error {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("upserting question: id=%s", q.ID)

	options, err := q.Options.Value()
	if err != nil {
		return err
	}
	wrongExpl, err := q.WrongAnswerExplanations.Value()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO questions (
    id, subject, chapter, chapter_title, question_number, question_text,
    options, correct_answer, explanation, short_reason, wrong_answer_explanations
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    subject = excluded.subject,
    chapter = excluded.chapter,
    chapter_title = excluded.chapter_title,
    question_number = excluded.question_number,
    question_text = excluded.question_text,
    options = excluded.options,
    correct_answer = excluded.correct_answer,
    explanation = excluded.explanation,
    short_reason = excluded.short_reason,
    wrong_answer_explanations = excluded.wrong_answer_explanations
`, q.ID, q.Subject, q.Chapter, q.ChapterTitle, q.QuestionNumber, q.QuestionText,
		options, q.CorrectAnswer, q.Explanation, q.ShortReason, wrongExpl)
	if err != nil {
		log.Error("failed to upsert question: %v", err)
	}
	return err
}
