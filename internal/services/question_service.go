package services

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
	"github.com/bporter/mcattrainer/internal/scheduler"
)

// AnswerInput is one answer submission.
type AnswerInput struct {
	UserID           int64   `json:"user_id"`
	QuestionID       string  `json:"question_id"`
	SessionID        int64   `json:"session_id"`
	SelectedAnswer   string  `json:"selected_answer"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
	TimedOut         bool    `json:"timed_out"`
}

// SessionProgress is the running tally returned with every answer.
type SessionProgress struct {
	Answered int     `json:"answered"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// AnswerResult is what the learner sees after answering: the verdict, the
// full explanation, and where the question came from.
type AnswerResult struct {
	Correct         bool            `json:"correct"`
	CorrectAnswer   string          `json:"correct_answer"`
	SelectedAnswer  string          `json:"selected_answer"`
	Explanation     string          `json:"explanation"`
	ShortReason     string          `json:"short_reason,omitempty"`
	WhyWrong        string          `json:"why_wrong,omitempty"`
	Citation        models.Citation `json:"citation"`
	SessionProgress SessionProgress `json:"session_progress"`
}

// SubjectCatalog lists available subjects with their question counts.
type SubjectCatalog struct {
	Subjects       []string       `json:"subjects"`
	QuestionCounts map[string]int `json:"question_counts"`
}

// QuestionService handles question selection and answer grading
type QuestionService interface {
	NextQuestion(ctx context.Context, userID, sessionID int64, subjects []string) (*models.QuestionPublic, error)
	GetQuestion(ctx context.Context, id string) (*models.Question, error)
	SubmitAnswer(ctx context.Context, in AnswerInput) (*AnswerResult, error)
	TagAttempt(ctx context.Context, attemptID int64, errorType models.ErrorType) error
	Subjects(ctx context.Context) (*SubjectCatalog, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	sessionRepo  repository.SessionRepository
	reviewRepo   repository.QuestionReviewRepository
	recentWindow int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuestionService creates a new QuestionService. A nil rng gets a
// time-seeded source; tests pass a seeded one for deterministic draws.
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	sessionRepo repository.SessionRepository,
	reviewRepo repository.QuestionReviewRepository,
	recentWindow int,
	rng *rand.Rand,
) QuestionService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &questionService{
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		sessionRepo:  sessionRepo,
		reviewRepo:   reviewRepo,
		recentWindow: recentWindow,
		rng:          rng,
	}
}

// NextQuestion draws the next question for a session, biased toward weak and
// stale topics. Returns nil (no error) when every candidate has already been
// used in the session.
func (s *questionService) NextQuestion(ctx context.Context, userID, sessionID int64, subjects []string) (*models.QuestionPublic, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting next question: user_id=%d, session_id=%d, subjects=%v", userID, sessionID, subjects)

	questions, err := s.questionRepo.List(ctx, subjects)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats, err := s.attemptRepo.TopicAccuracy(ctx, userID)
	if err != nil {
		log.Error("failed to load topic accuracy: %v", err)
		return nil, errors.NewInternalError(err)
	}

	sessionIDs, err := s.attemptRepo.SessionQuestionIDs(ctx, sessionID)
	if err != nil {
		log.Error("failed to load session question ids: %v", err)
		return nil, errors.NewInternalError(err)
	}
	exclude := make(map[string]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		exclude[id] = true
	}

	recentIDs, err := s.attemptRepo.RecentQuestionIDs(ctx, userID, s.recentWindow)
	if err != nil {
		log.Error("failed to load recent question ids: %v", err)
		return nil, errors.NewInternalError(err)
	}
	recent := make(map[string]bool, len(recentIDs))
	for _, id := range recentIDs {
		recent[id] = true
	}

	in := scheduler.PickInput{
		Questions: questions,
		Weights:   scheduler.TopicWeights(stats),
		Exclude:   exclude,
		Recent:    recent,
	}

	s.mu.Lock()
	picked := scheduler.Pick(in, s.rng)
	s.mu.Unlock()

	if picked == nil {
		log.Debug("question pool exhausted for session %d", sessionID)
		return nil, nil
	}

	pub := picked.Public()
	return &pub, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	q, err := s.questionRepo.Get(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("question", id)
		}
		logger.FromContext(ctx).Error("failed to get question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if q == nil {
		return nil, errors.NewNotFoundError("question", id)
	}
	return q, nil
}

// SubmitAnswer grades one submission, appends the attempt, refreshes the
// session tally, and on a miss schedules the day-1 and day-7 re-exposures.
func (s *questionService) SubmitAnswer(ctx context.Context, in AnswerInput) (*AnswerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: user_id=%d, question_id=%s, session_id=%d", in.UserID, in.QuestionID, in.SessionID)

	question, err := s.GetQuestion(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.Get(ctx, in.SessionID)
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("session", in.SessionID)
	}

	correct := in.SelectedAnswer == question.CorrectAnswer

	if _, err := s.attemptRepo.Insert(ctx, models.Attempt{
		UserID:           in.UserID,
		QuestionID:       in.QuestionID,
		SessionID:        in.SessionID,
		Correct:          correct,
		SelectedAnswer:   in.SelectedAnswer,
		TimeTakenSeconds: in.TimeTakenSeconds,
		TimedOut:         in.TimedOut,
	}); err != nil {
		log.Error("failed to record attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	attempts, err := s.attemptRepo.SessionAttempts(ctx, in.SessionID)
	if err != nil {
		log.Error("failed to load session attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	correctCount := 0
	for _, a := range attempts {
		if a.Correct {
			correctCount++
		}
	}
	if err := s.sessionRepo.UpdateProgress(ctx, in.SessionID, correctCount, false); err != nil {
		log.Error("failed to update session progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if !correct {
		now := time.Now().UTC()
		schedule := []struct {
			reviewType models.ReviewType
			date       time.Time
		}{
			{models.ReviewDay1, now.AddDate(0, 0, 1)},
			{models.ReviewDay7, now.AddDate(0, 0, 7)},
		}
		for _, sc := range schedule {
			if _, err := s.reviewRepo.ScheduleIfAbsent(ctx, in.UserID, in.QuestionID, sc.reviewType, sc.date); err != nil {
				log.Error("failed to schedule %s review: %v", sc.reviewType, err)
				return nil, errors.NewInternalError(err)
			}
		}
	}

	accuracy := 0.0
	if len(attempts) > 0 {
		accuracy = float64(correctCount) / float64(len(attempts)) * 100
	}

	result := &AnswerResult{
		Correct:        correct,
		CorrectAnswer:  question.CorrectAnswer,
		SelectedAnswer: in.SelectedAnswer,
		Explanation:    question.Explanation,
		ShortReason:    question.ShortReason,
		Citation: models.Citation{
			Source:         fmt.Sprintf("Kaplan MCAT %s Review 2026-2027", question.Subject),
			Chapter:        question.Chapter,
			ChapterTitle:   question.ChapterTitle,
			QuestionNumber: question.QuestionNumber,
		},
		SessionProgress: SessionProgress{
			Answered: len(attempts),
			Correct:  correctCount,
			Total:    session.TotalQuestions,
			Accuracy: accuracy,
		},
	}
	if !correct {
		if why, ok := question.WrongAnswerExplanations[in.SelectedAnswer]; ok {
			result.WhyWrong = why
		}
	}
	return result, nil
}

func (s *questionService) TagAttempt(ctx context.Context, attemptID int64, errorType models.ErrorType) error {
	log := logger.FromContext(ctx)
	log.Debug("tagging attempt: id=%d, error_type=%s", attemptID, errorType)

	if !models.ValidErrorType(errorType) {
		return errors.NewValidationError("error_type", fmt.Sprintf("unknown value %q", errorType))
	}

	updated, err := s.attemptRepo.SetErrorType(ctx, attemptID, errorType)
	if err != nil {
		log.Error("failed to set error type: %v", err)
		return errors.NewInternalError(err)
	}
	if !updated {
		return errors.NewNotFoundError("attempt", attemptID)
	}
	return nil
}

func (s *questionService) Subjects(ctx context.Context) (*SubjectCatalog, error) {
	log := logger.FromContext(ctx)

	subjects, err := s.questionRepo.Subjects(ctx)
	if err != nil {
		log.Error("failed to list subjects: %v", err)
		return nil, errors.NewInternalError(err)
	}
	counts, err := s.questionRepo.CountBySubject(ctx, nil)
	if err != nil {
		log.Error("failed to count questions by subject: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &SubjectCatalog{Subjects: subjects, QuestionCounts: counts}, nil
}
