package services

import (
	"context"
	"time"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

// SessionService handles study session lifecycle
type SessionService interface {
	Start(ctx context.Context, userID int64, mode models.SessionMode, subjects []string, totalQuestions int) (*models.Session, error)
	Get(ctx context.Context, id int64) (*models.Session, error)
	Attempts(ctx context.Context, sessionID int64) ([]models.SessionAttempt, error)
	End(ctx context.Context, sessionID int64) (*models.SessionSummary, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Session, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	attemptRepo repository.AttemptRepository
	userRepo    repository.UserRepository
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionRepo repository.SessionRepository, attemptRepo repository.AttemptRepository, userRepo repository.UserRepository) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
	}
}

func (s *sessionService) Start(ctx context.Context, userID int64, mode models.SessionMode, subjects []string, totalQuestions int) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: user_id=%d, mode=%s, total=%d", userID, mode, totalQuestions)

	if mode != models.ModeMixed && mode != models.ModeFocused {
		return nil, errors.NewValidationError("mode", "must be mixed or focused")
	}
	if totalQuestions <= 0 {
		return nil, errors.NewValidationError("total_questions", "must be positive")
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	id, err := s.sessionRepo.Insert(ctx, models.Session{
		UserID:         userID,
		Mode:           mode,
		Subjects:       subjects,
		TotalQuestions: totalQuestions,
	})
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.Get(ctx, id)
}

func (s *sessionService) Get(ctx context.Context, id int64) (*models.Session, error) {
	session, err := s.sessionRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("session", id)
	}
	return session, nil
}

func (s *sessionService) Attempts(ctx context.Context, sessionID int64) ([]models.SessionAttempt, error) {
	attempts, err := s.attemptRepo.SessionAttempts(ctx, sessionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list session attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return attempts, nil
}

// End closes the session and rolls its attempts up into a summary.
func (s *sessionService) End(ctx context.Context, sessionID int64) (*models.SessionSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("ending session: id=%d", sessionID)

	if _, err := s.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.SessionAttempts(ctx, sessionID)
	if err != nil {
		log.Error("failed to load session attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}

	correctCount := 0
	totalTime := 0.0
	bySubject := make(map[string]*models.SubjectSplit)
	for _, a := range attempts {
		split := bySubject[a.Subject]
		if split == nil {
			split = &models.SubjectSplit{}
			bySubject[a.Subject] = split
		}
		split.Total++
		if a.Correct {
			split.Correct++
			correctCount++
		}
		totalTime += a.TimeTakenSeconds
	}

	if err := s.sessionRepo.UpdateProgress(ctx, sessionID, correctCount, true); err != nil {
		log.Error("failed to close session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	summary := &models.SessionSummary{
		SessionID:      sessionID,
		TotalQuestions: len(attempts),
		CorrectCount:   correctCount,
		BySubject:      bySubject,
		EndedAt:        time.Now().UTC(),
	}
	if len(attempts) > 0 {
		summary.Accuracy = float64(correctCount) / float64(len(attempts)) * 100
		summary.AvgTimeSeconds = totalTime / float64(len(attempts))
	}
	return summary, nil
}

func (s *sessionService) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	sessions, err := s.sessionRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return sessions, nil
}
