package services

import (
	"context"
	"fmt"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

// Weak-subject gate: a subject needs this many attempts and an accuracy
// below this ratio before it is worth calling out.
const (
	weakSubjectMinAttempts = 5
	weakSubjectMaxAccuracy = 0.7
)

// RecommendationService ranks what the learner should do next
type RecommendationService interface {
	Leeches(ctx context.Context, userID int64) ([]models.Leech, error)
	DailyProgress(ctx context.Context, userID int64) (*models.DailyProgress, error)
	Recommendations(ctx context.Context, userID int64) ([]models.Recommendation, error)
	TopRecommendation(ctx context.Context, userID int64) (*models.Recommendation, error)
}

type recommendationService struct {
	attemptRepo    repository.AttemptRepository
	reviewRepo     repository.QuestionReviewRepository
	dailyGoal      int
	leechThreshold int
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(attemptRepo repository.AttemptRepository, reviewRepo repository.QuestionReviewRepository, dailyGoal, leechThreshold int) RecommendationService {
	return &recommendationService{
		attemptRepo:    attemptRepo,
		reviewRepo:     reviewRepo,
		dailyGoal:      dailyGoal,
		leechThreshold: leechThreshold,
	}
}

func (s *recommendationService) Leeches(ctx context.Context, userID int64) ([]models.Leech, error) {
	leeches, err := s.attemptRepo.WrongCounts(ctx, userID, s.leechThreshold)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list leeches: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return leeches, nil
}

func (s *recommendationService) DailyProgress(ctx context.Context, userID int64) (*models.DailyProgress, error) {
	answered, correct, err := s.attemptRepo.TodayCounts(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to count today's attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	remaining := s.dailyGoal - answered
	if remaining < 0 {
		remaining = 0
	}
	return &models.DailyProgress{
		Goal:      s.dailyGoal,
		Answered:  answered,
		Correct:   correct,
		Remaining: remaining,
	}, nil
}

// Recommendations evaluates each signal independently and emits the triggered
// ones in priority order: goal shortfall, due reviews, leeches, weak subject.
func (s *recommendationService) Recommendations(ctx context.Context, userID int64) ([]models.Recommendation, error) {
	log := logger.FromContext(ctx)
	log.Debug("building recommendations: user_id=%d", userID)

	recs := []models.Recommendation{}

	progress, err := s.DailyProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if progress.Remaining > 0 {
		recs = append(recs, models.Recommendation{
			Type:     models.RecommendDailyGoal,
			Priority: 1,
			Message:  fmt.Sprintf("Answer %d more questions to hit today's goal of %d", progress.Remaining, progress.Goal),
			Action:   models.ActionPractice,
			Count:    progress.Remaining,
		})
	}

	dueCount, err := s.reviewRepo.CountDue(ctx, userID)
	if err != nil {
		log.Error("failed to count due reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if dueCount > 0 {
		recs = append(recs, models.Recommendation{
			Type:     models.RecommendDueReviews,
			Priority: 2,
			Message:  fmt.Sprintf("%d missed questions are due for review", dueCount),
			Action:   models.ActionReviewMissed,
			Count:    dueCount,
		})
	}

	leeches, err := s.Leeches(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(leeches) > 0 {
		recs = append(recs, models.Recommendation{
			Type:     models.RecommendLeeches,
			Priority: 3,
			Message:  fmt.Sprintf("%d questions keep tripping you up", len(leeches)),
			Action:   models.ActionDrillLeeches,
			Count:    len(leeches),
		})
	}

	subjects, err := s.attemptRepo.SubjectAccuracy(ctx, userID)
	if err != nil {
		log.Error("failed to load subject accuracy: %v", err)
		return nil, errors.NewInternalError(err)
	}
	var weakest *models.SubjectStat
	for i := range subjects {
		sub := &subjects[i]
		if sub.Total < weakSubjectMinAttempts || sub.Accuracy >= weakSubjectMaxAccuracy {
			continue
		}
		if weakest == nil || sub.Accuracy < weakest.Accuracy {
			weakest = sub
		}
	}
	if weakest != nil {
		recs = append(recs, models.Recommendation{
			Type:     models.RecommendWeakSubject,
			Priority: 4,
			Message:  fmt.Sprintf("%s is at %.0f%% accuracy, spend some time there", weakest.Subject, weakest.Accuracy*100),
			Action:   models.ActionFocusSubject,
			Subject:  weakest.Subject,
		})
	}

	return recs, nil
}

func (s *recommendationService) TopRecommendation(ctx context.Context, userID int64) (*models.Recommendation, error) {
	recs, err := s.Recommendations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}
