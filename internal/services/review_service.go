package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

// ReviewService handles the missed-question review queue
type ReviewService interface {
	DueReviews(ctx context.Context, userID int64, limit int) ([]models.DueReview, error)
	CompleteReview(ctx context.Context, userID int64, questionID string, reviewType models.ReviewType) (bool, error)
	PurgeCompleted(ctx context.Context, olderThan time.Time) (int64, error)
}

type reviewService struct {
	reviewRepo repository.QuestionReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo repository.QuestionReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

func (s *reviewService) DueReviews(ctx context.Context, userID int64, limit int) ([]models.DueReview, error) {
	due, err := s.reviewRepo.Due(ctx, userID, limit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list due reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return due, nil
}

// CompleteReview flips the matching pending review. Completing a review that
// does not exist reports false without erroring.
func (s *reviewService) CompleteReview(ctx context.Context, userID int64, questionID string, reviewType models.ReviewType) (bool, error) {
	if !models.ValidReviewType(reviewType) {
		return false, errors.NewValidationError("review_type", fmt.Sprintf("unknown value %q", reviewType))
	}
	completed, err := s.reviewRepo.Complete(ctx, userID, questionID, reviewType)
	if err != nil {
		logger.FromContext(ctx).Error("failed to complete review: %v", err)
		return false, errors.NewInternalError(err)
	}
	return completed, nil
}

func (s *reviewService) PurgeCompleted(ctx context.Context, olderThan time.Time) (int64, error) {
	purged, err := s.reviewRepo.PurgeCompleted(ctx, olderThan)
	if err != nil {
		logger.FromContext(ctx).Error("failed to purge completed reviews: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return purged, nil
}
