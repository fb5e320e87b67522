package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bporter/mcattrainer/internal/models"
)

// MockQuestionReviewRepository is a mock implementation of repository.QuestionReviewRepository
type MockQuestionReviewRepository struct {
	mock.Mock
}

func (m *MockQuestionReviewRepository) ScheduleIfAbsent(ctx context.Context, userID int64, questionID string, reviewType models.ReviewType, scheduledDate time.Time) (bool, error) {
	args := m.Called(ctx, userID, questionID, reviewType, scheduledDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionReviewRepository) Due(ctx context.Context, userID int64, limit int) ([]models.DueReview, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueReview), args.Error(1)
}

func (m *MockQuestionReviewRepository) CountDue(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionReviewRepository) Complete(ctx context.Context, userID int64, questionID string, reviewType models.ReviewType) (bool, error) {
	args := m.Called(ctx, userID, questionID, reviewType)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionReviewRepository) PurgeCompleted(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}
