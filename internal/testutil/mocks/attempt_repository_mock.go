package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bporter/mcattrainer/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Insert(ctx context.Context, a models.Attempt) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) SetErrorType(ctx context.Context, id int64, errorType models.ErrorType) (bool, error) {
	args := m.Called(ctx, id, errorType)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) SessionAttempts(ctx context.Context, sessionID int64) ([]models.SessionAttempt, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SessionAttempt), args.Error(1)
}

func (m *MockAttemptRepository) SessionQuestionIDs(ctx context.Context, sessionID int64) ([]string, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAttemptRepository) RecentQuestionIDs(ctx context.Context, userID int64, limit int) ([]string, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAttemptRepository) TopicAccuracy(ctx context.Context, userID int64) ([]models.TopicStat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopicStat), args.Error(1)
}

func (m *MockAttemptRepository) SubjectAccuracy(ctx context.Context, userID int64) ([]models.SubjectStat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubjectStat), args.Error(1)
}

func (m *MockAttemptRepository) Overall(ctx context.Context, userID int64) (int, int, float64, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Get(2).(float64), args.Error(3)
}

func (m *MockAttemptRepository) Trend(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrendPoint), args.Error(1)
}

func (m *MockAttemptRepository) TodayCounts(ctx context.Context, userID int64) (int, int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockAttemptRepository) WrongCounts(ctx context.Context, userID int64, minWrongCount int) ([]models.Leech, error) {
	args := m.Called(ctx, userID, minWrongCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Leech), args.Error(1)
}

func (m *MockAttemptRepository) ErrorTypeCounts(ctx context.Context, userID int64) ([]models.ErrorTypeCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ErrorTypeCount), args.Error(1)
}
