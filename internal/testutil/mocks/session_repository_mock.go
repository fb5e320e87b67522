package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bporter/mcattrainer/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context, id int64) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) Insert(ctx context.Context, s models.Session) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) UpdateProgress(ctx context.Context, id int64, correctCount int, ended bool) error {
	args := m.Called(ctx, id, correctCount, ended)
	return args.Error(0)
}

func (m *MockSessionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Session, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockSessionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
