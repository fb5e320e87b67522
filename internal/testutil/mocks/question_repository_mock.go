package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bporter/mcattrainer/internal/models"
)

// MockQuestionRepository is a mock implementation of repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Get(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, subjects []string) ([]models.Question, error) {
	args := m.Called(ctx, subjects)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Subjects(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestionRepository) CountBySubject(ctx context.Context, subjects []string) (map[string]int, error) {
	args := m.Called(ctx, subjects)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockQuestionRepository) Upsert(ctx context.Context, q models.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}
