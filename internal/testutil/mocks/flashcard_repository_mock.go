package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bporter/mcattrainer/internal/models"
)

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Get(ctx context.Context, id string) (*models.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) List(ctx context.Context, subject string, chapter int) ([]models.Flashcard, error) {
	args := m.Called(ctx, subject, chapter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) Upsert(ctx context.Context, f models.Flashcard) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlashcardRepository) State(ctx context.Context, userID int64, flashcardID string) (*models.FlashcardState, error) {
	args := m.Called(ctx, userID, flashcardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlashcardState), args.Error(1)
}

func (m *MockFlashcardRepository) RecordReview(ctx context.Context, review models.FlashcardReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockFlashcardRepository) Due(ctx context.Context, userID int64, subject string, limit int) ([]models.DueFlashcard, error) {
	args := m.Called(ctx, userID, subject, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueFlashcard), args.Error(1)
}
