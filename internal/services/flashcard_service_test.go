package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/services"
	"github.com/bporter/mcattrainer/internal/testutil/mocks"
)

func TestRecordFlashcardReview_FirstReview(t *testing.T) {
	repo := new(mocks.MockFlashcardRepository)
	svc := services.NewFlashcardService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "fc1").Return(&models.Flashcard{ID: "fc1", Subject: "Biology"}, nil)
	repo.On("State", ctx, int64(1), "fc1").Return(nil, nil)
	repo.On("RecordReview", ctx, mock.MatchedBy(func(r models.FlashcardReview) bool {
		return r.IntervalDays == 6 && r.EaseFactor > 2.59 && r.EaseFactor < 2.61
	})).Return(nil)

	review, err := svc.RecordReview(ctx, services.FlashcardReviewInput{
		UserID: 1, FlashcardID: "fc1", Correct: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, review.IntervalDays)
	assert.InDelta(t, 2.6, review.EaseFactor, 1e-9)
	repo.AssertExpectations(t)
}

func TestRecordFlashcardReview_AdvancesFromStoredState(t *testing.T) {
	repo := new(mocks.MockFlashcardRepository)
	svc := services.NewFlashcardService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "fc1").Return(&models.Flashcard{ID: "fc1"}, nil)
	repo.On("State", ctx, int64(1), "fc1").Return(&models.FlashcardState{
		UserID: 1, FlashcardID: "fc1", EaseFactor: 2.6, IntervalDays: 6,
	}, nil)
	repo.On("RecordReview", ctx, mock.MatchedBy(func(r models.FlashcardReview) bool {
		return r.IntervalDays == 15
	})).Return(nil)

	review, err := svc.RecordReview(ctx, services.FlashcardReviewInput{
		UserID: 1, FlashcardID: "fc1", Correct: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, review.IntervalDays, "floor(6 * 2.6)")
	assert.InDelta(t, 2.7, review.EaseFactor, 1e-9)
}

func TestRecordFlashcardReview_IncorrectResets(t *testing.T) {
	repo := new(mocks.MockFlashcardRepository)
	svc := services.NewFlashcardService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "fc1").Return(&models.Flashcard{ID: "fc1"}, nil)
	repo.On("State", ctx, int64(1), "fc1").Return(&models.FlashcardState{
		UserID: 1, FlashcardID: "fc1", EaseFactor: 1.35, IntervalDays: 10,
	}, nil)
	repo.On("RecordReview", ctx, mock.Anything).Return(nil)

	review, err := svc.RecordReview(ctx, services.FlashcardReviewInput{
		UserID: 1, FlashcardID: "fc1", Correct: false,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, review.IntervalDays)
	assert.InDelta(t, 1.3, review.EaseFactor, 1e-9, "ease floors at 1.3")
}

func TestRecordFlashcardReview_CardNotFound(t *testing.T) {
	repo := new(mocks.MockFlashcardRepository)
	svc := services.NewFlashcardService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "missing").Return(nil, nil)

	_, err := svc.RecordReview(ctx, services.FlashcardReviewInput{UserID: 1, FlashcardID: "missing"})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}
