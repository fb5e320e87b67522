package services_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/services"
	"github.com/bporter/mcattrainer/internal/testutil/mocks"
)

type questionServiceMocks struct {
	questionRepo *mocks.MockQuestionRepository
	attemptRepo  *mocks.MockAttemptRepository
	sessionRepo  *mocks.MockSessionRepository
	reviewRepo   *mocks.MockQuestionReviewRepository
}

func newQuestionService(seed int64) (services.QuestionService, questionServiceMocks) {
	m := questionServiceMocks{
		questionRepo: new(mocks.MockQuestionRepository),
		attemptRepo:  new(mocks.MockAttemptRepository),
		sessionRepo:  new(mocks.MockSessionRepository),
		reviewRepo:   new(mocks.MockQuestionReviewRepository),
	}
	svc := services.NewQuestionService(m.questionRepo, m.attemptRepo, m.sessionRepo, m.reviewRepo, 100, rand.New(rand.NewSource(seed)))
	return svc, m
}

func bioQuestion(id string) models.Question {
	return models.Question{
		ID:            id,
		Subject:       "Biology",
		Chapter:       1,
		ChapterTitle:  "Cell Biology",
		QuestionText:  "q",
		Options:       models.JSONMap{"A": "a", "B": "b"},
		CorrectAnswer: "A",
		Explanation:   "because",
	}
}

func TestNextQuestion_ExcludesSessionHistory(t *testing.T) {
	svc, m := newQuestionService(1)
	ctx := context.Background()

	m.questionRepo.On("List", ctx, []string(nil)).Return([]models.Question{bioQuestion("q1"), bioQuestion("q2")}, nil)
	m.attemptRepo.On("TopicAccuracy", ctx, int64(1)).Return([]models.TopicStat{}, nil)
	m.attemptRepo.On("SessionQuestionIDs", ctx, int64(5)).Return([]string{"q1"}, nil)
	m.attemptRepo.On("RecentQuestionIDs", ctx, int64(1), 100).Return([]string{}, nil)

	got, err := svc.NextQuestion(ctx, 1, 5, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "q2", got.ID)
	assert.Empty(t, got.Options["answer"], "public shape carries no answer")
}

func TestNextQuestion_Exhausted(t *testing.T) {
	svc, m := newQuestionService(1)
	ctx := context.Background()

	m.questionRepo.On("List", ctx, []string(nil)).Return([]models.Question{bioQuestion("q1")}, nil)
	m.attemptRepo.On("TopicAccuracy", ctx, int64(1)).Return([]models.TopicStat{}, nil)
	m.attemptRepo.On("SessionQuestionIDs", ctx, int64(5)).Return([]string{"q1"}, nil)
	m.attemptRepo.On("RecentQuestionIDs", ctx, int64(1), 100).Return([]string{}, nil)

	got, err := svc.NextQuestion(ctx, 1, 5, nil)
	require.NoError(t, err, "exhaustion is not an error")
	assert.Nil(t, got)
}

func TestSubmitAnswer_Correct(t *testing.T) {
	svc, m := newQuestionService(1)
	ctx := context.Background()
	q := bioQuestion("q1")

	m.questionRepo.On("Get", ctx, "q1").Return(&q, nil)
	m.sessionRepo.On("Get", ctx, int64(5)).Return(&models.Session{ID: 5, UserID: 1, TotalQuestions: 10}, nil)
	m.attemptRepo.On("Insert", ctx, mock.MatchedBy(func(a models.Attempt) bool {
		return a.Correct && a.QuestionID == "q1" && a.SessionID == 5
	})).Return(int64(77), nil)
	m.attemptRepo.On("SessionAttempts", ctx, int64(5)).Return([]models.SessionAttempt{
		{Attempt: models.Attempt{Correct: true}},
		{Attempt: models.Attempt{Correct: false}},
	}, nil)
	m.sessionRepo.On("UpdateProgress", ctx, int64(5), 1, false).Return(nil)

	result, err := svc.SubmitAnswer(ctx, services.AnswerInput{
		UserID: 1, QuestionID: "q1", SessionID: 5, SelectedAnswer: "A", TimeTakenSeconds: 42,
	})
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "A", result.CorrectAnswer)
	assert.Equal(t, "because", result.Explanation)
	assert.Equal(t, "Kaplan MCAT Biology Review 2026-2027", result.Citation.Source)
	assert.Equal(t, 2, result.SessionProgress.Answered)
	assert.Equal(t, 1, result.SessionProgress.Correct)
	assert.Equal(t, 10, result.SessionProgress.Total)
	assert.InDelta(t, 50.0, result.SessionProgress.Accuracy, 1e-9)

	m.reviewRepo.AssertNotCalled(t, "ScheduleIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAnswer_IncorrectSchedulesReviews(t *testing.T) {
	svc, m := newQuestionService(1)
	ctx := context.Background()
	q := bioQuestion("q1")

	m.questionRepo.On("Get", ctx, "q1").Return(&q, nil)
	m.sessionRepo.On("Get", ctx, int64(5)).Return(&models.Session{ID: 5, UserID: 1, TotalQuestions: 10}, nil)
	m.attemptRepo.On("Insert", ctx, mock.MatchedBy(func(a models.Attempt) bool {
		return !a.Correct
	})).Return(int64(78), nil)
	m.attemptRepo.On("SessionAttempts", ctx, int64(5)).Return([]models.SessionAttempt{
		{Attempt: models.Attempt{Correct: false}},
	}, nil)
	m.sessionRepo.On("UpdateProgress", ctx, int64(5), 0, false).Return(nil)
	m.reviewRepo.On("ScheduleIfAbsent", ctx, int64(1), "q1", models.ReviewDay1, mock.Anything).Return(true, nil)
	m.reviewRepo.On("ScheduleIfAbsent", ctx, int64(1), "q1", models.ReviewDay7, mock.Anything).Return(true, nil)

	result, err := svc.SubmitAnswer(ctx, services.AnswerInput{
		UserID: 1, QuestionID: "q1", SessionID: 5, SelectedAnswer: "B",
	})
	require.NoError(t, err)
	assert.False(t, result.Correct)

	m.reviewRepo.AssertExpectations(t)
}

func TestSubmitAnswer_QuestionNotFound(t *testing.T) {
	svc, m := newQuestionService(1)
	ctx := context.Background()

	m.questionRepo.On("Get", ctx, "missing").Return(nil, nil)

	_, err := svc.SubmitAnswer(ctx, services.AnswerInput{UserID: 1, QuestionID: "missing", SessionID: 5})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestTagAttempt_ValidatesErrorType(t *testing.T) {
	svc, m := newQuestionService(1)
	ctx := context.Background()

	err := svc.TagAttempt(ctx, 1, "sloppy")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)

	m.attemptRepo.On("SetErrorType", ctx, int64(1), models.ErrorConceptual).Return(true, nil)
	require.NoError(t, svc.TagAttempt(ctx, 1, models.ErrorConceptual))

	m.attemptRepo.On("SetErrorType", ctx, int64(2), models.ErrorConceptual).Return(false, nil)
	err = svc.TagAttempt(ctx, 2, models.ErrorConceptual)
	require.Error(t, err)
	appErr, ok = err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}
