package services

import (
	"context"
	"time"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
	"github.com/bporter/mcattrainer/internal/srs"
)

// FlashcardReviewInput is one graded flashcard exposure.
type FlashcardReviewInput struct {
	UserID           int64   `json:"user_id"`
	FlashcardID      string  `json:"flashcard_id"`
	SessionID        int64   `json:"session_id"`
	Correct          bool    `json:"correct"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
}

// FlashcardService handles flashcard review recording and due queues
type FlashcardService interface {
	RecordReview(ctx context.Context, in FlashcardReviewInput) (*models.FlashcardReview, error)
	Due(ctx context.Context, userID int64, subject string, limit int) ([]models.DueFlashcard, error)
	List(ctx context.Context, subject string, chapter int) ([]models.Flashcard, error)
}

type flashcardService struct {
	flashcardRepo repository.FlashcardRepository
	now           func() time.Time
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(flashcardRepo repository.FlashcardRepository) FlashcardService {
	return &flashcardService{
		flashcardRepo: flashcardRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// RecordReview advances the card's scheduling state from its current state
// only, appends a review row, and updates the state projection.
func (s *flashcardService) RecordReview(ctx context.Context, in FlashcardReviewInput) (*models.FlashcardReview, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording flashcard review: user_id=%d, flashcard_id=%s, correct=%t", in.UserID, in.FlashcardID, in.Correct)

	card, err := s.flashcardRepo.Get(ctx, in.FlashcardID)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", in.FlashcardID)
	}

	prev := srs.Initial()
	state, err := s.flashcardRepo.State(ctx, in.UserID, in.FlashcardID)
	if err != nil {
		log.Error("failed to get flashcard state: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if state != nil {
		prev = srs.State{EaseFactor: state.EaseFactor, IntervalDays: state.IntervalDays}
	}

	next := srs.Next(prev, in.Correct, s.now())

	review := models.FlashcardReview{
		UserID:           in.UserID,
		FlashcardID:      in.FlashcardID,
		SessionID:        in.SessionID,
		Correct:          in.Correct,
		TimeTakenSeconds: in.TimeTakenSeconds,
		EaseFactor:       next.EaseFactor,
		IntervalDays:     next.IntervalDays,
		NextReviewDate:   next.NextReviewDate,
	}
	if err := s.flashcardRepo.RecordReview(ctx, review); err != nil {
		log.Error("failed to record flashcard review: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &review, nil
}

func (s *flashcardService) Due(ctx context.Context, userID int64, subject string, limit int) ([]models.DueFlashcard, error) {
	if limit <= 0 {
		limit = 20
	}
	due, err := s.flashcardRepo.Due(ctx, userID, subject, limit)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list due flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return due, nil
}

func (s *flashcardService) List(ctx context.Context, subject string, chapter int) ([]models.Flashcard, error) {
	cards, err := s.flashcardRepo.List(ctx, subject, chapter)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}
