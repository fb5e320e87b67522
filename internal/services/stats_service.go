package services

import (
	"context"
	"sort"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

// StatsService derives performance aggregates from the attempt log
type StatsService interface {
	UserStats(ctx context.Context, userID int64) (*models.UserStats, error)
	WeakTopics(ctx context.Context, userID int64, limit int) ([]models.WeakTopic, error)
	TopicAnalytics(ctx context.Context, userID int64) (map[string]*models.SubjectAnalytics, error)
	Trends(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error)
	ErrorTypeCounts(ctx context.Context, userID int64) ([]models.ErrorTypeCount, error)
}

type statsService struct {
	attemptRepo repository.AttemptRepository
	sessionRepo repository.SessionRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(attemptRepo repository.AttemptRepository, sessionRepo repository.SessionRepository) StatsService {
	return &statsService{attemptRepo: attemptRepo, sessionRepo: sessionRepo}
}

func (s *statsService) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing user stats: user_id=%d", userID)

	total, correct, avgTime, err := s.attemptRepo.Overall(ctx, userID)
	if err != nil {
		log.Error("failed to load overall stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	subjects, err := s.attemptRepo.SubjectAccuracy(ctx, userID)
	if err != nil {
		log.Error("failed to load subject accuracy: %v", err)
		return nil, errors.NewInternalError(err)
	}
	bySubject := make(map[string]*models.SubjectStat, len(subjects))
	for i := range subjects {
		bySubject[subjects[i].Subject] = &subjects[i]
	}

	trend, err := s.attemptRepo.Trend(ctx, userID, 7)
	if err != nil {
		log.Error("failed to load trend: %v", err)
		return nil, errors.NewInternalError(err)
	}

	sessionCount, err := s.sessionRepo.CountByUser(ctx, userID)
	if err != nil {
		log.Error("failed to count sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats := &models.UserStats{
		TotalAttempts:   total,
		CorrectAttempts: correct,
		AvgTimeSeconds:  avgTime,
		BySubject:       bySubject,
		RecentTrend:     trend,
		SessionCount:    sessionCount,
	}
	if total > 0 {
		stats.Accuracy = float64(correct) / float64(total)
	}
	return stats, nil
}

// WeakTopics returns the lowest-accuracy topics with enough history to be
// meaningful (at least 3 attempts), weakest first.
func (s *statsService) WeakTopics(ctx context.Context, userID int64, limit int) ([]models.WeakTopic, error) {
	if limit <= 0 {
		limit = 5
	}
	stats, err := s.attemptRepo.TopicAccuracy(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load topic accuracy: %v", err)
		return nil, errors.NewInternalError(err)
	}

	topics := []models.WeakTopic{}
	for _, t := range stats {
		if t.Total < 3 {
			continue
		}
		topics = append(topics, models.WeakTopic{
			Subject:       t.Subject,
			Chapter:       t.Chapter,
			ChapterTitle:  t.ChapterTitle,
			Accuracy:      t.Accuracy,
			TotalAttempts: t.Total,
		})
	}
	sort.SliceStable(topics, func(i, j int) bool { return topics[i].Accuracy < topics[j].Accuracy })
	if len(topics) > limit {
		topics = topics[:limit]
	}
	return topics, nil
}

// TopicAnalytics groups chapter performance under each subject, with
// percentage accuracy for display.
func (s *statsService) TopicAnalytics(ctx context.Context, userID int64) (map[string]*models.SubjectAnalytics, error) {
	stats, err := s.attemptRepo.TopicAccuracy(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load topic accuracy: %v", err)
		return nil, errors.NewInternalError(err)
	}

	bySubject := make(map[string]*models.SubjectAnalytics)
	for _, t := range stats {
		sub := bySubject[t.Subject]
		if sub == nil {
			sub = &models.SubjectAnalytics{Chapters: []models.ChapterAnalytics{}}
			bySubject[t.Subject] = sub
		}
		sub.Chapters = append(sub.Chapters, models.ChapterAnalytics{
			Chapter:      t.Chapter,
			ChapterTitle: t.ChapterTitle,
			Accuracy:     t.Accuracy * 100,
			Attempts:     t.Total,
		})
		sub.TotalCorrect += t.Correct
		sub.TotalAttempts += t.Total
	}
	for _, sub := range bySubject {
		if sub.TotalAttempts > 0 {
			sub.Accuracy = float64(sub.TotalCorrect) / float64(sub.TotalAttempts) * 100
		}
		sort.Slice(sub.Chapters, func(i, j int) bool { return sub.Chapters[i].Chapter < sub.Chapters[j].Chapter })
	}
	return bySubject, nil
}

func (s *statsService) Trends(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error) {
	if days <= 0 {
		days = 30
	}
	trend, err := s.attemptRepo.Trend(ctx, userID, days)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load trend: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return trend, nil
}

func (s *statsService) ErrorTypeCounts(ctx context.Context, userID int64) ([]models.ErrorTypeCount, error) {
	counts, err := s.attemptRepo.ErrorTypeCounts(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load error type counts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return counts, nil
}
