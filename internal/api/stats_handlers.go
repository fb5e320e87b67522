package api

import (
	"net/http"

	"github.com/bporter/mcattrainer/internal/models"
)

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := s.UserService.Get(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	stats, err := s.StatsService.UserStats(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleWeakTopics(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	topics, err := s.StatsService.WeakTopics(r.Context(), id, queryInt(r, "limit", 5))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, topics)
}

func (s *Server) handleTopicAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	analytics, err := s.StatsService.TopicAnalytics(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}

func (s *Server) handleTrendAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	trend, err := s.StatsService.Trends(r.Context(), id, queryInt(r, "days", 30))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if trend == nil {
		trend = []models.TrendPoint{}
	}
	respondJSON(w, http.StatusOK, trend)
}

func (s *Server) handleErrorTypeAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	counts, err := s.StatsService.ErrorTypeCounts(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if counts == nil {
		counts = []models.ErrorTypeCount{}
	}
	respondJSON(w, http.StatusOK, counts)
}
