package api

import (
	"net/http"

	"github.com/bporter/mcattrainer/internal/models"
)

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	recs, err := s.RecommendationService.Recommendations(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	top, err := s.RecommendationService.TopRecommendation(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"recommendations":    recs,
		"top_recommendation": top,
	})
}

func (s *Server) handleLeeches(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	leeches, err := s.RecommendationService.Leeches(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if leeches == nil {
		leeches = []models.Leech{}
	}
	respondJSON(w, http.StatusOK, leeches)
}

func (s *Server) handleDailyProgress(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	progress, err := s.RecommendationService.DailyProgress(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}
