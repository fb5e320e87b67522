package api

import (
	"net/http"

	"github.com/bporter/mcattrainer/internal/models"
)

func (s *Server) handleDueReviews(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	due, err := s.ReviewService.DueReviews(r.Context(), id, queryInt(r, "limit", 20))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if due == nil {
		due = []models.DueReview{}
	}
	respondJSON(w, http.StatusOK, due)
}

func (s *Server) handleCompleteReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     int64             `json:"user_id"`
		QuestionID string            `json:"question_id"`
		ReviewType models.ReviewType `json:"review_type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	completed, err := s.ReviewService.CompleteReview(r.Context(), req.UserID, req.QuestionID, req.ReviewType)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}
