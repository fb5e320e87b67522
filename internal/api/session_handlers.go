package api

import (
	"net/http"

	"github.com/bporter/mcattrainer/internal/models"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID         int64              `json:"user_id"`
		Mode           models.SessionMode `json:"mode"`
		Subjects       []string           `json:"subjects"`
		TotalQuestions int                `json:"total_questions"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.Start(r.Context(), req.UserID, req.Mode, req.Subjects, req.TotalQuestions)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	session, err := s.SessionService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleSessionAttempts(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	attempts, err := s.SessionService.Attempts(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if attempts == nil {
		attempts = []models.SessionAttempt{}
	}
	respondJSON(w, http.StatusOK, attempts)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	summary, err := s.SessionService.End(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
