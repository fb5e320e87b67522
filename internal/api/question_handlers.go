package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/services"
)

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessionID, err := queryInt64(r, "session_id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	question, err := s.QuestionService.NextQuestion(r.Context(), userID, sessionID, querySubjects(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if question == nil {
		logger.FromContext(r.Context()).Debug("no questions left: session_id=%d", sessionID)
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": "No more questions available"})
		return
	}
	respondJSON(w, http.StatusOK, question)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	question, err := s.QuestionService.GetQuestion(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if r.URL.Query().Get("include_answer") == "true" {
		respondJSON(w, http.StatusOK, question)
		return
	}
	respondJSON(w, http.StatusOK, question.Public())
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req services.AnswerInput
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	result, err := s.QuestionService.SubmitAnswer(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleTagAttempt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req struct {
		ErrorType models.ErrorType `json:"error_type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.QuestionService.TagAttempt(r.Context(), id, req.ErrorType); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.QuestionService.Subjects(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, catalog)
}
