package api

import (
	"net/http"

	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/services"
)

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.FlashcardService.List(r.Context(), r.URL.Query().Get("subject"), queryInt(r, "chapter", 0))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}
	respondJSON(w, http.StatusOK, cards)
}

func (s *Server) handleDueFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	due, err := s.FlashcardService.Due(r.Context(), userID, r.URL.Query().Get("subject"), queryInt(r, "limit", 20))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if due == nil {
		due = []models.DueFlashcard{}
	}
	respondJSON(w, http.StatusOK, due)
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	var req services.FlashcardReviewInput
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	review, err := s.FlashcardService.RecordReview(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}
