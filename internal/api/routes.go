package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/api/health", s.handleHealth)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleCreateUser)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetUser)
			r.Get("/stats", s.handleUserStats)
			r.Get("/weak-topics", s.handleWeakTopics)
			r.Get("/sessions", s.handleUserSessions)
			r.Get("/analytics/topics", s.handleTopicAnalytics)
			r.Get("/analytics/trends", s.handleTrendAnalytics)
			r.Get("/analytics/error-types", s.handleErrorTypeAnalytics)
			r.Get("/recommendations", s.handleRecommendations)
			r.Get("/leeches", s.handleLeeches)
			r.Get("/daily-progress", s.handleDailyProgress)
			r.Get("/reviews/due", s.handleDueReviews)
		})
	})

	r.Get("/api/subjects", s.handleSubjects)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartSession)
		r.Get("/{id}", s.handleGetSession)
		r.Get("/{id}/attempts", s.handleSessionAttempts)
		r.Post("/{id}/end", s.handleEndSession)
	})

	r.Get("/api/questions/next", s.handleNextQuestion)
	r.Get("/api/questions/{id}", s.handleGetQuestion)
	r.Post("/api/answer", s.handleSubmitAnswer)
	r.Post("/api/attempts/{id}/error-type", s.handleTagAttempt)

	r.Get("/api/flashcards", s.handleListFlashcards)
	r.Get("/api/flashcards/due", s.handleDueFlashcards)
	r.Post("/api/flashcards/review", s.handleReviewFlashcard)

	r.Post("/api/reviews/complete", s.handleCompleteReview)

	return r
}
