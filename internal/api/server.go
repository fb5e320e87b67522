package api

import (
	"github.com/bporter/mcattrainer/internal/services"
)

// Server holds the service dependencies for the HTTP API.
type Server struct {
	UserService           services.UserService
	QuestionService       services.QuestionService
	SessionService        services.SessionService
	FlashcardService      services.FlashcardService
	ReviewService         services.ReviewService
	RecommendationService services.RecommendationService
	StatsService          services.StatsService
}
