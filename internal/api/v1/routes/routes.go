package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Lorak9904/RhetorAI/internal/api/v1/handlers"
	"github.com/Lorak9904/RhetorAI/internal/api/v1/services"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	feedbackHandler := handlers.NewFeedbackHandler(container.FeedbackService, container.SpeechService, container.MaxUploadMB)
	router.POST("/audio", feedbackHandler.Audio)
	router.POST("/chat", feedbackHandler.Chat)
	router.POST("/speech", feedbackHandler.Speech)

	if container.ProviderService != nil {
		providerHandler := handlers.NewProviderHandler(container.ProviderService)
		router.GET("/providers", providerHandler.List)
	}

	if container.StatsService != nil {
		statsHandler := handlers.NewStatsHandler(container.StatsService)
		router.GET("/stats", statsHandler.Get)
	}
}

// ServiceContainer holds all service dependencies
type ServiceContainer struct {
	FeedbackService services.FeedbackService
	SpeechService   services.SpeechService
	StatsService    services.StatsService
	ProviderService services.ProviderService
	MaxUploadMB     int
}
