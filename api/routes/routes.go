package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/api/handlers"
	"example.com/gatherly/services/planning/internal/repository"
	"example.com/gatherly/services/planning/internal/service"
)

// Services bundles the service layer dependencies handed to the routes
type Services struct {
	Events          service.EventService
	Lifecycle       service.LifecycleService
	Preferences     service.PreferenceService
	Recommendations service.RecommendationService
	Venues          repository.VenueRepository
}

// SetupRoutes sets up all the routes for the server
func SetupRoutes(r *gin.Engine, svc Services, log *logrus.Logger) {
	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", handlers.Metrics)

	api := r.Group("/api/v1")

	eventHandler := handlers.NewEventHandler(svc.Events, svc.Lifecycle, log)
	participantHandler := handlers.NewParticipantHandler(svc.Events, log)
	preferenceHandler := handlers.NewPreferenceHandler(svc.Preferences, log)
	recommendationHandler := handlers.NewRecommendationHandler(svc.Recommendations, svc.Preferences, log)
	venueHandler := handlers.NewVenueHandler(svc.Venues, log)

	events := api.Group("/events")
	events.POST("", eventHandler.CreateEvent)
	events.GET("/:id", eventHandler.GetEvent)
	events.POST("/:id/transition", eventHandler.TransitionEvent)
	events.GET("/:id/audit", eventHandler.ListAudit)

	events.POST("/:id/participants", participantHandler.Invite)
	events.GET("/:id/participants", participantHandler.List)
	events.PATCH("/:id/participants/:userID", participantHandler.Respond)

	events.GET("/:id/preferences/aggregate", preferenceHandler.Aggregate)

	events.POST("/:id/recommendations", recommendationHandler.Generate)
	events.GET("/:id/recommendations", recommendationHandler.List)

	preferences := api.Group("/preferences")
	preferences.PUT("/:userID", preferenceHandler.Upsert)
	preferences.GET("/:userID", preferenceHandler.Get)

	venues := api.Group("/venues")
	venues.POST("", venueHandler.Create)
	venues.GET("/:id", venueHandler.Get)
	venues.DELETE("/:id", venueHandler.Delete)
}
