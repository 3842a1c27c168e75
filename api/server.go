package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"example.com/gatherly/services/planning/api/middleware"
	"example.com/gatherly/services/planning/api/routes"
	"example.com/gatherly/services/planning/config"
	"example.com/gatherly/services/planning/internal/cache"
	"example.com/gatherly/services/planning/internal/messaging"
	"example.com/gatherly/services/planning/internal/repository"
	"example.com/gatherly/services/planning/internal/scoring"
	"example.com/gatherly/services/planning/internal/search"
	"example.com/gatherly/services/planning/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	config     *config.Config
	httpServer *http.Server
	log        *logrus.Logger
}

// NewServer creates a new HTTP server with the full service stack wired in
func NewServer(
	cfg *config.Config,
	log *logrus.Logger,
	nrApp *newrelic.Application,
	db *gorm.DB,
	cacheClient cache.CacheClient,
	busClient messaging.Client,
	searchClient search.Client,
) *Server {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	if nrApp != nil {
		router.Use(middleware.NewRelicMiddleware(nrApp))
	}

	eventRepo := repository.NewEventRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	svc := routes.Services{
		Events: service.NewEventService(eventRepo, participantRepo, auditRepo, cacheClient, log),
		Lifecycle: service.NewLifecycleService(
			eventRepo, recommendationRepo, cacheClient, busClient, cfg.Azure.QueueName, log),
		Preferences: service.NewPreferenceService(participantRepo, preferenceRepo, log),
		Recommendations: service.NewRecommendationService(
			eventRepo, preferenceRepo, venueRepo, recommendationRepo,
			scoring.NewHeuristicScorer(), searchClient, cacheClient, log),
		Venues: venueRepo,
	}

	routes.SetupRoutes(router, svc, log)

	return &Server{
		router: router,
		config: cfg,
		log:    log,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: router,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Infof("Starting server on port %d", s.config.Server.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
