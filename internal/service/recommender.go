package service

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/cache"
	"example.com/gatherly/services/planning/internal/metrics"
	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/repository"
	"example.com/gatherly/services/planning/internal/scoring"
	"example.com/gatherly/services/planning/internal/search"
)

// Selection parameters for the recommendation pipeline
const (
	// scoreFloor excludes venues scoring at or below this value
	scoreFloor = 40.0
	// primaryCandidateLimit caps the category-filtered candidate pool
	primaryCandidateLimit = 50
	// fallbackCandidateLimit caps the top-rated pool used when the
	// category filter matches nothing
	fallbackCandidateLimit = 20
	// shortlistSize is the number of options persisted per generation run
	shortlistSize = 5
)

// RecommendationService generates and serves venue shortlists
type RecommendationService interface {
	// Generate scores candidate venues against the consensus profile and
	// persists the shortlist, best score first
	Generate(ctx context.Context, eventID string, preferences *models.AggregatedPreferences, searchLocation *models.Coordinate) ([]*models.EventPlaceOption, error)
	List(ctx context.Context, eventID string) ([]models.EventPlaceOption, error)
}

// recommendationService implements RecommendationService
type recommendationService struct {
	eventRepo          repository.EventRepository
	preferenceRepo     repository.PreferenceRepository
	venueRepo          repository.VenueRepository
	recommendationRepo repository.RecommendationRepository
	scorer             scoring.VenueScorer
	search             search.Client
	cache              cache.CacheClient
	log                *logrus.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	eventRepo repository.EventRepository,
	preferenceRepo repository.PreferenceRepository,
	venueRepo repository.VenueRepository,
	recommendationRepo repository.RecommendationRepository,
	scorer scoring.VenueScorer,
	searchClient search.Client,
	cacheClient cache.CacheClient,
	log *logrus.Logger,
) RecommendationService {
	return &recommendationService{
		eventRepo:          eventRepo,
		preferenceRepo:     preferenceRepo,
		venueRepo:          venueRepo,
		recommendationRepo: recommendationRepo,
		scorer:             scorer,
		search:             searchClient,
		cache:              cacheClient,
		log:                log,
	}
}

type scoredVenue struct {
	venue  models.Venue
	result *scoring.Result
}

// Generate runs the selection pipeline: gather candidates, score each one,
// drop low scores, keep the top of the ranking, persist the survivors
func (s *recommendationService) Generate(ctx context.Context, eventID string, preferences *models.AggregatedPreferences, searchLocation *models.Coordinate) ([]*models.EventPlaceOption, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	coordinates := s.collectCoordinates(ctx, preferences.ParticipantIDs, searchLocation)

	venues, err := s.venueRepo.FindCandidates(ctx, preferences.CuisineTypes, primaryCandidateLimit)
	if err != nil {
		return nil, err
	}
	if len(venues) == 0 {
		venues, err = s.venueRepo.FindTopRated(ctx, fallbackCandidateLimit)
		if err != nil {
			return nil, err
		}
	}

	var scored []scoredVenue
	for i := range venues {
		result, err := s.scorer.Score(ctx, &venues[i], preferences, event, coordinates)
		if err != nil {
			metrics.GetMetricsCollector().RecordError(metrics.ErrorTypeScoring)
			return nil, err
		}
		if result.Score <= scoreFloor {
			continue
		}
		scored = append(scored, scoredVenue{venue: venues[i], result: result})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].result.Score > scored[j].result.Score
	})
	if len(scored) > shortlistSize {
		scored = scored[:shortlistSize]
	}

	options := make([]*models.EventPlaceOption, 0, len(scored))
	for _, sv := range scored {
		option := &models.EventPlaceOption{
			Base:                   models.Base{UUID: uuid.NewString()},
			EventID:                eventID,
			VenueID:                sv.venue.UUID,
			SuggestedBy:            models.SuggestedByAI,
			AiScore:                sv.result.Score,
			AiReasoning:            sv.result.Reasoning,
			Pros:                   marshalList(sv.result.Pros),
			Cons:                   marshalList(sv.result.Cons),
			EstimatedCostPerPerson: sv.venue.PriceTier,
		}

		created, err := s.recommendationRepo.Create(ctx, option)
		if err != nil {
			metrics.GetMetricsCollector().RecordError(metrics.ErrorTypeDatabase)
			return nil, err
		}
		options = append(options, created)

		if s.search != nil {
			if err := s.search.IndexRecommendation(ctx, created); err != nil {
				s.log.WithError(err).Warn("Failed to index recommendation")
			}
		}
	}

	if s.cache != nil {
		if err := s.cache.DeleteRecommendations(ctx, eventID); err != nil {
			s.log.WithError(err).Warn("Failed to invalidate recommendations cache")
		}
	}

	metrics.GetMetricsCollector().Add(metrics.CounterRecommendationsCreated, int64(len(options)))

	s.log.WithFields(logrus.Fields{
		"event_id":   eventID,
		"candidates": len(venues),
		"shortlist":  len(options),
	}).Info("Generated venue recommendations")

	return options, nil
}

// List returns an event's recommendations, best score first
func (s *recommendationService) List(ctx context.Context, eventID string) ([]models.EventPlaceOption, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRecommendations(ctx, eventID)
		if err == nil {
			metrics.GetMetricsCollector().Increment(metrics.CounterCacheHits)
			return cached, nil
		}
		if err != redis.Nil {
			s.log.WithError(err).Warn("Failed to read recommendations from cache")
		}
		metrics.GetMetricsCollector().Increment(metrics.CounterCacheMisses)
	}

	options, err := s.recommendationRepo.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRecommendations(ctx, eventID, options); err != nil {
			s.log.WithError(err).Warn("Failed to cache recommendations")
		}
	}

	return options, nil
}

// collectCoordinates gathers scoring locations from the optional search
// location plus any participant profile that carries one. A missing or
// failing profile lookup degrades to fewer coordinates, not an error.
func (s *recommendationService) collectCoordinates(ctx context.Context, participantIDs []string, searchLocation *models.Coordinate) []models.Coordinate {
	var coordinates []models.Coordinate
	if searchLocation != nil {
		coordinates = append(coordinates, *searchLocation)
	}

	profiles, err := s.preferenceRepo.GetByUserIDs(ctx, participantIDs)
	if err != nil {
		s.log.WithError(err).Warn("Failed to load participant locations")
		return coordinates
	}

	for _, profile := range profiles {
		if profile.Latitude != nil && profile.Longitude != nil {
			coordinates = append(coordinates, models.Coordinate{
				Latitude:  *profile.Latitude,
				Longitude: *profile.Longitude,
			})
		}
	}
	return coordinates
}

// marshalList encodes a string list as JSON, treating nil as empty
func marshalList(items []string) []byte {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return []byte("[]")
	}
	return data
}
