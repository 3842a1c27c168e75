package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/metrics"
	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/repository"
)

// PreferenceService manages preference profiles and builds the consensus
// profile for an event's accepted participants
type PreferenceService interface {
	// Aggregate derives the group consensus from the accepted participants'
	// stored profiles. The result is computed fresh and never persisted.
	Aggregate(ctx context.Context, eventID string) (*models.AggregatedPreferences, error)
	Get(ctx context.Context, userID string) (*models.UserPreference, error)
	Upsert(ctx context.Context, preference *models.UserPreference) (*models.UserPreference, error)
}

// preferenceService implements PreferenceService
type preferenceService struct {
	participantRepo repository.ParticipantRepository
	preferenceRepo  repository.PreferenceRepository
	log             *logrus.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(
	participantRepo repository.ParticipantRepository,
	preferenceRepo repository.PreferenceRepository,
	log *logrus.Logger,
) PreferenceService {
	return &preferenceService{
		participantRepo: participantRepo,
		preferenceRepo:  preferenceRepo,
		log:             log,
	}
}

// Aggregate builds the consensus profile. Cuisine tags are ranked by how many
// participants named them; tags with equal counts keep the order in which
// they were first seen, so the output is stable for a given participant set.
func (s *preferenceService) Aggregate(ctx context.Context, eventID string) (*models.AggregatedPreferences, error) {
	ids, err := s.participantRepo.ListAcceptedIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.preferenceRepo.GetByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*models.UserPreference, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	counts := make(map[string]int)
	var firstSeen []string
	var budgetSum float64
	var budgetCount int
	var maxRadius float64
	radiusSet := false

	// Profiles are walked in accepted-participant order, not map order
	for _, id := range ids {
		profile, ok := byUser[id]
		if !ok {
			continue
		}

		for _, token := range strings.Split(profile.CuisinePreferences, ",") {
			tag := strings.TrimSpace(token)
			if tag == "" {
				continue
			}
			if _, seen := counts[tag]; !seen {
				firstSeen = append(firstSeen, tag)
			}
			counts[tag]++
		}

		if profile.BudgetPerPerson != nil && *profile.BudgetPerPerson > 0 {
			budgetSum += *profile.BudgetPerPerson
			budgetCount++
		}

		if profile.MaxDistanceKm != nil && *profile.MaxDistanceKm > 0 {
			if !radiusSet || *profile.MaxDistanceKm > maxRadius {
				maxRadius = *profile.MaxDistanceKm
			}
			radiusSet = true
		}
	}

	cuisines := append([]string(nil), firstSeen...)
	sort.SliceStable(cuisines, func(i, j int) bool {
		return counts[cuisines[i]] > counts[cuisines[j]]
	})

	budget := models.DefaultBudgetPerPerson
	if budgetCount > 0 {
		budget = int(budgetSum / float64(budgetCount))
	}

	radius := models.DefaultDistanceRadiusKm
	if radiusSet {
		radius = maxRadius
	}

	metrics.GetMetricsCollector().Increment(metrics.CounterAggregationsTotal)

	s.log.WithFields(logrus.Fields{
		"event_id":     eventID,
		"participants": len(ids),
		"cuisines":     len(cuisines),
	}).Debug("Aggregated group preferences")

	return &models.AggregatedPreferences{
		ParticipantIDs:      ids,
		CuisineTypes:        cuisines,
		PreferenceWeights:   counts,
		AverageBudget:       budget,
		MaxDistanceRadius:   radius,
		DietaryRestrictions: []string{},
	}, nil
}

// Get returns a user's preference profile
func (s *preferenceService) Get(ctx context.Context, userID string) (*models.UserPreference, error) {
	return s.preferenceRepo.GetByUserID(ctx, userID)
}

// Upsert creates or replaces a user's preference profile
func (s *preferenceService) Upsert(ctx context.Context, preference *models.UserPreference) (*models.UserPreference, error) {
	if preference.UUID == "" {
		preference.UUID = uuid.NewString()
	}
	return s.preferenceRepo.Upsert(ctx, preference)
}
