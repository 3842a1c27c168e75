package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/scoring"
)

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

// Create echoes the stored event back when the test configures a nil return
func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		if args.Error(1) != nil {
			return nil, args.Error(1)
		}
		return event, nil
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event *models.Event) (*models.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) UpdateWithAudit(ctx context.Context, event *models.Event, entry *models.EventAuditLog) error {
	args := m.Called(ctx, event, entry)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) CountAccepted(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockEventRepository) FindByStatus(ctx context.Context, status models.EventStatus) ([]*models.Event, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *MockEventRepository) FindOverlapping(ctx context.Context, organizerID string, start, end time.Time) ([]models.Event, error) {
	args := m.Called(ctx, organizerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

// MockParticipantRepository is a mock implementation of repository.ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

// Create echoes the stored participant back when the test configures a nil return
func (m *MockParticipantRepository) Create(ctx context.Context, participant *models.EventParticipant) (*models.EventParticipant, error) {
	args := m.Called(ctx, participant)
	if args.Get(0) == nil {
		if args.Error(1) != nil {
			return nil, args.Error(1)
		}
		return participant, nil
	}
	return args.Get(0).(*models.EventParticipant), args.Error(1)
}

func (m *MockParticipantRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*models.EventParticipant, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventParticipant), args.Error(1)
}

func (m *MockParticipantRepository) UpdateStatus(ctx context.Context, eventID, userID string, status models.ParticipantStatus, respondedAt time.Time) error {
	args := m.Called(ctx, eventID, userID, status, respondedAt)
	return args.Error(0)
}

func (m *MockParticipantRepository) ListAcceptedIDs(ctx context.Context, eventID string) ([]string, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockParticipantRepository) ListForEvent(ctx context.Context, eventID string) ([]models.EventParticipant, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventParticipant), args.Error(1)
}

// MockPreferenceRepository is a mock implementation of repository.PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) GetByUserID(ctx context.Context, userID string) (*models.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPreference), args.Error(1)
}

func (m *MockPreferenceRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]models.UserPreference, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserPreference), args.Error(1)
}

func (m *MockPreferenceRepository) Upsert(ctx context.Context, preference *models.UserPreference) (*models.UserPreference, error) {
	args := m.Called(ctx, preference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPreference), args.Error(1)
}

// MockVenueRepository is a mock implementation of repository.VenueRepository
type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	args := m.Called(ctx, venue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *MockVenueRepository) FindCandidates(ctx context.Context, categories []string, limit int) ([]models.Venue, error) {
	args := m.Called(ctx, categories, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Venue), args.Error(1)
}

func (m *MockVenueRepository) FindTopRated(ctx context.Context, limit int) ([]models.Venue, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Venue), args.Error(1)
}

func (m *MockVenueRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecommendationRepository is a mock implementation of repository.RecommendationRepository
type MockRecommendationRepository struct {
	mock.Mock
}

// Create echoes the stored option back when the test configures a nil
// return, mirroring the repository contract
func (m *MockRecommendationRepository) Create(ctx context.Context, option *models.EventPlaceOption) (*models.EventPlaceOption, error) {
	args := m.Called(ctx, option)
	if args.Get(0) == nil {
		if args.Error(1) != nil {
			return nil, args.Error(1)
		}
		return option, nil
	}
	return args.Get(0).(*models.EventPlaceOption), args.Error(1)
}

func (m *MockRecommendationRepository) CountForEvent(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockRecommendationRepository) ListForEvent(ctx context.Context, eventID string) ([]models.EventPlaceOption, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventPlaceOption), args.Error(1)
}

// MockAuditRepository is a mock implementation of repository.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *models.EventAuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListForEvent(ctx context.Context, eventID string) ([]models.EventAuditLog, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventAuditLog), args.Error(1)
}

// stubScorer scores venues from a fixed table keyed by venue UUID
type stubScorer struct {
	scores map[string]float64
}

func (s *stubScorer) Score(ctx context.Context, venue *models.Venue, preferences *models.AggregatedPreferences, event *models.Event, coordinates []models.Coordinate) (*scoring.Result, error) {
	return &scoring.Result{
		Score:     s.scores[venue.UUID],
		Reasoning: "stubbed",
		Pros:      []string{"stub pro"},
		Cons:      nil,
	}, nil
}
