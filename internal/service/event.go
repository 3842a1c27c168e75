package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/cache"
	"example.com/gatherly/services/planning/internal/metrics"
	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/repository"
	"example.com/gatherly/services/planning/internal/rules"
)

// CreateEventRequest carries the organizer's input for a new event
type CreateEventRequest struct {
	Title               string     `json:"title" binding:"required"`
	EventType           string     `json:"event_type" binding:"required"`
	OrganizerID         string     `json:"organizer_id" binding:"required"`
	ScheduledDate       time.Time  `json:"scheduled_date" binding:"required"`
	ScheduledTime       string     `json:"scheduled_time"`
	EstimatedDuration   *int       `json:"estimated_duration"`
	ExpectedAttendees   int        `json:"expected_attendees" binding:"required"`
	BudgetTotal         *float64   `json:"budget_total"`
	AcceptanceThreshold *float64   `json:"acceptance_threshold"`
	RsvpDeadline        *time.Time `json:"rsvp_deadline"`
}

// EventService manages event creation, lookup, and participation
type EventService interface {
	Create(ctx context.Context, req *CreateEventRequest) (*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	ListParticipants(ctx context.Context, eventID string) ([]models.EventParticipant, error)
	Invite(ctx context.Context, eventID, userID string) (*models.EventParticipant, error)
	Respond(ctx context.Context, eventID, userID string, accept bool) error
	ListAudit(ctx context.Context, eventID string) ([]models.EventAuditLog, error)
}

// eventService implements EventService
type eventService struct {
	eventRepo       repository.EventRepository
	participantRepo repository.ParticipantRepository
	auditRepo       repository.AuditRepository
	cache           cache.CacheClient
	log             *logrus.Logger
	now             func() time.Time
}

// NewEventService creates a new event service
func NewEventService(
	eventRepo repository.EventRepository,
	participantRepo repository.ParticipantRepository,
	auditRepo repository.AuditRepository,
	cacheClient cache.CacheClient,
	log *logrus.Logger,
) EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		auditRepo:       auditRepo,
		cache:           cacheClient,
		log:             log,
		now:             time.Now,
	}
}

// Create validates the scheduling rules and persists a new draft event
func (s *eventService) Create(ctx context.Context, req *CreateEventRequest) (*models.Event, error) {
	event := &models.Event{
		Base:                models.Base{UUID: uuid.NewString()},
		Title:               req.Title,
		EventType:           req.EventType,
		OrganizerID:         req.OrganizerID,
		Status:              models.StatusDraft,
		ScheduledDate:       req.ScheduledDate,
		ScheduledTime:       req.ScheduledTime,
		EstimatedDuration:   req.EstimatedDuration,
		ExpectedAttendees:   req.ExpectedAttendees,
		BudgetTotal:         req.BudgetTotal,
		AcceptanceThreshold: req.AcceptanceThreshold,
		RsvpDeadline:        req.RsvpDeadline,
	}

	now := s.now()
	checks := []error{
		rules.ValidateAdvanceScheduling(event, now),
		rules.ValidateMinimumParticipants(event),
		rules.ValidateBudgetFloor(event),
	}
	for _, err := range checks {
		if err != nil {
			s.recordViolation(err)
			return nil, err
		}
	}

	start, end := event.TimeWindow()
	overlapping, err := s.eventRepo.FindOverlapping(ctx, req.OrganizerID, start, end)
	if err != nil {
		return nil, err
	}
	if err := rules.ValidateNoTimeOverlap(overlapping); err != nil {
		s.recordViolation(err)
		return nil, err
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"event_id":  created.UUID,
		"organizer": created.OrganizerID,
	}).Info("Created event")

	return created, nil
}

// GetByID returns an event, serving from cache when possible
func (s *eventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if s.cache != nil {
		cached, err := s.cache.GetEvent(ctx, id)
		if err == nil {
			metrics.GetMetricsCollector().Increment(metrics.CounterCacheHits)
			return cached, nil
		}
		if err != redis.Nil {
			s.log.WithError(err).Warn("Failed to read event from cache")
		}
		metrics.GetMetricsCollector().Increment(metrics.CounterCacheMisses)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetEvent(ctx, event); err != nil {
			s.log.WithError(err).Warn("Failed to cache event")
		}
	}

	return event, nil
}

// ListParticipants lists all participants of an event
func (s *eventService) ListParticipants(ctx context.Context, eventID string) ([]models.EventParticipant, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.participantRepo.ListForEvent(ctx, eventID)
}

// Invite adds a pending participant to an event. The event must still be in
// an invitable status and before its RSVP deadline.
func (s *eventService) Invite(ctx context.Context, eventID, userID string) (*models.EventParticipant, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := rules.ValidateInvitableStatus(event); err != nil {
		s.recordViolation(err)
		return nil, err
	}
	if err := rules.ValidateInvitationDeadline(event, s.now()); err != nil {
		s.recordViolation(err)
		return nil, err
	}

	_, err = s.participantRepo.GetByEventAndUser(ctx, eventID, userID)
	if err == nil {
		return nil, repository.ErrDuplicateKey
	}
	if err != repository.ErrNotFound {
		return nil, err
	}

	participant := &models.EventParticipant{
		Base:    models.Base{UUID: uuid.NewString()},
		EventID: eventID,
		UserID:  userID,
		Status:  models.ParticipantPending,
	}
	return s.participantRepo.Create(ctx, participant)
}

// Respond records a participant's accept or decline
func (s *eventService) Respond(ctx context.Context, eventID, userID string, accept bool) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	now := s.now()
	if err := rules.ValidateInvitationDeadline(event, now); err != nil {
		s.recordViolation(err)
		return err
	}

	status := models.ParticipantDeclined
	if accept {
		status = models.ParticipantAccepted
	}
	return s.participantRepo.UpdateStatus(ctx, eventID, userID, status, now)
}

// ListAudit returns an event's transition history in chronological order
func (s *eventService) ListAudit(ctx context.Context, eventID string) ([]models.EventAuditLog, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListForEvent(ctx, eventID)
}

func (s *eventService) recordViolation(err error) {
	if violation, ok := err.(*rules.Violation); ok {
		metrics.GetMetricsCollector().RecordRuleViolation(violation.Rule)
	}
}
