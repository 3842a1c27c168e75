package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/cache"
	"example.com/gatherly/services/planning/internal/messaging"
	"example.com/gatherly/services/planning/internal/metrics"
	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/repository"
	"example.com/gatherly/services/planning/internal/rules"
)

// transitions is the fixed lifecycle edge table. It is read-only after
// package init; completed and cancelled have no outgoing edges.
var transitions = map[models.EventStatus][]models.EventStatus{
	models.StatusDraft:                {models.StatusPlanning, models.StatusCancelled},
	models.StatusPlanning:             {models.StatusInviting, models.StatusCancelled},
	models.StatusInviting:             {models.StatusGatheringPreferences, models.StatusConfirmed, models.StatusCancelled},
	models.StatusGatheringPreferences: {models.StatusAiRecommending, models.StatusCancelled},
	models.StatusAiRecommending:       {models.StatusVoting, models.StatusCancelled},
	models.StatusVoting:               {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:            {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:            {},
	models.StatusCancelled:            {},
}

// entryEffects maps a target status to the side effect applied on entering it
var entryEffects = map[models.EventStatus]func(event *models.Event, now time.Time){
	models.StatusAiRecommending: func(event *models.Event, now time.Time) {
		event.AiAnalysisStartedAt = &now
	},
	models.StatusVoting: func(event *models.Event, now time.Time) {
		deadline := now.AddDate(0, 0, models.VotingWindowDays)
		event.VotingDeadline = &deadline
	},
	models.StatusConfirmed: func(event *models.Event, now time.Time) {
		event.ConfirmedAt = &now
	},
	models.StatusCancelled: func(event *models.Event, now time.Time) {
		event.CancelledAt = &now
	},
	models.StatusCompleted: func(event *models.Event, now time.Time) {
		event.CompletedAt = &now
	},
}

// InvalidTransitionError reports a rejected lifecycle transition
type InvalidTransitionError struct {
	From  models.EventStatus
	To    models.EventStatus
	Guard string
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	if e.Guard != "" {
		return fmt.Sprintf("cannot transition from %s to %s: %s", e.From, e.To, e.Guard)
	}
	return fmt.Sprintf("transition from %s to %s is not allowed", e.From, e.To)
}

// LifecycleService drives events through the fixed lifecycle
type LifecycleService interface {
	// CanTransition is the structural edge check only; it has no side effects
	CanTransition(event *models.Event, target models.EventStatus) bool
	// ValidateTransition runs the structural check plus the target-specific guard
	ValidateTransition(ctx context.Context, event *models.Event, target models.EventStatus) error
	// TransitionTo validates, applies entry side effects, and commits the
	// event update together with one audit entry
	TransitionTo(ctx context.Context, eventID string, target models.EventStatus, reason string) (*models.Event, error)
}

// lifecycleService implements LifecycleService
type lifecycleService struct {
	eventRepo          repository.EventRepository
	recommendationRepo repository.RecommendationRepository
	cache              cache.CacheClient
	bus                messaging.Client
	queueName          string
	log                *logrus.Logger
	locks              *eventLocks
	now                func() time.Time
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(
	eventRepo repository.EventRepository,
	recommendationRepo repository.RecommendationRepository,
	cacheClient cache.CacheClient,
	bus messaging.Client,
	queueName string,
	log *logrus.Logger,
) LifecycleService {
	return &lifecycleService{
		eventRepo:          eventRepo,
		recommendationRepo: recommendationRepo,
		cache:              cacheClient,
		bus:                bus,
		queueName:          queueName,
		log:                log,
		locks:              newEventLocks(),
		now:                time.Now,
	}
}

// CanTransition checks whether the edge exists in the transition table
func (s *lifecycleService) CanTransition(event *models.Event, target models.EventStatus) bool {
	for _, allowed := range transitions[event.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidateTransition checks the edge and the target-specific guard
func (s *lifecycleService) ValidateTransition(ctx context.Context, event *models.Event, target models.EventStatus) error {
	if !s.CanTransition(event, target) {
		return &InvalidTransitionError{From: event.Status, To: target}
	}

	switch target {
	case models.StatusInviting:
		if strings.TrimSpace(event.Title) == "" ||
			strings.TrimSpace(event.EventType) == "" ||
			event.ScheduledDate.IsZero() {
			return &InvalidTransitionError{
				From:  event.Status,
				To:    target,
				Guard: "event needs a title, a type, and a scheduled date before inviting",
			}
		}

	case models.StatusGatheringPreferences:
		accepted, err := s.eventRepo.CountAccepted(ctx, event.UUID)
		if err != nil {
			return err
		}
		if !rules.MeetsAcceptanceThreshold(accepted, event.ExpectedAttendees, event.AcceptanceThreshold) {
			return &InvalidTransitionError{
				From: event.Status,
				To:   target,
				Guard: fmt.Sprintf("%d of %d expected attendees accepted; threshold is %.0f%%",
					accepted, event.ExpectedAttendees, event.Threshold()*100),
			}
		}

	case models.StatusVoting:
		count, err := s.recommendationRepo.CountForEvent(ctx, event.UUID)
		if err != nil {
			return err
		}
		if count < 1 {
			return &InvalidTransitionError{
				From:  event.Status,
				To:    target,
				Guard: "no venue recommendations have been generated yet",
			}
		}
	}

	return nil
}

// TransitionTo performs a validated transition. The event update and the
// audit append commit in one transaction; cache invalidation, message
// publishing, and metrics run best-effort afterwards.
func (s *lifecycleService) TransitionTo(ctx context.Context, eventID string, target models.EventStatus, reason string) (*models.Event, error) {
	// Transitions on the same event are serialized so two callers cannot
	// both validate against a stale status
	lock := s.locks.get(eventID)
	lock.Lock()
	defer lock.Unlock()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.ValidateTransition(ctx, event, target); err != nil {
		metrics.GetMetricsCollector().Increment(metrics.CounterTransitionsRejected)
		return nil, err
	}

	now := s.now()
	oldStatus := event.Status

	if effect, ok := entryEffects[target]; ok {
		effect(event, now)
	}
	if target == models.StatusCancelled {
		event.CancellationReason = reason
	}
	event.Status = target
	event.UpdatedAt = now

	if reason == "" {
		reason = fmt.Sprintf("Status changed from %s to %s", oldStatus, target)
	}

	entry := &models.EventAuditLog{
		Base:      models.Base{UUID: uuid.NewString()},
		EventID:   event.UUID,
		OldStatus: oldStatus,
		NewStatus: target,
		Reason:    reason,
		Details:   []byte("{}"),
	}

	if err := s.eventRepo.UpdateWithAudit(ctx, event, entry); err != nil {
		metrics.GetMetricsCollector().RecordError(metrics.ErrorTypeDatabase)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.DeleteEvent(ctx, event.UUID); err != nil {
			s.log.WithError(err).Warn("Failed to invalidate event cache after transition")
		}
	}

	if s.bus != nil {
		message := buildStatusMessage(event, oldStatus, reason, now)
		err := messaging.RetryWithBackoff(ctx, func() error {
			return s.bus.PublishMessage(ctx, message, s.queueName)
		}, 3)
		if err != nil {
			s.log.WithError(err).Warn("Failed to publish status change message")
			metrics.GetMetricsCollector().Increment(metrics.CounterMessagesPublishFailures)
		} else {
			metrics.GetMetricsCollector().Increment(metrics.CounterMessagesPublished)
		}
	}

	metrics.GetMetricsCollector().RecordTransition(string(oldStatus), string(target))

	return event, nil
}

// buildStatusMessage builds the bus payload for a committed transition
func buildStatusMessage(event *models.Event, oldStatus models.EventStatus, reason string, occurredAt time.Time) *messaging.StatusChangedMessage {
	return &messaging.StatusChangedMessage{
		EventID:    event.UUID,
		OldStatus:  oldStatus,
		NewStatus:  event.Status,
		Reason:     reason,
		OccurredAt: occurredAt,
	}
}

// eventLocks hands out one mutex per event ID
type eventLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *eventLocks) get(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	return lock
}
