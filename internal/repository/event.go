package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/gatherly/services/planning/internal/db"
	"example.com/gatherly/services/planning/internal/models"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) (*models.Event, error)
	// UpdateWithAudit persists the event and appends the audit entry in a
	// single transaction so a transition is either fully recorded or not at all
	UpdateWithAudit(ctx context.Context, event *models.Event, entry *models.EventAuditLog) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	CountAccepted(ctx context.Context, eventID string) (int, error)
	FindByStatus(ctx context.Context, status models.EventStatus) ([]*models.Event, error)
	FindOverlapping(ctx context.Context, organizerID string, start, end time.Time) ([]models.Event, error)
}

// eventRepository implements EventRepository
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event
func (r *eventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Update saves all fields of an event
func (r *eventRepository) Update(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateWithAudit saves the event and appends the audit entry atomically
func (r *eventRepository) UpdateWithAudit(ctx context.Context, event *models.Event, entry *models.EventAuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(event).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(entry).Error
	})
}

// GetByID gets an event by ID
func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&event).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// CountAccepted counts the accepted participants of an event
func (r *eventRepository) CountAccepted(ctx context.Context, eventID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EventParticipant{}).
		Where("event_id = ? AND status = ?", eventID, models.ParticipantAccepted).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// FindByStatus finds all events in the given status
func (r *eventRepository) FindByStatus(ctx context.Context, status models.EventStatus) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// FindOverlapping finds the organizer's non-terminal events whose scheduled
// window overlaps [start, end). Window math happens in Go because the end
// time depends on a per-event duration fallback.
func (r *eventRepository) FindOverlapping(ctx context.Context, organizerID string, start, end time.Time) ([]models.Event, error) {
	var candidates []models.Event
	err := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Where("status NOT IN ?", []models.EventStatus{models.StatusCancelled, models.StatusCompleted}).
		Where("scheduled_date < ?", end).
		Order("scheduled_date").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var overlapping []models.Event
	for _, candidate := range candidates {
		cStart, cEnd := candidate.TimeWindow()
		if cStart.Before(end) && cEnd.After(start) {
			overlapping = append(overlapping, candidate)
		}
	}
	return overlapping, nil
}
