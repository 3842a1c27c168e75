package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/gatherly/services/planning/internal/db"
	"example.com/gatherly/services/planning/internal/models"
)

// ParticipantRepository defines the interface for participant storage
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.EventParticipant) (*models.EventParticipant, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*models.EventParticipant, error)
	UpdateStatus(ctx context.Context, eventID, userID string, status models.ParticipantStatus, respondedAt time.Time) error
	ListAcceptedIDs(ctx context.Context, eventID string) ([]string, error)
	ListForEvent(ctx context.Context, eventID string) ([]models.EventParticipant, error)
}

// participantRepository implements ParticipantRepository
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

// Create creates a new participant record
func (r *participantRepository) Create(ctx context.Context, participant *models.EventParticipant) (*models.EventParticipant, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

// GetByEventAndUser gets the participant record for a user on an event
func (r *participantRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*models.EventParticipant, error) {
	var participant models.EventParticipant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participant).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// UpdateStatus updates a participant's invitation response
func (r *participantRepository) UpdateStatus(ctx context.Context, eventID, userID string, status models.ParticipantStatus, respondedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAcceptedIDs lists the user IDs of accepted participants, in invitation order
func (r *participantRepository) ListAcceptedIDs(ctx context.Context, eventID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.EventParticipant{}).
		Where("event_id = ? AND status = ?", eventID, models.ParticipantAccepted).
		Order("created_at").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListForEvent lists all participants of an event
func (r *participantRepository) ListForEvent(ctx context.Context, eventID string) ([]models.EventParticipant, error) {
	var participants []models.EventParticipant
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}
