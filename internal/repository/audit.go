package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/gatherly/services/planning/internal/models"
)

// AuditRepository defines the interface for the append-only transition log
type AuditRepository interface {
	Append(ctx context.Context, entry *models.EventAuditLog) error
	ListForEvent(ctx context.Context, eventID string) ([]models.EventAuditLog, error)
}

// auditRepository implements AuditRepository
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Append appends a transition entry
func (r *auditRepository) Append(ctx context.Context, entry *models.EventAuditLog) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

// ListForEvent lists an event's transition history in chronological order
func (r *auditRepository) ListForEvent(ctx context.Context, eventID string) ([]models.EventAuditLog, error) {
	var entries []models.EventAuditLog
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
