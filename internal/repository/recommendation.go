package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/gatherly/services/planning/internal/models"
)

// RecommendationRepository defines the interface for recommendation storage
type RecommendationRepository interface {
	Create(ctx context.Context, option *models.EventPlaceOption) (*models.EventPlaceOption, error)
	CountForEvent(ctx context.Context, eventID string) (int, error)
	ListForEvent(ctx context.Context, eventID string) ([]models.EventPlaceOption, error)
}

// recommendationRepository implements RecommendationRepository
type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

// Create creates a new recommendation record
func (r *recommendationRepository) Create(ctx context.Context, option *models.EventPlaceOption) (*models.EventPlaceOption, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(option).Error; err != nil {
		return nil, err
	}
	return option, nil
}

// CountForEvent counts the recommendations generated for an event
func (r *recommendationRepository) CountForEvent(ctx context.Context, eventID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EventPlaceOption{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ListForEvent lists an event's recommendations, best score first
func (r *recommendationRepository) ListForEvent(ctx context.Context, eventID string) ([]models.EventPlaceOption, error) {
	var options []models.EventPlaceOption
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Where("event_id = ?", eventID).
		Order("ai_score DESC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}
