package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/gatherly/services/planning/internal/db"
	"example.com/gatherly/services/planning/internal/models"
)

// PreferenceRepository defines the interface for preference profile storage
type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserPreference, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]models.UserPreference, error)
	Upsert(ctx context.Context, preference *models.UserPreference) (*models.UserPreference, error)
}

// preferenceRepository implements PreferenceRepository
type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

// GetByUserID gets a user's preference profile
func (r *preferenceRepository) GetByUserID(ctx context.Context, userID string) (*models.UserPreference, error) {
	var preference models.UserPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&preference).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &preference, nil
}

// GetByUserIDs gets preference profiles for a set of users. Users without a
// profile are simply absent from the result.
func (r *preferenceRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]models.UserPreference, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var preferences []models.UserPreference
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&preferences).Error
	if err != nil {
		return nil, err
	}
	return preferences, nil
}

// Upsert creates or replaces a user's preference profile
func (r *preferenceRepository) Upsert(ctx context.Context, preference *models.UserPreference) (*models.UserPreference, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"cuisine_preferences",
				"budget_per_person",
				"max_distance_km",
				"dietary_restrictions",
				"latitude",
				"longitude",
				"updated_at",
			}),
		}).
		Create(preference).Error
	if err != nil {
		return nil, err
	}
	return preference, nil
}
