package repository

import (
	"context"

	"gorm.io/gorm"

	"example.com/gatherly/services/planning/internal/db"
	"example.com/gatherly/services/planning/internal/models"
)

// VenueRepository defines the interface for venue storage
type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	GetByID(ctx context.Context, id string) (*models.Venue, error)
	// FindCandidates returns verified venues, optionally filtered to the
	// given categories, ordered by rating
	FindCandidates(ctx context.Context, categories []string, limit int) ([]models.Venue, error)
	// FindTopRated returns the highest-rated verified venues regardless of category
	FindTopRated(ctx context.Context, limit int) ([]models.Venue, error)
	Delete(ctx context.Context, id string) error
}

// venueRepository implements VenueRepository
type venueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

// Create creates a new venue
func (r *venueRepository) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := r.db.WithContext(ctx).Create(venue).Error; err != nil {
		return nil, err
	}
	return venue, nil
}

// GetByID gets a venue by ID
func (r *venueRepository) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&venue).Error
	if err != nil {
		if db.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &venue, nil
}

// FindCandidates returns verified venues matching the optional category filter
func (r *venueRepository) FindCandidates(ctx context.Context, categories []string, limit int) ([]models.Venue, error) {
	query := r.db.WithContext(ctx).
		Where("verified = ?", true).
		Order("rating DESC").
		Limit(limit)

	if len(categories) > 0 {
		query = query.Where("category IN ?", categories)
	}

	var venues []models.Venue
	if err := query.Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

// FindTopRated returns the highest-rated verified venues
func (r *venueRepository) FindTopRated(ctx context.Context, limit int) ([]models.Venue, error) {
	var venues []models.Venue
	err := r.db.WithContext(ctx).
		Where("verified = ?", true).
		Order("rating DESC").
		Limit(limit).
		Find(&venues).Error
	if err != nil {
		return nil, err
	}
	return venues, nil
}

// Delete soft-deletes a venue
func (r *venueRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("uuid = ?", id).Delete(&models.Venue{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
