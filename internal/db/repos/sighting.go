package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/facewatch/facewatch/internal/db/models"
)

// SightingRepository handles database operations for recognition sightings
type SightingRepository struct {
	db *gorm.DB
}

// NewSightingRepository creates a new sighting repository
func NewSightingRepository(db *gorm.DB) *SightingRepository {
	return &SightingRepository{db: db}
}

// Create records a new sighting
func (r *SightingRepository) Create(ctx context.Context, sighting *models.Sighting) error {
	return r.db.WithContext(ctx).Create(sighting).Error
}

// ListByPerson returns sightings of one person, most recent first
func (r *SightingRepository) ListByPerson(ctx context.Context, personID uint, opts *models.ListOptions) ([]models.Sighting, error) {
	var sightings []models.Sighting
	query := applyListOptions(r.db.WithContext(ctx), opts).
		Where("person_id = ?", personID).
		Order("created_at DESC")

	err := query.Find(&sightings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sightings for person %d: %w", personID, err)
	}
	return sightings, nil
}

// CountByPerson returns how many sightings are recorded for one person
func (r *SightingRepository) CountByPerson(ctx context.Context, personID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Sighting{}).
		Where("person_id = ?", personID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sightings for person %d: %w", personID, err)
	}
	return count, nil
}

// Count returns the total number of recorded sightings
func (r *SightingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Sighting{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sightings: %w", err)
	}
	return count, nil
}
