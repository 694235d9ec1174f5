package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/facewatch/facewatch/internal/db/models"
)

// PersonRepository handles database operations for tracked people
type PersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create creates a new person in the database
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

// GetByID retrieves a person by their ID
// Returns a wrapped gorm.ErrRecordNotFound if the person doesn't exist
func (r *PersonRepository) GetByID(ctx context.Context, personID uint) (*models.Person, error) {
	var person models.Person
	err := r.db.WithContext(ctx).First(&person, personID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("person not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return &person, nil
}

// List returns people based on the provided options
func (r *PersonRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Person, error) {
	var people []models.Person
	query := applyListOptions(r.db.WithContext(ctx), opts)

	err := query.Order("id").Find(&people).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// Count returns the number of tracked people
func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Person{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count people: %w", err)
	}
	return count, nil
}

// IncrementAppearance bumps the appearance counter by one and stamps the
// last sighting time. The update happens in the database so concurrent
// recognitions never lose a count.
func (r *PersonRepository) IncrementAppearance(ctx context.Context, personID uint) error {
	result := r.db.WithContext(ctx).Model(&models.Person{}).
		Where("id = ?", personID).
		Updates(map[string]interface{}{
			models.PersonAppearanceCountField: gorm.Expr(models.PersonAppearanceCountField+" + ?", 1),
			models.PersonLastSeenAtField:      time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to increment appearance for person %d: %w", personID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("person not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// SetLabel assigns an operator-provided label to a person
func (r *PersonRepository) SetLabel(ctx context.Context, personID uint, label string) error {
	result := r.db.WithContext(ctx).Model(&models.Person{}).
		Where("id = ?", personID).
		Update(models.PersonLabelField, label)
	if result.Error != nil {
		return fmt.Errorf("failed to set label for person %d: %w", personID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("person not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a person together with their embeddings and sightings.
// Embeddings are hard-deleted so the unique vector_hash slots are freed for
// future descriptors.
func (r *PersonRepository) Delete(ctx context.Context, personID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("person_id = ?", personID).Delete(&models.FaceEmbedding{}).Error; err != nil {
			return fmt.Errorf("failed to delete embeddings: %w", err)
		}
		if err := tx.Unscoped().Where("person_id = ?", personID).Delete(&models.Sighting{}).Error; err != nil {
			return fmt.Errorf("failed to delete sightings: %w", err)
		}
		return tx.Delete(&models.Person{}, personID).Error
	})
}

// DeleteAll wipes every person, embedding and sighting. Backs the bot's
// "clear data" menu action.
func (r *PersonRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Sighting{}).Error; err != nil {
			return fmt.Errorf("failed to clear sightings: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.FaceEmbedding{}).Error; err != nil {
			return fmt.Errorf("failed to clear embeddings: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Person{}).Error; err != nil {
			return fmt.Errorf("failed to clear people: %w", err)
		}
		return nil
	})
}

// applyListOptions applies pagination and soft delete options to the given query
func applyListOptions(query *gorm.DB, opts *models.ListOptions) *gorm.DB {
	if opts == nil {
		return query.Limit(models.DefaultLimit)
	}

	if opts.IncludeDeleted {
		query = query.Unscoped()
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	query = query.Limit(limit)

	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	return query
}
