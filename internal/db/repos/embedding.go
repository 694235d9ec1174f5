package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/facewatch/facewatch/internal/db"
	"github.com/facewatch/facewatch/internal/db/models"
)

// ErrDuplicateVector is returned when an identical descriptor already exists
// somewhere in the store.
var ErrDuplicateVector = errors.New("embedding already exists")

// EmbeddingRepository handles database operations for stored face descriptors
type EmbeddingRepository struct {
	db *gorm.DB
}

// NewEmbeddingRepository creates a new embedding repository
func NewEmbeddingRepository(db *gorm.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db: db}
}

// Create stores a new embedding.
// Returns ErrDuplicateVector if the same descriptor is already present.
func (r *EmbeddingRepository) Create(ctx context.Context, embedding *models.FaceEmbedding) error {
	if err := embedding.Vector.Validate(); err != nil {
		return err
	}
	if embedding.VectorHash == 0 {
		embedding.VectorHash = embedding.Vector.Hash()
	}

	_, err := r.GetByHash(ctx, embedding.VectorHash)
	if err == nil {
		return ErrDuplicateVector
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error checking embedding existence: %w", err)
	}

	// The hash column carries a unique constraint, so a concurrent insert
	// between the lookup and the create still surfaces as a duplicate.
	if err := r.db.WithContext(ctx).Create(embedding).Error; err != nil {
		if db.IsDuplicateKeyError(err) {
			return ErrDuplicateVector
		}
		return err
	}
	return nil
}

// GetByHash retrieves an embedding by its vector hash
// Returns a wrapped gorm.ErrRecordNotFound if no such descriptor is stored
func (r *EmbeddingRepository) GetByHash(ctx context.Context, hash int64) (*models.FaceEmbedding, error) {
	var embedding models.FaceEmbedding
	err := r.db.WithContext(ctx).Where("vector_hash = ?", hash).First(&embedding).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("embedding not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get embedding: %w", err)
	}
	return &embedding, nil
}

// ListByPerson retrieves all embeddings stored for one person
func (r *EmbeddingRepository) ListByPerson(ctx context.Context, personID uint) ([]models.FaceEmbedding, error) {
	var embeddings []models.FaceEmbedding
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("id").
		Find(&embeddings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list embeddings for person %d: %w", personID, err)
	}
	return embeddings, nil
}

// ListAll returns every stored embedding grouped by person ID. This feeds the
// in-memory snapshot the matcher works against.
func (r *EmbeddingRepository) ListAll(ctx context.Context) (map[uint][]models.Vector, error) {
	var embeddings []models.FaceEmbedding
	err := r.db.WithContext(ctx).Order("person_id, id").Find(&embeddings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list embeddings: %w", err)
	}

	corpus := make(map[uint][]models.Vector, len(embeddings))
	for _, e := range embeddings {
		corpus[e.PersonID] = append(corpus[e.PersonID], e.Vector)
	}
	return corpus, nil
}

// CountByPerson returns how many embeddings a person currently holds
func (r *EmbeddingRepository) CountByPerson(ctx context.Context, personID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FaceEmbedding{}).
		Where("person_id = ?", personID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count embeddings for person %d: %w", personID, err)
	}
	return count, nil
}

// Count returns the total number of stored embeddings
func (r *EmbeddingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FaceEmbedding{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}
	return count, nil
}

// Delete removes a single embedding by ID
func (r *EmbeddingRepository) Delete(ctx context.Context, embeddingID uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.FaceEmbedding{}, embeddingID).Error
}
