package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/facewatch/facewatch/internal/cache"
	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/db/repos"
	"github.com/facewatch/facewatch/internal/face"
	"github.com/facewatch/facewatch/internal/facematch"
	"github.com/facewatch/facewatch/internal/logger"
	"github.com/facewatch/facewatch/internal/types"
)

// Recognition provides business logic for recognizing faces and maintaining
// the person records behind them.
type Recognition struct {
	encoder       face.Encoder
	personRepo    *repos.PersonRepository
	embeddingRepo *repos.EmbeddingRepository
	sightingRepo  *repos.SightingRepository
	cache         *cache.EmbeddingCache
	threshold     float64
}

// NewRecognitionService creates a new recognition service instance. A
// non-positive threshold falls back to models.DefaultMatchThreshold.
func NewRecognitionService(
	encoder face.Encoder,
	personRepo *repos.PersonRepository,
	embeddingRepo *repos.EmbeddingRepository,
	sightingRepo *repos.SightingRepository,
	embeddingCache *cache.EmbeddingCache,
	threshold float64,
) *Recognition {
	if threshold <= 0 {
		threshold = models.DefaultMatchThreshold
	}
	return &Recognition{
		encoder:       encoder,
		personRepo:    personRepo,
		embeddingRepo: embeddingRepo,
		sightingRepo:  sightingRepo,
		cache:         embeddingCache,
		threshold:     threshold,
	}
}

// RecognizeFile extracts the face descriptor from the image file and runs
// recognition on it. Encoder errors (face.ErrNoFace, face.ErrMultipleFaces)
// are passed through wrapped.
func (s *Recognition) RecognizeFile(ctx context.Context, imagePath string, source models.SightingSource, chatID int64) (*types.Recognition, error) {
	vector, err := s.encoder.Encode(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract face descriptor: %w", err)
	}
	return s.Recognize(ctx, vector, source, chatID)
}

// Recognize matches the descriptor against every known person and updates the
// database according to the outcome:
//   - no person within the threshold: a new person is registered
//   - exactly one person within the threshold: their appearance counter is
//     bumped, a sighting is recorded and the descriptor is kept
//   - several people within the threshold: nothing is written
func (s *Recognition) Recognize(ctx context.Context, vector models.Vector, source models.SightingSource, chatID int64) (*types.Recognition, error) {
	if err := vector.Validate(); err != nil {
		return nil, err
	}

	corpus, err := s.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := facematch.Match(corpus, vector, s.threshold)
	switch {
	case result.Empty():
		return s.registerNewPerson(ctx, vector, source, chatID)
	case result.Unique():
		return s.recordRecognition(ctx, result.Best(), vector, source, chatID)
	default:
		candidates := result.PersonIDs()
		logger.Infof("Ambiguous face: %d candidates within threshold %.2f: %v", len(candidates), s.threshold, candidates)
		return &types.Recognition{
			Status:       types.StatusAmbiguous,
			CandidateIDs: candidates,
		}, nil
	}
}

// registerNewPerson creates a person record for a face seen for the first
// time and stores its descriptor.
func (s *Recognition) registerNewPerson(ctx context.Context, vector models.Vector, source models.SightingSource, chatID int64) (*types.Recognition, error) {
	// The snapshot can lag behind the store, so an identical descriptor may
	// already belong to someone. Refuse instead of registering a duplicate
	// person.
	if _, err := s.embeddingRepo.GetByHash(ctx, vector.Hash()); err == nil {
		return nil, fmt.Errorf("face already registered: %w", repos.ErrDuplicateVector)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking descriptor existence: %w", err)
	}

	now := time.Now().UTC()
	person := &models.Person{
		AppearanceCount: 1,
		LastSeenAt:      &now,
	}
	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	person.Label = fmt.Sprintf("person_%d", person.ID)
	if err := s.personRepo.SetLabel(ctx, person.ID, person.Label); err != nil {
		return nil, fmt.Errorf("failed to label new person: %w", err)
	}

	if err := s.embeddingRepo.Create(ctx, &models.FaceEmbedding{
		PersonID: person.ID,
		Vector:   vector,
	}); err != nil {
		return nil, fmt.Errorf("failed to store descriptor: %w", err)
	}

	if err := s.sightingRepo.Create(ctx, &models.Sighting{
		PersonID: person.ID,
		Source:   source,
		ChatID:   chatID,
	}); err != nil {
		return nil, fmt.Errorf("failed to record sighting: %w", err)
	}

	s.cache.Invalidate()
	logger.Infof("Registered new person %d (%s)", person.ID, person.Label)

	return &types.Recognition{
		Status:          types.StatusNew,
		PersonID:        person.ID,
		Label:           person.Label,
		AppearanceCount: person.AppearanceCount,
	}, nil
}

// recordRecognition updates the matched person: appearance counter, sighting
// and descriptor set.
func (s *Recognition) recordRecognition(ctx context.Context, best facematch.Candidate, vector models.Vector, source models.SightingSource, chatID int64) (*types.Recognition, error) {
	if err := s.personRepo.IncrementAppearance(ctx, best.PersonID); err != nil {
		return nil, err
	}
	person, err := s.personRepo.GetByID(ctx, best.PersonID)
	if err != nil {
		return nil, err
	}

	if err := s.keepDescriptor(ctx, person.ID, vector); err != nil {
		return nil, err
	}

	if err := s.sightingRepo.Create(ctx, &models.Sighting{
		PersonID: person.ID,
		Source:   source,
		ChatID:   chatID,
		Distance: best.Distance,
	}); err != nil {
		return nil, fmt.Errorf("failed to record sighting: %w", err)
	}

	return &types.Recognition{
		Status:          types.StatusRecognized,
		PersonID:        person.ID,
		Label:           person.Label,
		AppearanceCount: person.AppearanceCount,
		Distance:        best.Distance,
	}, nil
}

// keepDescriptor adds the descriptor to the person's stored set. An identical
// descriptor is skipped silently. When the set is full the stored descriptor
// closest to the new one is evicted, which keeps the set spread out over
// different poses and lighting.
func (s *Recognition) keepDescriptor(ctx context.Context, personID uint, vector models.Vector) error {
	if _, err := s.embeddingRepo.GetByHash(ctx, vector.Hash()); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error checking descriptor existence: %w", err)
	}

	changed := false
	existing, err := s.embeddingRepo.ListByPerson(ctx, personID)
	if err != nil {
		return err
	}
	if len(existing) >= models.MaxEmbeddingsPerPerson {
		vectors := make([]models.Vector, len(existing))
		for i, e := range existing {
			vectors[i] = e.Vector
		}
		victim := facematch.NearestIndex(vectors, vector)
		if victim >= 0 {
			if err := s.embeddingRepo.Delete(ctx, existing[victim].ID); err != nil {
				return fmt.Errorf("failed to evict descriptor: %w", err)
			}
			changed = true
		}
	}

	err = s.embeddingRepo.Create(ctx, &models.FaceEmbedding{
		PersonID: personID,
		Vector:   vector,
	})
	switch {
	case err == nil:
		changed = true
	case errors.Is(err, repos.ErrDuplicateVector):
		// Lost a race with a concurrent recognition storing the same
		// descriptor, nothing left to do
	default:
		return fmt.Errorf("failed to store descriptor: %w", err)
	}

	if changed {
		s.cache.Invalidate()
	}
	return nil
}
