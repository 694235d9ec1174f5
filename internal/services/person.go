// Package services provides business logic implementation for the API
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/facewatch/facewatch/internal/cache"
	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/db/repos"
	"github.com/facewatch/facewatch/internal/types"
)

// Person provides business logic for person operations
type Person struct {
	repo          *repos.PersonRepository
	embeddingRepo *repos.EmbeddingRepository
	sightingRepo  *repos.SightingRepository
	cache         *cache.EmbeddingCache
}

// Person service errors
var (
	ErrPersonNotFound = errors.New("person not found")
)

// notFound joins ErrPersonNotFound onto record-not-found lookup errors so
// callers can match the service sentinel instead of the persistence one.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Join(ErrPersonNotFound, err)
	}
	return err
}

// NewPersonService creates a new person service instance
func NewPersonService(
	repo *repos.PersonRepository,
	embeddingRepo *repos.EmbeddingRepository,
	sightingRepo *repos.SightingRepository,
	embeddingCache *cache.EmbeddingCache,
) *Person {
	return &Person{
		repo:          repo,
		embeddingRepo: embeddingRepo,
		sightingRepo:  sightingRepo,
		cache:         embeddingCache,
	}
}

// List retrieves a paginated list of people
func (s *Person) List(ctx context.Context, opts *models.ListOptions) ([]models.Person, error) {
	return s.repo.List(ctx, opts)
}

// Count returns the number of known people
func (s *Person) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Get retrieves a person by ID
func (s *Person) Get(ctx context.Context, id uint) (*models.Person, error) {
	person, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return person, nil
}

// Rename updates the label of a person
func (s *Person) Rename(ctx context.Context, id uint, label string) (*models.Person, error) {
	if err := s.repo.SetLabel(ctx, id, label); err != nil {
		return nil, notFound(err)
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a person together with their embeddings and sightings.
// The person must exist.
func (s *Person) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFound(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// DeleteAll wipes every person, embedding and sighting
func (s *Person) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// Sightings retrieves a paginated list of sightings for a person, newest
// first. The person must exist.
func (s *Person) Sightings(ctx context.Context, personID uint, opts *models.ListOptions) ([]models.Sighting, int64, error) {
	if _, err := s.repo.GetByID(ctx, personID); err != nil {
		return nil, 0, notFound(err)
	}
	sightings, err := s.sightingRepo.ListByPerson(ctx, personID, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.sightingRepo.CountByPerson(ctx, personID)
	if err != nil {
		return nil, 0, err
	}
	return sightings, total, nil
}

// Stats returns database-wide counters
func (s *Person) Stats(ctx context.Context) (*types.StatsResponse, error) {
	people, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count people: %w", err)
	}
	embeddings, err := s.embeddingRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count embeddings: %w", err)
	}
	sightings, err := s.sightingRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sightings: %w", err)
	}
	return &types.StatsResponse{
		People:     people,
		Embeddings: embeddings,
		Sightings:  sightings,
	}, nil
}
