package repos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/facewatch/facewatch/internal/db/models"
)

type PersonRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestPersonRepository(t *testing.T) {
	suite.Run(t, new(PersonRepositoryTestSuite))
}

func (s *PersonRepositoryTestSuite) TestCreateAndGet() {
	person := s.createTestPerson()
	s.NotZero(person.ID)

	found, err := s.personRepo.GetByID(s.ctx, person.ID)
	s.NoError(err)
	s.Equal(person.ID, found.ID)
	s.Equal(1, found.AppearanceCount)
	s.Nil(found.LastSeenAt)

	// Non-existent person
	_, err = s.personRepo.GetByID(s.ctx, 9999)
	s.Error(err)
	s.Contains(err.Error(), "person not found")
}

func (s *PersonRepositoryTestSuite) TestList() {
	for i := 0; i < 3; i++ {
		s.createTestPerson()
	}

	people, err := s.personRepo.List(s.ctx, nil)
	s.NoError(err)
	s.Len(people, 3)

	// Pagination
	page, err := s.personRepo.List(s.ctx, &models.ListOptions{Limit: 2})
	s.NoError(err)
	s.Len(page, 2)

	rest, err := s.personRepo.List(s.ctx, &models.ListOptions{Limit: 2, Offset: 2})
	s.NoError(err)
	s.Len(rest, 1)

	count, err := s.personRepo.Count(s.ctx)
	s.NoError(err)
	s.EqualValues(3, count)
}

func (s *PersonRepositoryTestSuite) TestIncrementAppearance() {
	person := s.createTestPerson()

	before := time.Now().UTC().Add(-time.Second)
	s.NoError(s.personRepo.IncrementAppearance(s.ctx, person.ID))
	s.NoError(s.personRepo.IncrementAppearance(s.ctx, person.ID))

	found, err := s.personRepo.GetByID(s.ctx, person.ID)
	s.NoError(err)
	s.Equal(3, found.AppearanceCount)
	s.NotNil(found.LastSeenAt)
	s.True(found.LastSeenAt.After(before))

	// Unknown person surfaces not-found
	err = s.personRepo.IncrementAppearance(s.ctx, 9999)
	s.Error(err)
	s.Contains(err.Error(), "person not found")
}

func (s *PersonRepositoryTestSuite) TestSetLabel() {
	person := s.createTestPerson()

	s.NoError(s.personRepo.SetLabel(s.ctx, person.ID, "front desk regular"))

	found, err := s.personRepo.GetByID(s.ctx, person.ID)
	s.NoError(err)
	s.Equal("front desk regular", found.Label)

	err = s.personRepo.SetLabel(s.ctx, 9999, "nobody")
	s.Error(err)
}

func (s *PersonRepositoryTestSuite) TestDelete() {
	person := s.createTestPerson()
	s.createTestEmbedding(person.ID, 0.1)
	s.createTestEmbedding(person.ID, 0.2)
	s.createTestSighting(person.ID, models.SourceBot)

	s.NoError(s.personRepo.Delete(s.ctx, person.ID))

	_, err := s.personRepo.GetByID(s.ctx, person.ID)
	s.Error(err)

	embeddings, err := s.embeddingRepo.ListByPerson(s.ctx, person.ID)
	s.NoError(err)
	s.Empty(embeddings)

	sightings, err := s.sightingRepo.ListByPerson(s.ctx, person.ID, nil)
	s.NoError(err)
	s.Empty(sightings)

	// Hash slots are freed: the same vector can be stored again
	err = s.embeddingRepo.Create(s.ctx, &models.FaceEmbedding{
		PersonID: s.createTestPerson().ID,
		Vector:   testVector(0.1),
	})
	s.NoError(err)
}

func (s *PersonRepositoryTestSuite) TestDeleteAll() {
	p1 := s.createTestPerson()
	p2 := s.createTestPerson()
	s.createTestEmbedding(p1.ID, 0.1)
	s.createTestEmbedding(p2.ID, 0.2)
	s.createTestSighting(p1.ID, models.SourceAPI)

	s.NoError(s.personRepo.DeleteAll(s.ctx))

	count, err := s.personRepo.Count(s.ctx)
	s.NoError(err)
	s.Zero(count)

	embeddingCount, err := s.embeddingRepo.Count(s.ctx)
	s.NoError(err)
	s.Zero(embeddingCount)

	sightingCount, err := s.sightingRepo.Count(s.ctx)
	s.NoError(err)
	s.Zero(sightingCount)
}
