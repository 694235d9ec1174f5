package repos

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/facewatch/facewatch/internal/db/models"
)

type EmbeddingRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestEmbeddingRepository(t *testing.T) {
	suite.Run(t, new(EmbeddingRepositoryTestSuite))
}

func (s *EmbeddingRepositoryTestSuite) TestCreate() {
	person := s.createTestPerson()

	embedding := s.createTestEmbedding(person.ID, 0.1)
	s.NotZero(embedding.ID)
	s.NotZero(embedding.VectorHash)
	s.Equal(testVector(0.1).Hash(), embedding.VectorHash)

	// Identical descriptor is rejected, even for another person
	other := s.createTestPerson()
	err := s.embeddingRepo.Create(s.ctx, &models.FaceEmbedding{
		PersonID: other.ID,
		Vector:   testVector(0.1),
	})
	s.ErrorIs(err, ErrDuplicateVector)

	// Wrong dimension is rejected before touching the database
	err = s.embeddingRepo.Create(s.ctx, &models.FaceEmbedding{
		PersonID: person.ID,
		Vector:   models.Vector{1, 2, 3},
	})
	s.Error(err)
	s.Contains(err.Error(), "dimension")
}

func (s *EmbeddingRepositoryTestSuite) TestGetByHash() {
	person := s.createTestPerson()
	embedding := s.createTestEmbedding(person.ID, 0.3)

	found, err := s.embeddingRepo.GetByHash(s.ctx, embedding.VectorHash)
	s.NoError(err)
	s.Equal(embedding.ID, found.ID)
	s.Equal(embedding.Vector, found.Vector)

	_, err = s.embeddingRepo.GetByHash(s.ctx, 12345)
	s.Error(err)
	s.Contains(err.Error(), "embedding not found")
}

func (s *EmbeddingRepositoryTestSuite) TestListByPerson() {
	p1 := s.createTestPerson()
	p2 := s.createTestPerson()
	s.createTestEmbedding(p1.ID, 0.1)
	s.createTestEmbedding(p1.ID, 0.2)
	s.createTestEmbedding(p2.ID, 0.3)

	embeddings, err := s.embeddingRepo.ListByPerson(s.ctx, p1.ID)
	s.NoError(err)
	s.Len(embeddings, 2)

	count, err := s.embeddingRepo.CountByPerson(s.ctx, p1.ID)
	s.NoError(err)
	s.EqualValues(2, count)

	total, err := s.embeddingRepo.Count(s.ctx)
	s.NoError(err)
	s.EqualValues(3, total)
}

func (s *EmbeddingRepositoryTestSuite) TestListAll() {
	p1 := s.createTestPerson()
	p2 := s.createTestPerson()
	s.createTestEmbedding(p1.ID, 0.1)
	s.createTestEmbedding(p1.ID, 0.2)
	s.createTestEmbedding(p2.ID, 0.3)

	corpus, err := s.embeddingRepo.ListAll(s.ctx)
	s.NoError(err)
	s.Len(corpus, 2)
	s.Len(corpus[p1.ID], 2)
	s.Len(corpus[p2.ID], 1)
	s.Equal(testVector(0.3), corpus[p2.ID][0])
}

func (s *EmbeddingRepositoryTestSuite) TestDelete() {
	person := s.createTestPerson()
	embedding := s.createTestEmbedding(person.ID, 0.4)

	s.NoError(s.embeddingRepo.Delete(s.ctx, embedding.ID))

	embeddings, err := s.embeddingRepo.ListByPerson(s.ctx, person.ID)
	s.NoError(err)
	s.Empty(embeddings)

	// The hash slot is freed by the hard delete
	err = s.embeddingRepo.Create(s.ctx, &models.FaceEmbedding{
		PersonID: person.ID,
		Vector:   testVector(0.4),
	})
	s.NoError(err)
}
