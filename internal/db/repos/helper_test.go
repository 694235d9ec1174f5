package repos

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/facewatch/facewatch/internal/db/models"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db            *gorm.DB
	ctx           context.Context
	personRepo    *PersonRepository
	embeddingRepo *EmbeddingRepository
	sightingRepo  *SightingRepository
}

func (s *DBRepositoryTestSuite) SetupTest() {
	// Fresh in-memory database per test; the unique name keeps tests from
	// sharing state through sqlite's shared cache.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	// Run migrations
	err = db.AutoMigrate(&models.Person{}, &models.FaceEmbedding{}, &models.Sighting{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.personRepo = NewPersonRepository(s.db)
	s.embeddingRepo = NewEmbeddingRepository(s.db)
	s.sightingRepo = NewSightingRepository(s.db)
	s.ctx = context.Background()
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

// testVector builds a valid descriptor whose components are derived from seed,
// so different seeds produce different vectors (and different hashes).
func testVector(seed float64) models.Vector {
	v := make(models.Vector, models.EmbeddingDim)
	for i := range v {
		v[i] = seed + float64(i)/1000
	}
	return v
}

func (s *DBRepositoryTestSuite) createTestPerson() *models.Person {
	person := &models.Person{
		AppearanceCount: 1,
	}
	err := s.personRepo.Create(s.ctx, person)
	s.Require().NoError(err)
	return person
}

func (s *DBRepositoryTestSuite) createTestEmbedding(personID uint, seed float64) *models.FaceEmbedding {
	embedding := &models.FaceEmbedding{
		PersonID: personID,
		Vector:   testVector(seed),
	}
	err := s.embeddingRepo.Create(s.ctx, embedding)
	s.Require().NoError(err)
	return embedding
}

func (s *DBRepositoryTestSuite) createTestSighting(personID uint, source models.SightingSource) *models.Sighting {
	sighting := &models.Sighting{
		PersonID: personID,
		Source:   source,
		ChatID:   42,
		Distance: 0.31,
	}
	err := s.sightingRepo.Create(s.ctx, sighting)
	s.Require().NoError(err)
	return sighting
}

// TestDBRepository runs the base test suite to verify setup does not panic
func TestDBRepository(t *testing.T) {
	suite.Run(t, new(DBRepositoryTestSuite))
}
