package test

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/db/repos"
)

// newSQLiteDB opens a file-backed SQLite database in a fresh temp dir and
// migrates the recognizer schema into it. File-backed rather than :memory:
// so every connection in GORM's pool sees the same data.
func newSQLiteDB() (*gorm.DB, string, error) {
	dir, err := os.MkdirTemp("", "facewatch_test")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	database, err := gorm.Open(sqlite.Open(filepath.Join(dir, "facewatch.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	err = database.AutoMigrate(
		&models.Person{},
		&models.FaceEmbedding{},
		&models.Sighting{},
	)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, "", fmt.Errorf("failed to migrate schema: %w", err)
	}

	return database, dir, nil
}

// SetupTestDB attaches a database to the suite and builds the repositories
// on top of it. Passing nil creates a fresh SQLite database that is removed
// during Cleanup.
func SetupTestDB(s *Suite, database *gorm.DB) {
	if database == nil {
		fresh, dir, err := newSQLiteDB()
		s.Require().NoError(err, "Failed to create test database")
		database = fresh

		s.onCleanup(func() {
			if sqlDB, err := database.DB(); err == nil && sqlDB != nil {
				_ = sqlDB.Close()
			}
			_ = os.RemoveAll(dir)
		})
	}

	s.DB = database
	s.PersonRepo = repos.NewPersonRepository(database)
	s.EmbeddingRepo = repos.NewEmbeddingRepository(database)
	s.SightingRepo = repos.NewSightingRepository(database)
}
