// Package migrations drives golang-migrate over the SQL files that define
// the people, face_embeddings and sightings tables.
package migrations

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/facewatch/facewatch/internal/logger"
)

// DefaultSourceURL points at the SQL files relative to the repo root.
const DefaultSourceURL = "file://migrations"

// Connection retry defaults.
const (
	DefaultConnectAttempts = 5
	DefaultConnectBackoff  = 3 * time.Second
)

// Config tells a Runner where the SQL files and the database live.
type Config struct {
	SourceURL       string
	DatabaseURL     string
	ConnectAttempts int
	ConnectBackoff  time.Duration
}

func (c Config) withDefaults() Config {
	if c.SourceURL == "" {
		c.SourceURL = DefaultSourceURL
	}
	if c.ConnectAttempts == 0 {
		c.ConnectAttempts = DefaultConnectAttempts
	}
	if c.ConnectBackoff == 0 {
		c.ConnectBackoff = DefaultConnectBackoff
	}
	return c
}

// Runner applies and rolls back schema migrations.
type Runner struct {
	m *migrate.Migrate
}

// New connects to the database, retrying while it comes up.
func New(cfg Config) (*Runner, error) {
	cfg = cfg.withDefaults()

	var (
		m   *migrate.Migrate
		err error
	)
	for attempt := 1; attempt <= cfg.ConnectAttempts; attempt++ {
		m, err = migrate.New(cfg.SourceURL, cfg.DatabaseURL)
		if err == nil {
			return &Runner{m: m}, nil
		}
		logger.Warnf("Failed to connect to database, attempt %d/%d: %v", attempt, cfg.ConnectAttempts, err)
		time.Sleep(cfg.ConnectBackoff)
	}
	return nil, fmt.Errorf("failed to create migration instance after %d attempts: %w", cfg.ConnectAttempts, err)
}

// Up applies every pending migration.
func (r *Runner) Up() error {
	if err := r.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Migrations completed successfully")
	return nil
}

// Down rolls every migration back.
func (r *Runner) Down() error {
	if err := r.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migrations: %w", err)
	}
	logger.Info("Rollback completed successfully")
	return nil
}

// Steps applies n migrations up, or -n down.
func (r *Runner) Steps(n int) error {
	if err := r.m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run %d migrations: %w", n, err)
	}
	return nil
}

// Version reports the current schema version and whether it is dirty.
func (r *Runner) Version() (uint, bool, error) {
	return r.m.Version()
}

// Force pins the schema version without running any migration.
func (r *Runner) Force(version int) error {
	return r.m.Force(version)
}
