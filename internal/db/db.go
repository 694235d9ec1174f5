// Package db opens the shared PostgreSQL connection and keeps the schema
// in step with the recognizer models.
package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/logger"
)

// Connection defaults, used for any Options field left zero.
const (
	// DefaultHost is the default database host
	DefaultHost = "localhost"
	// DefaultPort is the default database port
	DefaultPort = 5432
	// DefaultUser is the default database user
	DefaultUser = "postgres"
	// DefaultPassword is the default database password
	DefaultPassword = "postgres"
	// DefaultDBName is the default database name
	DefaultDBName = "facewatch"
)

// SlowQueryThreshold is how long a query may run before GORM reports it as slow.
const SlowQueryThreshold = 500 * time.Millisecond

// Options represents database connection configuration options
type Options struct {
	Host       string
	User       string
	Password   string
	DBName     string
	Port       int
	SSLEnabled *bool
	LogLevel   gormlogger.LogLevel
}

// dsn renders the options as a libpq keyword/value connection string.
// A nil SSLEnabled means sslmode=disable.
func (o Options) dsn() string {
	sslMode := "disable"
	if o.SSLEnabled != nil && *o.SSLEnabled {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		o.Host, o.Port, o.User, o.Password, o.DBName, sslMode)
}

func (o Options) withDefaults() Options {
	if o.Host == "" {
		o.Host = DefaultHost
	}
	if o.Port == 0 {
		o.Port = DefaultPort
	}
	if o.User == "" {
		o.User = DefaultUser
	}
	if o.Password == "" {
		o.Password = DefaultPassword
	}
	if o.DBName == "" {
		o.DBName = DefaultDBName
	}
	if o.LogLevel == 0 {
		o.LogLevel = gormlogger.Warn
	}
	return o
}

// New opens a database connection with the given options and auto-migrates
// the people, face_embeddings and sightings tables.
func New(opts Options) (*gorm.DB, error) {
	opts = opts.withDefaults()

	db, err := gorm.Open(postgres.Open(opts.dsn()), &gorm.Config{
		Logger: newGormLogger(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Person{},
		&models.FaceEmbedding{},
		&models.Sighting{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// IsDuplicateKeyError checks if the given error is a PostgreSQL duplicate key error
func IsDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return errors.Is(postgres.Dialector{}.Translate(err), gorm.ErrDuplicatedKey)
}

// newGormLogger routes GORM log output through the process logger. Record
// not found errors are muted; the repositories treat those as a regular
// outcome, not a fault.
func newGormLogger(level gormlogger.LogLevel) gormlogger.Interface {
	return gormlogger.New(logWriter{}, gormlogger.Config{
		LogLevel:                  level,
		SlowThreshold:             SlowQueryThreshold,
		IgnoreRecordNotFoundError: true,
	})
}

// logWriter adapts the package logger to GORM's printf-style writer.
// Our processes run GORM at warn level, so everything that reaches the
// writer is a slow query or an error.
type logWriter struct{}

func (logWriter) Printf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
