// Command migrate applies the SQL schema migrations.
//
// Usage:
//
//	migrate              apply all pending migrations
//	migrate -down        roll back all migrations
//	migrate -steps 1     apply one migration
//	migrate -steps -1    roll back one migration
//	migrate -force 1     pin the schema version to 1
package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/facewatch/facewatch/config"
	"github.com/facewatch/facewatch/internal/constants"
	"github.com/facewatch/facewatch/internal/db"
	"github.com/facewatch/facewatch/internal/db/migrations"
	"github.com/facewatch/facewatch/internal/logger"
)

func main() {
	logger.InitializeAndConfigure()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, relying on process environment")
	}

	var (
		dbURL     = flag.String("db", "", "Database URL (overrides the DB_* environment variables)")
		sourceURL = flag.String("path", migrations.DefaultSourceURL, "Path to migration files")
		down      = flag.Bool("down", false, "Roll back all migrations")
		steps     = flag.Int("steps", 0, "Number of migrations to apply (negative rolls back)")
		force     = flag.Int("force", -1, "Pin the schema version without migrating")
		retries   = flag.Int("retries", migrations.DefaultConnectAttempts, "Number of connection attempts")
		backoff   = flag.Duration("retry-wait", migrations.DefaultConnectBackoff, "Wait time between connection attempts")
	)
	flag.Parse()

	url := *dbURL
	if url == "" {
		url = databaseURL()
	}

	runner, err := migrations.New(migrations.Config{
		SourceURL:       *sourceURL,
		DatabaseURL:     url,
		ConnectAttempts: *retries,
		ConnectBackoff:  *backoff,
	})
	if err != nil {
		logger.Fatalf("Failed to prepare migrations: %v", err)
	}

	switch {
	case *force >= 0:
		if err := runner.Force(*force); err != nil {
			logger.Fatalf("Failed to force version %d: %v", *force, err)
		}
		logger.Infof("Schema version pinned to %d", *force)
		return
	case *steps != 0:
		if err := runner.Steps(*steps); err != nil {
			logger.Fatalf("Failed to apply %d steps: %v", *steps, err)
		}
		logger.Infof("Applied %d migration steps", *steps)
		return
	case *down:
		if err := runner.Down(); err != nil {
			logger.Fatalf("Migration rollback failed: %v", err)
		}
	default:
		if err := runner.Up(); err != nil {
			logger.Fatalf("Migration failed: %v", err)
		}
	}

	version, dirty, err := runner.Version()
	if err != nil {
		logger.Warnf("Could not read final schema version: %v", err)
		return
	}
	logger.Infof("Current migration version: %d (dirty: %v)", version, dirty)
}

// databaseURL builds a postgres URL from the DB_* environment variables,
// falling back to the same defaults the server uses.
func databaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.GetEnv(constants.EnvDBUser, db.DefaultUser),
		config.GetEnv(constants.EnvDBPassword, db.DefaultPassword),
		config.GetEnv(constants.EnvDBHost, db.DefaultHost),
		config.GetEnv(constants.EnvDBPort, strconv.Itoa(db.DefaultPort)),
		config.GetEnv(constants.EnvDBName, db.DefaultDBName),
		config.GetEnv(constants.EnvDBSSLMode, "disable"),
	)
}
