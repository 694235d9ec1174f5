package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"

	"github.com/facewatch/facewatch/config"
	"github.com/facewatch/facewatch/internal/bot"
	"github.com/facewatch/facewatch/internal/cache"
	"github.com/facewatch/facewatch/internal/constants"
	"github.com/facewatch/facewatch/internal/db"
	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/db/repos"
	"github.com/facewatch/facewatch/internal/face"
	"github.com/facewatch/facewatch/internal/logger"
	"github.com/facewatch/facewatch/internal/media"
	"github.com/facewatch/facewatch/internal/services"
)

func main() {
	logger.InitializeAndConfigure()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, relying on process environment")
	}

	token := config.GetEnv(constants.EnvTelegramBotToken, "")
	if token == "" {
		logger.Fatalf("%s is required", constants.EnvTelegramBotToken)
	}

	sslEnabled := config.GetEnv(constants.EnvDBSSLMode, "disable") != "disable"
	database, err := db.New(db.Options{
		Host:       config.GetEnv(constants.EnvDBHost, db.DefaultHost),
		Port:       config.GetEnvInt(constants.EnvDBPort, db.DefaultPort),
		User:       config.GetEnv(constants.EnvDBUser, db.DefaultUser),
		Password:   config.GetEnv(constants.EnvDBPassword, db.DefaultPassword),
		DBName:     config.GetEnv(constants.EnvDBName, db.DefaultDBName),
		SSLEnabled: &sslEnabled,
		LogLevel:   gormlogger.Warn,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	encoder, err := face.NewDlibEncoder(config.GetEnv(constants.EnvFaceModelsDir, face.DefaultModelsDir))
	if err != nil {
		logger.Fatalf("Failed to initialize face encoder: %v", err)
	}
	defer encoder.Close()

	downloader, err := media.NewDownloader(
		config.GetEnv(constants.EnvDownloadDir, ""), media.DefaultMaxImageBytes)
	if err != nil {
		logger.Fatalf("Failed to initialize downloader: %v", err)
	}

	// Create repositories
	personRepo := repos.NewPersonRepository(database)
	embeddingRepo := repos.NewEmbeddingRepository(database)
	sightingRepo := repos.NewSightingRepository(database)

	embeddingCache := cache.New(embeddingRepo.ListAll,
		config.GetEnvDuration(constants.EnvCacheTTL, cache.DefaultTTL))

	// Create services
	recognitionService := services.NewRecognitionService(
		encoder, personRepo, embeddingRepo, sightingRepo, embeddingCache,
		config.GetEnvFloat(constants.EnvMatchThreshold, models.DefaultMatchThreshold))
	personService := services.NewPersonService(personRepo, embeddingRepo, sightingRepo, embeddingCache)

	b, err := bot.New(token, downloader, recognitionService, personService)
	if err != nil {
		logger.Fatalf("Failed to start bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b.Run(ctx)
}
