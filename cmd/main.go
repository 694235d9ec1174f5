package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"

	"github.com/facewatch/facewatch/config"
	"github.com/facewatch/facewatch/internal/cache"
	"github.com/facewatch/facewatch/internal/constants"
	"github.com/facewatch/facewatch/internal/db"
	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/db/repos"
	"github.com/facewatch/facewatch/internal/face"
	"github.com/facewatch/facewatch/internal/logger"
	"github.com/facewatch/facewatch/internal/media"
	"github.com/facewatch/facewatch/internal/services"
	"github.com/facewatch/facewatch/pkg/api/v1/handlers"
	"github.com/facewatch/facewatch/pkg/api/v1/routes"
)

func main() {
	logger.InitializeAndConfigure()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, relying on process environment")
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

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		// Uploads are capped by the handler; leave headroom for the multipart envelope
		BodyLimit: int(media.DefaultMaxImageBytes) + 1024*1024,
	})
	app.Use(logger.APILogger())

	routes.RegisterRoutes(app,
		handlers.NewPersonHandler(personService),
		handlers.NewRecognitionHandler(recognitionService))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down API server...")
		_ = app.Shutdown()
	}()

	addr := config.GetEnv(constants.EnvListenAddr, ":"+routes.DefaultPort)
	logger.Infof("API server listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
