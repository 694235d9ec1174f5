package test

import (
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/facewatch/facewatch/internal/cache"
	"github.com/facewatch/facewatch/internal/logger"
	"github.com/facewatch/facewatch/internal/services"
	"github.com/facewatch/facewatch/pkg/api/v1/client"
	"github.com/facewatch/facewatch/pkg/api/v1/handlers"
	"github.com/facewatch/facewatch/pkg/api/v1/routes"
)

// testClientTimeout is the timeout for test API client requests
const testClientTimeout = 5 * time.Second

// testCacheTTL keeps the embedding snapshot effectively always stale so every
// recognition in a test sees writes made directly through the repositories
const testCacheTTL = time.Nanosecond

// SetupServer stands up the HTTP API on top of the suite's repositories and
// points an API client at it. The server is torn down during Cleanup.
func SetupServer(s *Suite) {
	s.Cache = cache.New(s.EmbeddingRepo.ListAll, testCacheTTL)
	recognitionService := services.NewRecognitionService(
		s.Encoder, s.PersonRepo, s.EmbeddingRepo, s.SightingRepo, s.Cache, 0)
	personService := services.NewPersonService(
		s.PersonRepo, s.EmbeddingRepo, s.SightingRepo, s.Cache)

	s.App = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	s.App.Use(logger.APILogger())
	routes.RegisterRoutes(s.App,
		handlers.NewPersonHandler(personService),
		handlers.NewRecognitionHandler(recognitionService))

	// adaptor bridges the fiber app onto net/http so httptest can serve it
	s.Server = httptest.NewServer(adaptor.FiberApp(s.App))
	s.onCleanup(s.Server.Close)

	apiClient, err := client.NewClient(&client.Options{
		BaseURL: s.Server.URL,
		Timeout: testClientTimeout,
	})
	s.Require().NoError(err, "Failed to create API client")
	s.APIClient = apiClient
}
