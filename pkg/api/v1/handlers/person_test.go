package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/facewatch/facewatch/internal/cache"
	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/db/repos"
	"github.com/facewatch/facewatch/internal/services"
	"github.com/facewatch/facewatch/internal/types"
)

// stubEncoder returns a fixed descriptor or error, standing in for the dlib
// encoder in handler tests
type stubEncoder struct {
	vector models.Vector
	err    error
}

func (e *stubEncoder) Encode(_ context.Context, _ string) (models.Vector, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.vector, nil
}

func (e *stubEncoder) Dimensions() int { return models.EmbeddingDim }

func (e *stubEncoder) Close() {}

// testVector returns a valid descriptor whose distance to testVector(b) is
// |seed-b|
func testVector(seed float64) models.Vector {
	v := make(models.Vector, models.EmbeddingDim)
	v[0] = seed
	return v
}

// handlerTestEnv wires an in-memory database through the services into fresh
// handlers for each test
type handlerTestEnv struct {
	db                 *gorm.DB
	personRepo         *repos.PersonRepository
	embeddingRepo      *repos.EmbeddingRepository
	sightingRepo       *repos.SightingRepository
	cache              *cache.EmbeddingCache
	encoder            *stubEncoder
	recognitionService *services.Recognition
	personService      *services.Person
}

func newHandlerTestEnv(s *suite.Suite) *handlerTestEnv {
	// Unique DSN per test so shared-cache connections do not leak state
	// between tests
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err, "failed to connect database")

	err = db.AutoMigrate(&models.Person{}, &models.FaceEmbedding{}, &models.Sighting{})
	s.Require().NoError(err, "failed to migrate database schema")

	personRepo := repos.NewPersonRepository(db)
	embeddingRepo := repos.NewEmbeddingRepository(db)
	sightingRepo := repos.NewSightingRepository(db)
	embeddingCache := cache.New(embeddingRepo.ListAll, time.Minute)
	encoder := &stubEncoder{}

	return &handlerTestEnv{
		db:                 db,
		personRepo:         personRepo,
		embeddingRepo:      embeddingRepo,
		sightingRepo:       sightingRepo,
		cache:              embeddingCache,
		encoder:            encoder,
		recognitionService: services.NewRecognitionService(encoder, personRepo, embeddingRepo, sightingRepo, embeddingCache, 0),
		personService:      services.NewPersonService(personRepo, embeddingRepo, sightingRepo, embeddingCache),
	}
}

func (env *handlerTestEnv) close() {
	sqlDB, err := env.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// recognize runs one recognition for the given descriptor through the stub
// encoder
func (env *handlerTestEnv) recognize(s *suite.Suite, seed float64) *types.Recognition {
	env.encoder.vector = testVector(seed)
	recognition, err := env.recognitionService.RecognizeFile(context.Background(), "probe.jpg", models.SourceAPI, 0)
	s.Require().NoError(err)
	return recognition
}

type PersonHandlerTestSuite struct {
	suite.Suite
	env *handlerTestEnv
	app *fiber.App
}

func (s *PersonHandlerTestSuite) SetupTest() {
	s.env = newHandlerTestEnv(&s.Suite)

	handler := NewPersonHandler(s.env.personService)

	app := fiber.New()
	app.Get("/people", handler.ListPeople)
	app.Get("/people/:id", handler.GetPerson)
	app.Get("/people/:id/sightings", handler.GetPersonSightings)
	app.Patch("/people/:id/label", handler.UpdatePersonLabel)
	app.Delete("/people", handler.ClearPeople)
	app.Delete("/people/:id", handler.DeletePerson)
	app.Get("/stats", handler.GetStats)
	s.app = app
}

func (s *PersonHandlerTestSuite) TearDownTest() {
	s.env.close()
}

func TestPersonHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PersonHandlerTestSuite))
}

func (s *PersonHandlerTestSuite) decodeBody(resp *http.Response, v interface{}) {
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(body, v))
}

func (s *PersonHandlerTestSuite) TestListPeople() {
	s.env.recognize(&s.Suite, 1.0)
	s.env.recognize(&s.Suite, 3.0)

	req := httptest.NewRequest("GET", "/people", nil)
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(200, resp.StatusCode)

	var result types.ListResponse[models.Person]
	s.decodeBody(resp, &result)
	s.Len(result.Rows, 2)
	s.Equal(2, result.Pagination.Total)
	s.Equal(1, result.Pagination.Page)
	s.Equal(models.DefaultLimit, result.Pagination.Limit)
}

func (s *PersonHandlerTestSuite) TestListPeoplePagination() {
	s.env.recognize(&s.Suite, 1.0)
	s.env.recognize(&s.Suite, 3.0)

	req := httptest.NewRequest("GET", "/people?limit=1&offset=1", nil)
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(200, resp.StatusCode)

	var result types.ListResponse[models.Person]
	s.decodeBody(resp, &result)
	s.Len(result.Rows, 1)
	s.Equal(2, result.Pagination.Total)
	s.Equal(2, result.Pagination.Page)
	s.Equal(1, result.Pagination.Limit)
	s.Equal(1, result.Pagination.Offset)
}

func (s *PersonHandlerTestSuite) TestGetPerson() {
	created := s.env.recognize(&s.Suite, 1.0)

	req := httptest.NewRequest("GET", fmt.Sprintf("/people/%d", created.PersonID), nil)
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(200, resp.StatusCode)

	var person models.Person
	s.decodeBody(resp, &person)
	s.Equal(created.PersonID, person.ID)
	s.Equal(created.Label, person.Label)
	s.Equal(1, person.AppearanceCount)
}

func (s *PersonHandlerTestSuite) TestGetPersonNotFound() {
	req := httptest.NewRequest("GET", "/people/999", nil)
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(404, resp.StatusCode)
}

func (s *PersonHandlerTestSuite) TestGetPersonInvalidID() {
	for _, id := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest("GET", "/people/"+id, nil)
		resp, err := s.app.Test(req)
		s.NoError(err)
		s.Equal(400, resp.StatusCode, "id %q should be rejected", id)
	}
}

func (s *PersonHandlerTestSuite) TestUpdatePersonLabel() {
	created := s.env.recognize(&s.Suite, 1.0)

	requestBody := `{"label": "alice"}`
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/people/%d/label", created.PersonID), strings.NewReader(requestBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(200, resp.StatusCode)

	var result struct {
		Data models.Person `json:"data"`
	}
	s.decodeBody(resp, &result)
	s.Equal(created.PersonID, result.Data.ID)
	s.Equal("alice", result.Data.Label)
}

func (s *PersonHandlerTestSuite) TestUpdatePersonLabelValidation() {
	created := s.env.recognize(&s.Suite, 1.0)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "empty label", body: `{"label": ""}`, wantStatus: 400},
		{name: "blank label", body: `{"label": "   "}`, wantStatus: 400},
		{name: "oversized label", body: fmt.Sprintf(`{"label": %q}`, strings.Repeat("a", 300)), wantStatus: 400},
		{name: "malformed body", body: `{invalid`, wantStatus: 400},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("PATCH", fmt.Sprintf("/people/%d/label", created.PersonID), strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := s.app.Test(req)
		s.NoError(err, tt.name)
		s.Equal(tt.wantStatus, resp.StatusCode, tt.name)
	}
}

func (s *PersonHandlerTestSuite) TestUpdatePersonLabelNotFound() {
	req := httptest.NewRequest("PATCH", "/people/999/label", strings.NewReader(`{"label": "alice"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(404, resp.StatusCode)
}

func (s *PersonHandlerTestSuite) TestDeletePerson() {
	created := s.env.recognize(&s.Suite, 1.0)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/people/%d", created.PersonID), nil)
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(204, resp.StatusCode)

	// Second delete finds nothing
	resp, err = s.app.Test(req)
	s.NoError(err)
	s.Equal(404, resp.StatusCode)
}

func (s *PersonHandlerTestSuite) TestClearPeople() {
	s.env.recognize(&s.Suite, 1.0)
	s.env.recognize(&s.Suite, 3.0)

	req := httptest.NewRequest("DELETE", "/people", nil)
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(204, resp.StatusCode)

	req = httptest.NewRequest("GET", "/people", nil)
	resp, err = s.app.Test(req)
	s.NoError(err)
	s.Equal(200, resp.StatusCode)

	var result types.ListResponse[models.Person]
	s.decodeBody(resp, &result)
	s.Empty(result.Rows)
}

func (s *PersonHandlerTestSuite) TestGetPersonSightings() {
	created := s.env.recognize(&s.Suite, 1.0)
	// Registration does not produce a sighting; the follow-up match does
	s.env.recognize(&s.Suite, 1.1)

	req := httptest.NewRequest("GET", fmt.Sprintf("/people/%d/sightings", created.PersonID), nil)
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(200, resp.StatusCode)

	var result types.ListResponse[models.Sighting]
	s.decodeBody(resp, &result)
	s.Len(result.Rows, 1)
	s.Equal(created.PersonID, result.Rows[0].PersonID)
	s.Equal(models.SourceAPI, result.Rows[0].Source)
	s.Equal(1, result.Pagination.Total)
}

func (s *PersonHandlerTestSuite) TestGetPersonSightingsNotFound() {
	req := httptest.NewRequest("GET", "/people/999/sightings", nil)
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(404, resp.StatusCode)
}

func (s *PersonHandlerTestSuite) TestGetStats() {
	s.env.recognize(&s.Suite, 1.0)
	s.env.recognize(&s.Suite, 3.0)
	// Matches the first person and stores a second descriptor plus a sighting
	s.env.recognize(&s.Suite, 1.1)

	req := httptest.NewRequest("GET", "/stats", nil)
	resp, err := s.app.Test(req)
	s.NoError(err)
	s.Equal(200, resp.StatusCode)

	var stats types.StatsResponse
	s.decodeBody(resp, &stats)
	s.Equal(int64(2), stats.People)
	s.Equal(int64(3), stats.Embeddings)
	s.Equal(int64(1), stats.Sightings)
}
