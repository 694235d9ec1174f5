package test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/facewatch/facewatch/internal/cache"
	"github.com/facewatch/facewatch/internal/db/repos"
	"github.com/facewatch/facewatch/pkg/api/v1/client"
	"github.com/facewatch/facewatch/test/mocks"
)

// DefaultTestTimeout is the default timeout for test suites.
const DefaultTestTimeout = 30 * time.Second

// Suite is a fully wired test environment: a temporary SQLite database,
// the HTTP API served over httptest, an API client pointed at that server
// and a scripted encoder standing in for dlib.
type Suite struct {
	t *testing.T

	// HTTP surface under test
	App    *fiber.App
	Server *httptest.Server

	// APIClient talks to Server the way external callers would
	APIClient client.Client

	// Storage layer, shared with the server
	DB            *gorm.DB
	PersonRepo    *repos.PersonRepository
	EmbeddingRepo *repos.EmbeddingRepository
	SightingRepo  *repos.SightingRepository
	Cache         *cache.EmbeddingCache

	// Encoder feeds the recognition service scripted vectors
	Encoder *mocks.MockEncoder

	ctx      context.Context
	cancel   context.CancelFunc
	cleanups []func()
}

// NewSuite builds the full environment. Callers must defer Cleanup.
func NewSuite(t *testing.T) *Suite {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)
	s := &Suite{
		t:       t,
		ctx:     ctx,
		cancel:  cancel,
		Encoder: mocks.NewMockEncoder(),
	}
	s.onCleanup(cancel)

	SetupTestDB(s, nil)
	SetupServer(s)

	return s
}

// onCleanup registers fn to run during Cleanup. Functions run in reverse
// registration order, the same way testing.T.Cleanup stacks them.
func (s *Suite) onCleanup(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

// Cleanup releases every resource the suite owns. Calling it more than
// once is safe; later calls do nothing.
func (s *Suite) Cleanup() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

// Context returns the suite's context. It is canceled during Cleanup and
// expires after DefaultTestTimeout.
func (s *Suite) Context() context.Context {
	return s.ctx
}

// Require returns a require.Assertions instance bound to the suite's test.
func (s *Suite) Require() *require.Assertions {
	return require.New(s.t)
}

// SetS sets the suite instance for this suite
func (s *Suite) SetS(_ suite.TestingSuite) {
	// This method is required by suite.TestingSuite but we don't need to do anything here
}

// SetT sets the testing.T instance for this suite
func (s *Suite) SetT(t *testing.T) {
	s.t = t
}

// T returns the testing.T instance for this suite
func (s *Suite) T() *testing.T {
	return s.t
}
