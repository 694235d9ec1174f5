// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/facewatch/facewatch/pkg/api/v1/handlers"
)

/*

To keep this file organized, routes should be organized in the following way:

1. Smallest scope first (i.e. person routes before recognition routes)
2. For similar scopes, put the endpoints in alphabetical order
3. Order routes in GET, POST, PATCH, DELETE order.
	a. Within this ordering, param urls (ie /:id) should go last, otherwise fiber will interpret the route slug as that param.
	b. After param considerations, order alphabetically.
4. For clarity, naming should match the action (i.e. GetPerson, DeletePerson)

*/

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Person routes
	GetPeople          = "GetPeople"
	GetPerson          = "GetPerson"
	GetPersonSightings = "GetPersonSightings"
	UpdatePersonLabel  = "UpdatePersonLabel"
	ClearPeople        = "ClearPeople"
	DeletePerson       = "DeletePerson"

	// Recognition routes
	CreateRecognition = "CreateRecognition"

	// Stats routes
	GetStats = "GetStats"
)

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheMu   sync.RWMutex
	routeCacheInit sync.Once
)

// RegisterRoutes configures all the v1 routes
//
// NOTE: route ordering is important because routes will try and match in the order they are registered.
// For example, a fixed path like /people/recent registered after /people/:id would have its last segment captured as a person ID.
func RegisterRoutes(
	app *fiber.App,
	personHandler *handlers.PersonHandler,
	recognitionHandler *handlers.RecognitionHandler,
) {
	// API v1 routes
	v1 := app.Group(APIv1Prefix)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// People endpoints
	people := v1.Group("/people")
	people.Get("/", personHandler.ListPeople).Name(GetPeople)
	people.Get("/:id", personHandler.GetPerson).Name(GetPerson)
	people.Get("/:id/sightings", personHandler.GetPersonSightings).Name(GetPersonSightings)
	people.Patch("/:id/label", personHandler.UpdatePersonLabel).Name(UpdatePersonLabel)
	people.Delete("/", personHandler.ClearPeople).Name(ClearPeople)
	people.Delete("/:id", personHandler.DeletePerson).Name(DeletePerson)

	// ---------------------------
	// Recognition endpoints
	recognitions := v1.Group("/recognitions")
	recognitions.Post("/", recognitionHandler.CreateRecognition).Name(CreateRecognition)

	// Stats endpoint
	v1.Get("/stats", personHandler.GetStats).Name(GetStats)
}

// initRouteCache initializes the route cache by creating a mock app and extracting routes
func initRouteCache() {
	routeCacheInit.Do(func() {
		routeCache = make(map[string]string)

		// Create a mock app
		app := fiber.New()

		// Create empty handlers for route registration
		mockPersonHandler := &handlers.PersonHandler{}
		mockRecognitionHandler := &handlers.RecognitionHandler{}

		// Register routes with mock handlers
		RegisterRoutes(app, mockPersonHandler, mockRecognitionHandler)

		// Extract routes from the app
		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				routeCache[route.Name] = route.Path
			}
		}
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	routeCacheMu.RLock()
	defer routeCacheMu.RUnlock()

	// Initialize cache if needed
	if routeCache == nil {
		routeCacheMu.RUnlock()
		initRouteCache()
		routeCacheMu.RLock()
	}

	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	// Replace parameters in the route
	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, value)
	}

	// Remove trailing slash if it's a base endpoint with no parameters
	if strings.HasSuffix(route, "/") && !strings.Contains(route, ":") {
		route = strings.TrimSuffix(route, "/")
	}

	// Add query parameters if any
	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

// Health check route helper

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil, nil)
}

// Person route helpers

// GetPeopleURL returns the URL for listing people
func GetPeopleURL(queryParams url.Values) string {
	return BuildURL(GetPeople, nil, queryParams)
}

// GetPersonURL returns the URL for getting a person by ID
func GetPersonURL(id string) string {
	return BuildURL(GetPerson, map[string]string{"id": id}, nil)
}

// GetPersonSightingsURL returns the URL for listing a person's sightings
func GetPersonSightingsURL(id string, queryParams url.Values) string {
	return BuildURL(GetPersonSightings, map[string]string{"id": id}, queryParams)
}

// UpdatePersonLabelURL returns the URL for renaming a person
func UpdatePersonLabelURL(id string) string {
	return BuildURL(UpdatePersonLabel, map[string]string{"id": id}, nil)
}

// ClearPeopleURL returns the URL for deleting all people
func ClearPeopleURL() string {
	return BuildURL(ClearPeople, nil, nil)
}

// DeletePersonURL returns the URL for deleting a person by ID
func DeletePersonURL(id string) string {
	return BuildURL(DeletePerson, map[string]string{"id": id}, nil)
}

// Recognition route helpers

// CreateRecognitionURL returns the URL for submitting an image for recognition
func CreateRecognitionURL() string {
	return BuildURL(CreateRecognition, nil, nil)
}

// Stats route helper

// GetStatsURL returns the URL for the database stats endpoint
func GetStatsURL() string {
	return BuildURL(GetStats, nil, nil)
}
