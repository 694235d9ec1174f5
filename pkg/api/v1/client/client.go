// Package client provides the API client for interacting with the Facewatch API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/types"
	"github.com/facewatch/facewatch/pkg/api/v1/routes"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Person Endpoints
	GetPeople(ctx context.Context, opts *models.ListOptions) ([]models.Person, error)
	GetPerson(ctx context.Context, id uint) (models.Person, error)
	GetPersonSightings(ctx context.Context, id uint, opts *models.ListOptions) ([]models.Sighting, error)
	RenamePerson(ctx context.Context, id uint, label string) (models.Person, error)
	ClearPeople(ctx context.Context) error
	DeletePerson(ctx context.Context, id uint) error

	// Recognition Endpoints
	Recognize(ctx context.Context, imagePath string) (types.Recognition, error)

	// Stats Endpoints
	GetStats(ctx context.Context) (types.StatsResponse, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	_, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	// Resolve the endpoint URL
	fullURL := c.baseURL + endpoint

	// Create a new agent based on the HTTP method
	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	case http.MethodPatch:
		agent = fiber.Patch(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	// Set common headers
	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")

	// Add body if provided
	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	// Execute the request
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		// If we can't decode the error response, return an error with the raw body as the message
		return &fiber.Error{
			Code:    statusCode,
			Message: string(body),
		}
	}

	// Decode the response body if a target is provided
	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// formatID renders a person ID as a path parameter
func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// getQueryParams creates url.Values from ListOptions
func getQueryParams(opts *models.ListOptions) url.Values {
	q := url.Values{}
	if opts == nil {
		return q
	}

	// Pagination params
	if opts.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", opts.Offset))
	}

	// Filtering params
	if opts.IncludeDeleted {
		q.Set("include_deleted", "true")
	}

	return q
}

// Health check implementation

// HealthCheck checks the health of the API
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	endpoint := routes.HealthCheckURL()
	var response map[string]string
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return map[string]string{}, err
	}
	return response, nil
}

// Person methods implementation

// GetPeople lists people with optional pagination
func (c *APIClient) GetPeople(ctx context.Context, opts *models.ListOptions) ([]models.Person, error) {
	endpoint := routes.GetPeopleURL(getQueryParams(opts))
	var response types.ListResponse[models.Person]
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return []models.Person{}, err
	}
	return response.Rows, nil
}

// GetPerson retrieves a person by ID
func (c *APIClient) GetPerson(ctx context.Context, id uint) (models.Person, error) {
	endpoint := routes.GetPersonURL(formatID(id))
	var response models.Person
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return models.Person{}, err
	}
	return response, nil
}

// GetPersonSightings lists the recorded sightings of a person
func (c *APIClient) GetPersonSightings(ctx context.Context, id uint, opts *models.ListOptions) ([]models.Sighting, error) {
	endpoint := routes.GetPersonSightingsURL(formatID(id), getQueryParams(opts))
	var response types.ListResponse[models.Sighting]
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return []models.Sighting{}, err
	}
	return response.Rows, nil
}

// RenamePerson updates the label of a person
func (c *APIClient) RenamePerson(ctx context.Context, id uint, label string) (models.Person, error) {
	endpoint := routes.UpdatePersonLabelURL(formatID(id))
	req := types.UpdateLabelRequest{Label: label}

	var response types.SuccessResponse
	if err := c.executeRequest(ctx, http.MethodPatch, endpoint, req, &response); err != nil {
		return models.Person{}, err
	}

	// The renamed person travels in the Data field of the success envelope.
	// Since Data is interface{}, marshal it back to JSON and unmarshal it into
	// the target struct.
	dataJSON, err := json.Marshal(response.Data)
	if err != nil {
		return models.Person{}, fmt.Errorf("error marshaling data: %w", err)
	}

	var person models.Person
	if err := json.Unmarshal(dataJSON, &person); err != nil {
		return models.Person{}, fmt.Errorf("error decoding person: %w", err)
	}
	return person, nil
}

// ClearPeople deletes every person and their stored data
func (c *APIClient) ClearPeople(ctx context.Context) error {
	endpoint := routes.ClearPeopleURL()
	return c.executeRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// DeletePerson deletes a person by ID
func (c *APIClient) DeletePerson(ctx context.Context, id uint) error {
	endpoint := routes.DeletePersonURL(formatID(id))
	return c.executeRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Recognition methods implementation

// Recognize uploads an image and returns the recognition outcome
func (c *APIClient) Recognize(ctx context.Context, imagePath string) (types.Recognition, error) {
	endpoint := routes.CreateRecognitionURL()

	// Multipart upload, so the agent is built directly instead of through
	// createAgent which sets JSON headers.
	agent := fiber.Post(c.baseURL + endpoint)
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}
	agent.SendFile(imagePath, "image")
	agent.MultipartForm(nil)

	var response types.Recognition
	if err := c.doRequest(agent, &response); err != nil {
		return types.Recognition{}, err
	}
	return response, nil
}

// Stats methods implementation

// GetStats retrieves row counts for the face database
func (c *APIClient) GetStats(ctx context.Context) (types.StatsResponse, error) {
	endpoint := routes.GetStatsURL()
	var response types.StatsResponse
	if err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return types.StatsResponse{}, err
	}
	return response, nil
}
