package types

// PaginationResponse represents pagination information for list endpoints
// swagger:model
// Example: {"total":42,"page":1,"limit":10,"offset":0}
type PaginationResponse struct {
	// Total number of items available across all pages
	Total int `json:"total"`

	// Current page number (1-based)
	Page int `json:"page"`

	// Maximum number of items per page
	Limit int `json:"limit"`

	// Number of items skipped from the beginning of the result set
	Offset int `json:"offset"`
}

// ListResponse defines a generic response structure for listing resources
// swagger:model
// Example: {"rows":[{"id":1,"label":"person_1"},{"id":2,"label":"person_2"}],"pagination":{"total":2,"page":1,"limit":10,"offset":0}}
type ListResponse[T any] struct {
	// Array of resource items
	Rows []T `json:"rows"`

	// Pagination information for the result set
	Pagination PaginationResponse `json:"pagination"`
}

// ErrorResponse represents an error response
// swagger:model
// Example: {"error":"person not found"}
type ErrorResponse struct {
	// Error message describing what went wrong
	Error string `json:"error"`

	// Optional additional details about the error
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a success response
// swagger:model
// Example: {"data":{"id":123}}
type SuccessResponse struct {
	// Optional data returned by the operation
	Data interface{} `json:"data,omitempty"`
}

// StatsResponse represents database-wide counters
// swagger:model
// Example: {"people":12,"embeddings":48,"sightings":131}
type StatsResponse struct {
	// Number of known people
	People int64 `json:"people"`

	// Number of stored face embeddings
	Embeddings int64 `json:"embeddings"`

	// Number of recorded sightings
	Sightings int64 `json:"sightings"`
}

// ErrInvalidInput returns an ErrorResponse for a malformed request
func ErrInvalidInput(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ErrNotFound returns an ErrorResponse for a missing resource
func ErrNotFound(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ErrServer returns an ErrorResponse for an internal failure
func ErrServer(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// Success returns a SuccessResponse wrapping the given data
func Success(data interface{}) SuccessResponse {
	return SuccessResponse{Data: data}
}
