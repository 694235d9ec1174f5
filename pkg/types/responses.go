// Package types contains PUBLIC aliases for internal request/response structs.
//
// NOTE: This package uses type aliases to internal definitions
// as a temporary measure. This should be revisited
// during a proper refactoring to define stable public types.
package types

import (
	internaltypes "github.com/facewatch/facewatch/internal/types"
)

// PaginationResponse describes how a list response was paginated (public alias)
type PaginationResponse = internaltypes.PaginationResponse

// ListResponse is a generic response structure for lists (public alias).
// Generic types cannot be aliased, so this mirrors the internal shape.
type ListResponse[T any] struct {
	Rows       []T                `json:"rows"`
	Pagination PaginationResponse `json:"pagination"`
}

// ErrorResponse represents an error response from the API (public alias)
type ErrorResponse = internaltypes.ErrorResponse

// SuccessResponse wraps a successful response payload (public alias)
type SuccessResponse = internaltypes.SuccessResponse

// StatsResponse reports row counts for the face database (public alias)
type StatsResponse = internaltypes.StatsResponse

// UpdateLabelRequest is the request body for renaming a person (public alias)
type UpdateLabelRequest = internaltypes.UpdateLabelRequest
