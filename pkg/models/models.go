// Package models contains PUBLIC aliases for the internal database models.
package models

// NOTE: This package uses type aliases to internal definitions
// as a temporary measure. This should be revisited
// during a proper refactoring to define stable public types.

import (
	internalmodels "github.com/facewatch/facewatch/internal/db/models"
)

const (
	// DefaultLimit is the max number of rows that are retrieved from the DB per listing API call
	DefaultLimit = internalmodels.DefaultLimit
	// EmbeddingDim is the dimension of the face descriptors produced by the recognizer
	EmbeddingDim = internalmodels.EmbeddingDim
	// MaxEmbeddingsPerPerson caps how many reference embeddings a person keeps
	MaxEmbeddingsPerPerson = internalmodels.MaxEmbeddingsPerPerson
	// DefaultMatchThreshold is the Euclidean distance under which two descriptors match
	DefaultMatchThreshold = internalmodels.DefaultMatchThreshold
)

// ListOptions represents pagination and filtering options for list operations
type ListOptions = internalmodels.ListOptions
