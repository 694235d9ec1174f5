// Package models defines the database entities for the face recognition store.
package models

const (
	// DefaultLimit is the max number of rows that are retrieved from the DB per listing API call
	DefaultLimit = 50

	// EmbeddingDim is the dimension of the face descriptors produced by the
	// dlib ResNet model. Vectors of any other length are rejected before they
	// reach the database.
	EmbeddingDim = 128

	// MaxEmbeddingsPerPerson caps how many reference embeddings a person keeps.
	// Adding beyond the cap evicts the stored embedding closest to the new one.
	MaxEmbeddingsPerPerson = 5

	// DefaultMatchThreshold is the Euclidean distance under which two
	// descriptors are considered the same person. 0.6 is the conventional
	// threshold for dlib 128-d descriptors.
	DefaultMatchThreshold = 0.6
)

// ListOptions represents pagination and filtering options for list operations
type ListOptions struct {
	Limit          int  `json:"limit"`  // Number of items to return
	Offset         int  `json:"offset"` // Number of items to skip
	IncludeDeleted bool `json:"include_deleted"`
}
