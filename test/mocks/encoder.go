package mocks

import (
	"context"
	"sync"

	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/face"
)

// MockEncoder implements face.Encoder for testing. The descriptor (or error)
// produced by Encode is configured per test through SetVector and SetError,
// so tests control exactly which face the recognizer "sees".
type MockEncoder struct {
	mu     sync.Mutex
	vector models.Vector
	err    error
	closed bool
}

var _ face.Encoder = (*MockEncoder)(nil)

// NewMockEncoder creates a MockEncoder that yields Vector(0) until configured
func NewMockEncoder() *MockEncoder {
	return &MockEncoder{vector: Vector(0)}
}

// SetVector configures the descriptor returned by subsequent Encode calls
// and clears any configured error
func (e *MockEncoder) SetVector(v models.Vector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vector = v
	e.err = nil
}

// SetError configures subsequent Encode calls to fail with err
func (e *MockEncoder) SetError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

// Encode returns the configured descriptor or error, ignoring the image path
func (e *MockEncoder) Encode(_ context.Context, _ string) (models.Vector, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return e.vector, nil
}

// Dimensions returns the standard descriptor dimension
func (e *MockEncoder) Dimensions() int {
	return models.EmbeddingDim
}

// Close marks the encoder as closed
func (e *MockEncoder) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

// Closed reports whether Close has been called
func (e *MockEncoder) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Vector builds a deterministic descriptor. The Euclidean distance between
// Vector(a) and Vector(b) is |a-b|, which makes match thresholds easy to
// reason about in tests.
func Vector(seed float64) models.Vector {
	v := make(models.Vector, models.EmbeddingDim)
	v[0] = seed
	return v
}
