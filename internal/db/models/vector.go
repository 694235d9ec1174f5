package models

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
)

// Vector is a face descriptor stored as a JSONB array column.
type Vector []float64

// Validate checks that the vector has the expected descriptor dimension
func (v Vector) Validate() error {
	if len(v) != EmbeddingDim {
		return fmt.Errorf("embedding must have dimension %d, got %d", EmbeddingDim, len(v))
	}
	return nil
}

// Hash returns a deterministic 64-bit hash of the vector, computed with
// FNV-1a over the big-endian IEEE-754 bits of each component. It backs the
// unique vector_hash column, so it must be stable across processes.
func (v Vector) Hash() int64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, f := range v {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	return int64(h.Sum64())
}

// DistanceTo returns the Euclidean distance between two vectors.
// Vectors of different lengths are treated as infinitely far apart.
func (v Vector) DistanceTo(other Vector) float64 {
	if len(v) != len(other) {
		return math.Inf(1)
	}
	var sum float64
	for i := range v {
		d := v[i] - other[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Value implements the driver.Valuer interface
func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements the sql.Scanner interface
func (v *Vector) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}

	var bytes []byte
	switch data := value.(type) {
	case []byte:
		bytes = data
	case string:
		bytes = []byte(data)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	var temp []float64
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return fmt.Errorf("failed to unmarshal vector: %w", err)
	}
	*v = temp
	return nil
}
