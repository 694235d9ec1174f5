// Package face extracts descriptors from images. The actual recognition
// model is an external dependency hidden behind the Encoder interface so the
// rest of the system (and its tests) never touch dlib directly.
package face

import (
	"context"
	"errors"

	"github.com/facewatch/facewatch/internal/db/models"
)

// DefaultModelsDir is where the pretrained dlib model files are looked up
// unless FACE_MODELS_DIR points elsewhere
const DefaultModelsDir = "models"

// Encoder errors
var (
	// ErrNoFace is returned when the image contains no detectable face
	ErrNoFace = errors.New("no face found in image")
	// ErrMultipleFaces is returned when the image contains more than one face
	ErrMultipleFaces = errors.New("more than one face found in image")
)

// Encoder turns an image into a face descriptor. Implementations must
// reject images that do not contain exactly one face.
type Encoder interface {
	// Encode extracts the descriptor of the single face in the image file.
	// Returns ErrNoFace or ErrMultipleFaces when the face count is not one.
	Encode(ctx context.Context, imagePath string) (models.Vector, error)

	// Dimensions returns the descriptor dimension the encoder produces
	Dimensions() int

	// Close releases any resources held by the encoder
	Close()
}
