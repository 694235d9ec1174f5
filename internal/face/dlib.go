package face

import (
	"context"
	"fmt"

	goface "github.com/Kagami/go-face"

	"github.com/facewatch/facewatch/internal/db/models"
)

// DlibEncoder implements Encoder on top of the dlib ResNet face
// recognition model. It needs the pretrained model files
// (shape_predictor_5_face_landmarks.dat, dlib_face_recognition_resnet_model_v1.dat,
// mmod_human_face_detector.dat) in a local directory.
type DlibEncoder struct {
	rec *goface.Recognizer
}

// NewDlibEncoder loads the dlib models from modelsDir
func NewDlibEncoder(modelsDir string) (*DlibEncoder, error) {
	rec, err := goface.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load face recognition models from %s: %w", modelsDir, err)
	}
	return &DlibEncoder{rec: rec}, nil
}

// Encode extracts the descriptor of the single face in the JPEG file at
// imagePath. The context is checked before the (blocking, CGO) recognition
// call since dlib itself cannot be interrupted.
func (e *DlibEncoder) Encode(ctx context.Context, imagePath string) (models.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	faces, err := e.rec.RecognizeFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to run face recognition on %s: %w", imagePath, err)
	}

	switch len(faces) {
	case 0:
		return nil, ErrNoFace
	case 1:
	default:
		return nil, ErrMultipleFaces
	}

	descriptor := faces[0].Descriptor
	vector := make(models.Vector, len(descriptor))
	for i, v := range descriptor {
		vector[i] = float64(v)
	}
	return vector, nil
}

// Dimensions returns the dlib ResNet descriptor dimension
func (e *DlibEncoder) Dimensions() int {
	return models.EmbeddingDim
}

// Close releases the dlib recognizer
func (e *DlibEncoder) Close() {
	if e.rec != nil {
		e.rec.Close()
	}
}
