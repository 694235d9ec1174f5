package types

import (
	internaltypes "github.com/facewatch/facewatch/internal/types"
)

// RecognitionStatus describes the outcome of a recognition attempt
type RecognitionStatus = internaltypes.RecognitionStatus

// Recognition status constants (public aliases)
const (
	// StatusNew indicates an unknown face that was registered as a new person
	StatusNew RecognitionStatus = internaltypes.StatusNew
	// StatusRecognized indicates the face matched exactly one known person
	StatusRecognized RecognitionStatus = internaltypes.StatusRecognized
	// StatusAmbiguous indicates the face matched more than one known person
	StatusAmbiguous RecognitionStatus = internaltypes.StatusAmbiguous
)

// Recognition is the result of submitting an image for recognition (public alias)
type Recognition = internaltypes.Recognition

// ParseRecognitionStatus converts a string representation of a status to RecognitionStatus type
var ParseRecognitionStatus = internaltypes.ParseRecognitionStatus
