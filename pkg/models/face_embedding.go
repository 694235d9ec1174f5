package models

import (
	internalmodels "github.com/facewatch/facewatch/internal/db/models"
)

// FaceEmbedding is a stored reference descriptor for a person (public alias)
type FaceEmbedding = internalmodels.FaceEmbedding

// Vector is a face descriptor stored as a JSON array (public alias)
type Vector = internalmodels.Vector
