package models

import (
	internalmodels "github.com/facewatch/facewatch/internal/db/models"
)

// Person is an identity tracked by the recognizer (public alias)
type Person = internalmodels.Person
