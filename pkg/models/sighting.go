package models

import (
	internalmodels "github.com/facewatch/facewatch/internal/db/models"
)

// SightingSource identifies which transport submitted the recognized image
type SightingSource = internalmodels.SightingSource

// Sighting source constants (public aliases)
const (
	// SourceUnknown represents an unknown or invalid source
	SourceUnknown SightingSource = internalmodels.SourceUnknown
	// SourceBot indicates the image arrived through the Telegram bot
	SourceBot SightingSource = internalmodels.SourceBot
	// SourceAPI indicates the image arrived through the HTTP API
	SourceAPI SightingSource = internalmodels.SourceAPI
)

// Sighting records one successful recognition of a known person (public alias)
type Sighting = internalmodels.Sighting

// ParseSightingSource converts a string representation of a source to SightingSource type
var ParseSightingSource = internalmodels.ParseSightingSource
