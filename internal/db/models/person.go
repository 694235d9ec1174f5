package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Field names for the person model
const (
	// PersonAppearanceCountField is the database field name for the appearance counter
	PersonAppearanceCountField = "appearance_count"
	// PersonLastSeenAtField is the database field name for the last sighting timestamp
	PersonLastSeenAtField = "last_seen_at"
	// PersonLabelField is the database field name for the operator-assigned label
	PersonLabelField = "label"
)

// Person is an identity tracked by the recognizer. People are created
// automatically the first time an unknown face is seen; the label is an
// optional name assigned later by an operator.
type Person struct {
	gorm.Model
	Label           string          `json:"label,omitempty" gorm:"index"`
	AppearanceCount int             `json:"appearance_count" gorm:"not null;default:0"`
	LastSeenAt      *time.Time      `json:"last_seen_at,omitempty"`
	Embeddings      []FaceEmbedding `json:"embeddings,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Sightings       []Sighting      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// MarshalJSON implements the json.Marshaler interface for Person
func (p Person) MarshalJSON() ([]byte, error) {
	type Alias Person // Create an alias to avoid infinite recursion
	return json.Marshal(Alias(p))
}
