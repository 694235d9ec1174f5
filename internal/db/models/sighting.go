package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SightingSource identifies which transport submitted the recognized image
type SightingSource int

// Sighting source constants
const (
	// SourceUnknown represents an unknown or invalid source
	SourceUnknown SightingSource = iota
	// SourceBot indicates the image arrived through the Telegram bot
	SourceBot
	// SourceAPI indicates the image arrived through the HTTP API
	SourceAPI
)

// Sighting records one successful recognition of a known person.
// New-person registrations do not produce sightings; only matches do.
type Sighting struct {
	gorm.Model
	PersonID  uint           `json:"person_id" gorm:"not null;index"`
	Source    SightingSource `json:"source" gorm:"index"`
	ChatID    int64          `json:"chat_id,omitempty"` // Telegram chat, 0 for API sightings
	Distance  float64        `json:"distance"`          // match distance to the nearest stored embedding
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}

func (s SightingSource) String() string {
	return []string{
		"unknown",
		"bot",
		"api",
	}[s]
}

// ParseSightingSource converts a string representation of a source to SightingSource type
func ParseSightingSource(str string) (SightingSource, error) {
	for i, source := range []string{
		"unknown",
		"bot",
		"api",
	} {
		if source == str {
			return SightingSource(i), nil
		}
	}
	return SightingSource(0), fmt.Errorf("invalid sighting source: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for SightingSource
func (s SightingSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for SightingSource
func (s *SightingSource) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	source, err := ParseSightingSource(str)
	if err != nil {
		return err
	}

	*s = source
	return nil
}
