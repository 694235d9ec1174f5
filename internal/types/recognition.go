// Package types provides type definitions for the application
package types

import (
	"encoding/json"
	"fmt"
)

// RecognitionStatus represents the outcome of recognizing a face
type RecognitionStatus int

const (
	// StatusNew means the face matched nobody and a new person was created
	StatusNew RecognitionStatus = iota
	// StatusRecognized means the face matched exactly one known person
	StatusRecognized
	// StatusAmbiguous means the face matched several people and nothing was stored
	StatusAmbiguous
)

var recognitionStatusNames = []string{
	"new",
	"recognized",
	"ambiguous",
}

// String returns the string representation of the recognition status
func (s RecognitionStatus) String() string {
	if int(s) < 0 || int(s) >= len(recognitionStatusNames) {
		return fmt.Sprintf("RecognitionStatus(%d)", int(s))
	}
	return recognitionStatusNames[s]
}

// ParseRecognitionStatus converts a string to a RecognitionStatus
func ParseRecognitionStatus(s string) (RecognitionStatus, error) {
	for i, name := range recognitionStatusNames {
		if name == s {
			return RecognitionStatus(i), nil
		}
	}
	return 0, fmt.Errorf("invalid recognition status: %q", s)
}

// MarshalJSON implements the json.Marshaler interface
func (s RecognitionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *RecognitionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseRecognitionStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Recognition represents the result of recognizing a single face
// swagger:model
// Example: {"status":"recognized","person_id":3,"label":"person_3","appearance_count":7,"distance":0.41}
type Recognition struct {
	// Outcome of the recognition ("new", "recognized" or "ambiguous")
	Status RecognitionStatus `json:"status"`

	// ID of the matched or newly created person, zero when ambiguous
	PersonID uint `json:"person_id,omitempty"`

	// Label of the matched or newly created person
	Label string `json:"label,omitempty"`

	// Number of times the person has been seen, including this one
	AppearanceCount int `json:"appearance_count,omitempty"`

	// Distance between the probe and the closest stored embedding,
	// only meaningful when the status is "recognized"
	Distance float64 `json:"distance,omitempty"`

	// IDs of all people within the match threshold when the status is
	// "ambiguous"
	CandidateIDs []uint `json:"candidate_ids,omitempty"`
}
