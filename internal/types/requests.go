package types

import (
	"fmt"
	"strings"
)

const maxLabelLength = 255

// UpdateLabelRequest represents the request body for renaming a person
type UpdateLabelRequest struct {
	Label string `json:"label"` // New label for the person
}

// Validate validates the label update request
func (r *UpdateLabelRequest) Validate() error {
	label := strings.TrimSpace(r.Label)
	if label == "" {
		return fmt.Errorf("label is required")
	}
	if len(label) > maxLabelLength {
		return fmt.Errorf("label must be at most %d characters", maxLabelLength)
	}
	return nil
}
