// Package tag defines the tag domain model. Tags are flat labels, independent
// of the block lifecycle; builtin tags are seeded, custom ones user-created.
package tag

import (
	"fmt"
	"strings"

	"github.com/botforge/botforge/internal/domain"
)

// Tag is a flat label usable across chatbots.
type Tag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsCustom bool   `json:"is_custom"`
}

// CreateRequest holds the fields for creating a custom tag.
type CreateRequest struct {
	Name string `json:"name"`
}

// Validate checks the CreateRequest field constraints.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(r.Name) > 64 {
		return fmt.Errorf("name exceeds 64 characters: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds the fields that can be updated on a tag.
type UpdateRequest struct {
	Name *string `json:"name,omitempty"`
}

// Validate checks the UpdateRequest field constraints.
func (r *UpdateRequest) Validate() error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return fmt.Errorf("name cannot be empty: %w", domain.ErrValidation)
		}
		if len(*r.Name) > 64 {
			return fmt.Errorf("name exceeds 64 characters: %w", domain.ErrValidation)
		}
	}
	return nil
}
