// Package chatbot defines the chatbot domain model. A chatbot is owned by
// exactly one user and is the join point for all attached content blocks.
package chatbot

import (
	"fmt"
	"strings"
	"time"

	"github.com/botforge/botforge/internal/domain"
)

// Chatbot represents a single bot configuration owned by a user.
type Chatbot struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	DisplayName string    `json:"display_name"`
	Domain      string    `json:"domain"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateRequest holds the fields required to create a new chatbot.
// No uniqueness constraint applies to display_name or domain across users.
type CreateRequest struct {
	DisplayName string `json:"display_name"`
	Domain      string `json:"domain"`
}

// Validate checks the CreateRequest field constraints.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.DisplayName) == "" {
		return fmt.Errorf("display_name is required: %w", domain.ErrValidation)
	}
	if len(r.DisplayName) > 255 {
		return fmt.Errorf("display_name exceeds 255 characters: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Domain) == "" {
		return fmt.Errorf("domain is required: %w", domain.ErrValidation)
	}
	if len(r.Domain) > 255 {
		return fmt.Errorf("domain exceeds 255 characters: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds the fields that can be updated on a chatbot.
// Nil fields are left unchanged.
type UpdateRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Domain      *string `json:"domain,omitempty"`
}

// Validate checks the UpdateRequest field constraints.
func (r *UpdateRequest) Validate() error {
	if r.DisplayName != nil {
		if strings.TrimSpace(*r.DisplayName) == "" {
			return fmt.Errorf("display_name cannot be empty: %w", domain.ErrValidation)
		}
		if len(*r.DisplayName) > 255 {
			return fmt.Errorf("display_name exceeds 255 characters: %w", domain.ErrValidation)
		}
	}
	if r.Domain != nil {
		if strings.TrimSpace(*r.Domain) == "" {
			return fmt.Errorf("domain cannot be empty: %w", domain.ErrValidation)
		}
		if len(*r.Domain) > 255 {
			return fmt.Errorf("domain exceeds 255 characters: %w", domain.ErrValidation)
		}
	}
	return nil
}
