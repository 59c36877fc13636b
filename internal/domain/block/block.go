// Package block defines the content-block domain models attached to a
// chatbot: a singleton contact block and a collection of schedule blocks.
// Every block is joined to its chatbot through an Entity row whose id is
// shared with the kind-specific payload row.
package block

import (
	"fmt"
	"strings"
	"time"

	"github.com/botforge/botforge/internal/domain"
)

// Type discriminates the kind of a block entity.
type Type string

const (
	TypeContact  Type = "contact"
	TypeSchedule Type = "schedule"
)

// ErrContactExists is returned when a second contact block is created for a
// chatbot that already has one.
var ErrContactExists = fmt.Errorf("contact block already exists for chatbot: %w", domain.ErrConflict)

// Entity is the shared identity row joining a chatbot to one block instance,
// regardless of block kind.
type Entity struct {
	EntityID  string    `json:"entity_id"`
	ChatbotID string    `json:"chatbot_id"`
	BlockType Type      `json:"block_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Payload is the sum of kind-specific block payloads. Each payload shares its
// primary key with the Entity row.
type Payload interface {
	Kind() Type
}

// Contact is the singleton contact-information block of a chatbot.
type Contact struct {
	EntityID    string `json:"entity_id"`
	OrgName     string `json:"org_name"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	AddressText string `json:"address_text,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	HoursText   string `json:"hours_text,omitempty"`
}

// Kind implements Payload.
func (Contact) Kind() Type { return TypeContact }

// Schedule is one entry in a chatbot's opening-hours collection. A chatbot
// may carry any number of schedules, including duplicates.
type Schedule struct {
	EntityID  string `json:"entity_id"`
	Title     string `json:"title"`
	DayOfWeek string `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Notes     string `json:"notes,omitempty"`
}

// Kind implements Payload.
func (Schedule) Kind() Type { return TypeSchedule }

// CreateContactRequest is the input for creating the contact block.
type CreateContactRequest struct {
	OrgName     string `json:"org_name"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	AddressText string `json:"address_text,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	HoursText   string `json:"hours_text,omitempty"`
}

// Validate checks the CreateContactRequest field constraints.
func (r *CreateContactRequest) Validate() error {
	if strings.TrimSpace(r.OrgName) == "" {
		return fmt.Errorf("org_name is required: %w", domain.ErrValidation)
	}
	if len(r.OrgName) > 255 {
		return fmt.Errorf("org_name exceeds 255 characters: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateContactRequest carries a partial update of the contact block.
// Nil fields are left unchanged (merge semantics, not replace).
type UpdateContactRequest struct {
	OrgName     *string `json:"org_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	AddressText *string `json:"address_text,omitempty"`
	City        *string `json:"city,omitempty"`
	Country     *string `json:"country,omitempty"`
	HoursText   *string `json:"hours_text,omitempty"`
}

// Validate checks the UpdateContactRequest field constraints.
func (r *UpdateContactRequest) Validate() error {
	if r.OrgName != nil {
		if strings.TrimSpace(*r.OrgName) == "" {
			return fmt.Errorf("org_name cannot be empty: %w", domain.ErrValidation)
		}
		if len(*r.OrgName) > 255 {
			return fmt.Errorf("org_name exceeds 255 characters: %w", domain.ErrValidation)
		}
	}
	return nil
}

// Apply merges the non-nil request fields onto an existing contact.
func (r *UpdateContactRequest) Apply(c *Contact) {
	if r.OrgName != nil {
		c.OrgName = *r.OrgName
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.AddressText != nil {
		c.AddressText = *r.AddressText
	}
	if r.City != nil {
		c.City = *r.City
	}
	if r.Country != nil {
		c.Country = *r.Country
	}
	if r.HoursText != nil {
		c.HoursText = *r.HoursText
	}
}

// CreateScheduleRequest is the input for adding a schedule block.
type CreateScheduleRequest struct {
	Title     string `json:"title"`
	DayOfWeek string `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Notes     string `json:"notes,omitempty"`
}

// Validate checks the CreateScheduleRequest field constraints, including the
// open-before-close invariant.
func (r *CreateScheduleRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if len(r.Title) > 255 {
		return fmt.Errorf("title exceeds 255 characters: %w", domain.ErrValidation)
	}
	if err := validateDayOfWeek(r.DayOfWeek); err != nil {
		return err
	}
	return validateTimeWindow(r.OpenTime, r.CloseTime)
}

// UpdateScheduleRequest carries a partial update of one schedule block.
// Nil fields are left unchanged.
type UpdateScheduleRequest struct {
	Title     *string `json:"title,omitempty"`
	DayOfWeek *string `json:"day_of_week,omitempty"`
	OpenTime  *string `json:"open_time,omitempty"`
	CloseTime *string `json:"close_time,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Validate checks the supplied fields of the UpdateScheduleRequest.
// The open-before-close invariant across the merged result is checked by
// Apply, which sees both the old and new values.
func (r *UpdateScheduleRequest) Validate() error {
	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			return fmt.Errorf("title cannot be empty: %w", domain.ErrValidation)
		}
		if len(*r.Title) > 255 {
			return fmt.Errorf("title exceeds 255 characters: %w", domain.ErrValidation)
		}
	}
	if r.DayOfWeek != nil {
		if err := validateDayOfWeek(*r.DayOfWeek); err != nil {
			return err
		}
	}
	if r.OpenTime != nil {
		if _, err := parseClock(*r.OpenTime); err != nil {
			return fmt.Errorf("open_time %q is not a valid HH:MM time: %w", *r.OpenTime, domain.ErrValidation)
		}
	}
	if r.CloseTime != nil {
		if _, err := parseClock(*r.CloseTime); err != nil {
			return fmt.Errorf("close_time %q is not a valid HH:MM time: %w", *r.CloseTime, domain.ErrValidation)
		}
	}
	return nil
}

// Apply merges the non-nil request fields onto an existing schedule and
// re-checks the open-before-close invariant on the merged result.
func (r *UpdateScheduleRequest) Apply(s *Schedule) error {
	merged := *s
	if r.Title != nil {
		merged.Title = *r.Title
	}
	if r.DayOfWeek != nil {
		merged.DayOfWeek = *r.DayOfWeek
	}
	if r.OpenTime != nil {
		merged.OpenTime = *r.OpenTime
	}
	if r.CloseTime != nil {
		merged.CloseTime = *r.CloseTime
	}
	if r.Notes != nil {
		merged.Notes = *r.Notes
	}
	if err := validateTimeWindow(merged.OpenTime, merged.CloseTime); err != nil {
		return err
	}
	*s = merged
	return nil
}

var weekdays = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
	"Sunday":    true,
}

func validateDayOfWeek(day string) error {
	if !weekdays[day] {
		return fmt.Errorf("day_of_week %q is not a weekday name: %w", day, domain.ErrValidation)
	}
	return nil
}

// validateTimeWindow checks both times parse as HH:MM and open < close.
func validateTimeWindow(open, close string) error {
	openAt, err := parseClock(open)
	if err != nil {
		return fmt.Errorf("open_time %q is not a valid HH:MM time: %w", open, domain.ErrValidation)
	}
	closeAt, err := parseClock(close)
	if err != nil {
		return fmt.Errorf("close_time %q is not a valid HH:MM time: %w", close, domain.ErrValidation)
	}
	if !openAt.Before(closeAt) {
		return fmt.Errorf("open_time %s must be before close_time %s: %w", open, close, domain.ErrValidation)
	}
	return nil
}

func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}
