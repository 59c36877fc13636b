package block

import (
	"errors"
	"testing"

	"github.com/botforge/botforge/internal/domain"
)

func TestCreateScheduleRequestValidate(t *testing.T) {
	req := CreateScheduleRequest{
		Title:     "Weekday Hours",
		DayOfWeek: "Monday",
		OpenTime:  "09:00",
		CloseTime: "17:00",
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateScheduleRequestOpenAfterClose(t *testing.T) {
	req := CreateScheduleRequest{
		Title:     "Inverted",
		DayOfWeek: "Monday",
		OpenTime:  "18:00",
		CloseTime: "09:00",
	}
	err := req.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateScheduleRequestOpenEqualsClose(t *testing.T) {
	req := CreateScheduleRequest{
		Title:     "Zero Window",
		DayOfWeek: "Friday",
		OpenTime:  "09:00",
		CloseTime: "09:00",
	}
	if err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateScheduleRequestBadDay(t *testing.T) {
	req := CreateScheduleRequest{
		Title:     "Bad Day",
		DayOfWeek: "Funday",
		OpenTime:  "09:00",
		CloseTime: "17:00",
	}
	if err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateScheduleRequestBadClock(t *testing.T) {
	req := CreateScheduleRequest{
		Title:     "Bad Clock",
		DayOfWeek: "Monday",
		OpenTime:  "9am",
		CloseTime: "17:00",
	}
	if err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateScheduleApplyMerges(t *testing.T) {
	s := Schedule{
		EntityID:  "e1",
		Title:     "Old",
		DayOfWeek: "Monday",
		OpenTime:  "09:00",
		CloseTime: "17:00",
		Notes:     "keep me",
	}
	title := "New"
	req := UpdateScheduleRequest{Title: &title}

	if err := req.Apply(&s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "New" {
		t.Errorf("title not merged, got %q", s.Title)
	}
	if s.Notes != "keep me" {
		t.Errorf("unsupplied field changed, got %q", s.Notes)
	}
}

func TestUpdateScheduleApplyRejectsInvertedWindow(t *testing.T) {
	s := Schedule{
		Title:     "Hours",
		DayOfWeek: "Monday",
		OpenTime:  "09:00",
		CloseTime: "17:00",
	}
	open := "18:00"
	req := UpdateScheduleRequest{OpenTime: &open}

	err := req.Apply(&s)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if s.OpenTime != "09:00" {
		t.Errorf("schedule mutated on failed apply: %q", s.OpenTime)
	}
}

func TestUpdateContactApplyMerges(t *testing.T) {
	c := Contact{
		EntityID: "e1",
		OrgName:  "Acme Inc",
		Phone:    "+1-555-0100",
		City:     "Springfield",
	}
	phone := "+1-555-0199"
	req := UpdateContactRequest{Phone: &phone}
	req.Apply(&c)

	if c.Phone != "+1-555-0199" {
		t.Errorf("phone not merged, got %q", c.Phone)
	}
	if c.OrgName != "Acme Inc" || c.City != "Springfield" {
		t.Errorf("unsupplied fields changed: %+v", c)
	}
}

func TestContactExistsWrapsConflict(t *testing.T) {
	if !errors.Is(ErrContactExists, domain.ErrConflict) {
		t.Fatal("ErrContactExists must wrap domain.ErrConflict")
	}
}
