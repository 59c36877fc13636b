package service

import (
	"context"
	"errors"
	"testing"

	"github.com/botforge/botforge/internal/domain"
	"github.com/botforge/botforge/internal/domain/tag"
)

func TestTagService_CreateAndList(t *testing.T) {
	store := newMockStore()
	tags := NewTagService(store)

	created, err := tags.Create(context.Background(), tag.CreateRequest{Name: "onboarding"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.IsCustom {
		t.Error("user-created tags must be marked custom")
	}

	if _, err := tags.Create(context.Background(), tag.CreateRequest{Name: "onboarding"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate name, got %v", err)
	}

	list, err := tags.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 tag, got %d", len(list))
	}
}

func TestTagService_SeedBuiltinsIdempotent(t *testing.T) {
	store := newMockStore()
	tags := NewTagService(store)

	for i := 0; i < 2; i++ {
		if err := tags.SeedBuiltins(context.Background()); err != nil {
			t.Fatalf("SeedBuiltins #%d: %v", i+1, err)
		}
	}

	list, err := tags.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != len(builtinTags) {
		t.Errorf("expected %d builtin tags, got %d", len(builtinTags), len(list))
	}
	for _, got := range list {
		if got.IsCustom {
			t.Errorf("builtin tag %q must not be custom", got.Name)
		}
	}
}

func TestTagService_UpdateAndDelete(t *testing.T) {
	store := newMockStore()
	tags := NewTagService(store)

	created, err := tags.Create(context.Background(), tag.CreateRequest{Name: "onboarding"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "welcome"
	updated, err := tags.Update(context.Background(), created.ID, tag.UpdateRequest{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "welcome" {
		t.Errorf("name = %q", updated.Name)
	}

	if err := tags.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := tags.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
