package service

import (
	"context"

	"github.com/botforge/botforge/internal/domain/tag"
	"github.com/botforge/botforge/internal/port/database"
)

// builtinTags are seeded by the admin CLI and marked non-custom.
var builtinTags = []string{"sales", "support", "booking", "faq"}

// TagService manages the flat tag catalog.
type TagService struct {
	store database.Store
}

// NewTagService creates a TagService.
func NewTagService(store database.Store) *TagService {
	return &TagService{store: store}
}

func (s *TagService) Create(ctx context.Context, req tag.CreateRequest) (*tag.Tag, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := &tag.Tag{Name: req.Name, IsCustom: true}
	if err := s.store.CreateTag(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TagService) List(ctx context.Context) ([]tag.Tag, error) {
	return s.store.ListTags(ctx)
}

func (s *TagService) Get(ctx context.Context, id string) (*tag.Tag, error) {
	return s.store.GetTag(ctx, id)
}

func (s *TagService) Update(ctx context.Context, id string, req tag.UpdateRequest) (*tag.Tag, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.store.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}

	if err := s.store.UpdateTag(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteTag(ctx, id)
}

// SeedBuiltins inserts the builtin tag set, ignoring ones already present.
func (s *TagService) SeedBuiltins(ctx context.Context) error {
	existing, err := s.store.ListTags(ctx)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(existing))
	for _, t := range existing {
		present[t.Name] = true
	}

	for _, name := range builtinTags {
		if present[name] {
			continue
		}
		if err := s.store.CreateTag(ctx, &tag.Tag{Name: name, IsCustom: false}); err != nil {
			return err
		}
	}
	return nil
}
