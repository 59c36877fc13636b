package postgres

import (
	"context"
	"fmt"

	"github.com/botforge/botforge/internal/domain"
	"github.com/botforge/botforge/internal/domain/tag"
)

// --- Tags ---

func (s *Store) CreateTag(ctx context.Context, t *tag.Tag) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tags (name, is_custom) VALUES ($1, $2) RETURNING id`,
		t.Name, t.IsCustom,
	).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("create tag %s: %w", t.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create tag %s: %w", t.Name, err)
	}
	return nil
}

func (s *Store) ListTags(ctx context.Context) ([]tag.Tag, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, is_custom FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []tag.Tag
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.IsCustom); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return orEmpty(tags), rows.Err()
}

func (s *Store) GetTag(ctx context.Context, id string) (*tag.Tag, error) {
	var t tag.Tag
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, is_custom FROM tags WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.IsCustom)
	if err != nil {
		return nil, notFoundWrap(err, "get tag %s", id)
	}
	return &t, nil
}

func (s *Store) UpdateTag(ctx context.Context, t *tag.Tag) error {
	ct, err := s.pool.Exec(ctx,
		`UPDATE tags SET name = $2 WHERE id = $1`, t.ID, t.Name)
	if err != nil && isUniqueViolation(err, "") {
		return fmt.Errorf("update tag %s: %w", t.ID, domain.ErrConflict)
	}
	return execExpectOne(ct, err, "update tag %s", t.ID)
}

func (s *Store) DeleteTag(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	return execExpectOne(ct, err, "delete tag %s", id)
}
