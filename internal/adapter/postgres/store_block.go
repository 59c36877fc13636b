package postgres

import (
	"context"
	"fmt"

	"github.com/botforge/botforge/internal/domain/block"
)

// Block writes go through block_entities first: the entity row carries the
// chatbot join and the block type, the payload row shares its primary key.
// Both inserts run in one transaction so a failed payload insert leaves no
// orphaned entity behind.

// CreateContact inserts the contact entity and payload. The partial unique
// index on block_entities enforces the one-contact-per-chatbot invariant at
// the storage layer; a violation surfaces as block.ErrContactExists.
func (s *Store) CreateContact(ctx context.Context, chatbotID string, c *block.Contact) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	err = tx.QueryRow(ctx,
		`INSERT INTO block_entities (chatbot_id, block_type)
		 VALUES ($1, $2) RETURNING id`,
		chatbotID, string(block.TypeContact),
	).Scan(&c.EntityID)
	if err != nil {
		if isUniqueViolation(err, "block_entities_contact_singleton") {
			return fmt.Errorf("create contact for chatbot %s: %w", chatbotID, block.ErrContactExists)
		}
		return fmt.Errorf("insert contact entity: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO contact_blocks (entity_id, org_name, phone, email, address_text, city, country, hours_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.EntityID, c.OrgName, c.Phone, c.Email, c.AddressText, c.City, c.Country, c.HoursText)
	if err != nil {
		return fmt.Errorf("insert contact payload: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *Store) GetContactByChatbot(ctx context.Context, chatbotID string) (*block.Contact, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT cb.entity_id, cb.org_name, cb.phone, cb.email, cb.address_text, cb.city, cb.country, cb.hours_text
		 FROM contact_blocks cb
		 JOIN block_entities be ON be.id = cb.entity_id
		 WHERE be.chatbot_id = $1 AND be.block_type = $2`,
		chatbotID, string(block.TypeContact))

	c, err := scanContact(row)
	if err != nil {
		return nil, notFoundWrap(err, "get contact for chatbot %s", chatbotID)
	}
	return &c, nil
}

func (s *Store) UpdateContact(ctx context.Context, c *block.Contact) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contact_blocks
		 SET org_name = $2, phone = $3, email = $4, address_text = $5, city = $6, country = $7, hours_text = $8
		 WHERE entity_id = $1`,
		c.EntityID, c.OrgName, c.Phone, c.Email, c.AddressText, c.City, c.Country, c.HoursText)
	return execExpectOne(tag, err, "update contact %s", c.EntityID)
}

func (s *Store) CreateSchedule(ctx context.Context, chatbotID string, sc *block.Schedule) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	err = tx.QueryRow(ctx,
		`INSERT INTO block_entities (chatbot_id, block_type)
		 VALUES ($1, $2) RETURNING id`,
		chatbotID, string(block.TypeSchedule),
	).Scan(&sc.EntityID)
	if err != nil {
		return fmt.Errorf("insert schedule entity: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO schedule_blocks (entity_id, title, day_of_week, open_time, close_time, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sc.EntityID, sc.Title, sc.DayOfWeek, sc.OpenTime, sc.CloseTime, sc.Notes)
	if err != nil {
		return fmt.Errorf("insert schedule payload: %w", err)
	}

	return tx.Commit(ctx)
}

// ListSchedulesByChatbot returns the chatbot's schedules in stable insertion
// order, with the entity id breaking created_at ties.
func (s *Store) ListSchedulesByChatbot(ctx context.Context, chatbotID string) ([]block.Schedule, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sb.entity_id, sb.title, sb.day_of_week, sb.open_time, sb.close_time, sb.notes
		 FROM schedule_blocks sb
		 JOIN block_entities be ON be.id = sb.entity_id
		 WHERE be.chatbot_id = $1
		 ORDER BY be.created_at ASC, be.id ASC`, chatbotID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []block.Schedule
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, sc)
	}
	return orEmpty(schedules), rows.Err()
}

// GetScheduleInChatbot resolves membership and existence in one query: an
// entity id that belongs to a different chatbot reads as not found.
func (s *Store) GetScheduleInChatbot(ctx context.Context, chatbotID, entityID string) (*block.Schedule, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT sb.entity_id, sb.title, sb.day_of_week, sb.open_time, sb.close_time, sb.notes
		 FROM schedule_blocks sb
		 JOIN block_entities be ON be.id = sb.entity_id
		 WHERE sb.entity_id = $1 AND be.chatbot_id = $2`, entityID, chatbotID)

	sc, err := scanSchedule(row)
	if err != nil {
		return nil, notFoundWrap(err, "get schedule %s", entityID)
	}
	return &sc, nil
}

func (s *Store) UpdateSchedule(ctx context.Context, sc *block.Schedule) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE schedule_blocks
		 SET title = $2, day_of_week = $3, open_time = $4, close_time = $5, notes = $6
		 WHERE entity_id = $1`,
		sc.EntityID, sc.Title, sc.DayOfWeek, sc.OpenTime, sc.CloseTime, sc.Notes)
	return execExpectOne(tag, err, "update schedule %s", sc.EntityID)
}

// DeleteScheduleInChatbot deletes the entity row; the payload row cascades.
func (s *Store) DeleteScheduleInChatbot(ctx context.Context, chatbotID, entityID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM block_entities
		 WHERE id = $1 AND chatbot_id = $2 AND block_type = $3`,
		entityID, chatbotID, string(block.TypeSchedule))
	return execExpectOne(tag, err, "delete schedule %s", entityID)
}

func scanContact(row scannable) (block.Contact, error) {
	var c block.Contact
	err := row.Scan(&c.EntityID, &c.OrgName, &c.Phone, &c.Email, &c.AddressText, &c.City, &c.Country, &c.HoursText)
	return c, err
}

func scanSchedule(row scannable) (block.Schedule, error) {
	var sc block.Schedule
	err := row.Scan(&sc.EntityID, &sc.Title, &sc.DayOfWeek, &sc.OpenTime, &sc.CloseTime, &sc.Notes)
	return sc, err
}
