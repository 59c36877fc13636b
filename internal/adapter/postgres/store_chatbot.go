package postgres

import (
	"context"
	"fmt"

	"github.com/botforge/botforge/internal/domain/chatbot"
)

// All chatbot reads and deletes are scoped by owner_id in the WHERE clause
// so a chatbot owned by someone else is indistinguishable from a missing one.

func (s *Store) CreateChatbot(ctx context.Context, ownerID string, req chatbot.CreateRequest) (*chatbot.Chatbot, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO chatbots (owner_id, display_name, domain)
		 VALUES ($1, $2, $3)
		 RETURNING id, owner_id, display_name, domain, created_at`,
		ownerID, req.DisplayName, req.Domain)

	b, err := scanChatbot(row)
	if err != nil {
		return nil, fmt.Errorf("create chatbot: %w", err)
	}
	return &b, nil
}

func (s *Store) ListChatbotsByOwner(ctx context.Context, ownerID string) ([]chatbot.Chatbot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, display_name, domain, created_at
		 FROM chatbots WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list chatbots: %w", err)
	}
	defer rows.Close()

	var bots []chatbot.Chatbot
	for rows.Next() {
		b, err := scanChatbot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chatbot: %w", err)
		}
		bots = append(bots, b)
	}
	return orEmpty(bots), rows.Err()
}

func (s *Store) GetChatbotForOwner(ctx context.Context, ownerID, id string) (*chatbot.Chatbot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, display_name, domain, created_at
		 FROM chatbots WHERE id = $1 AND owner_id = $2`, id, ownerID)

	b, err := scanChatbot(row)
	if err != nil {
		return nil, notFoundWrap(err, "get chatbot %s", id)
	}
	return &b, nil
}

func (s *Store) UpdateChatbot(ctx context.Context, b *chatbot.Chatbot) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE chatbots SET display_name = $2, domain = $3
		 WHERE id = $1 AND owner_id = $4`,
		b.ID, b.DisplayName, b.Domain, b.OwnerID)
	return execExpectOne(tag, err, "update chatbot %s", b.ID)
}

// DeleteChatbotForOwner removes the chatbot row. Attached block entities and
// their payloads go with it through ON DELETE CASCADE.
func (s *Store) DeleteChatbotForOwner(ctx context.Context, ownerID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM chatbots WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return execExpectOne(tag, err, "delete chatbot %s", id)
}

func scanChatbot(row scannable) (chatbot.Chatbot, error) {
	var b chatbot.Chatbot
	err := row.Scan(&b.ID, &b.OwnerID, &b.DisplayName, &b.Domain, &b.CreatedAt)
	return b, err
}
