// Package database defines the persistence port (interface).
package database

import (
	"context"

	"github.com/botforge/botforge/internal/domain/block"
	"github.com/botforge/botforge/internal/domain/chatbot"
	"github.com/botforge/botforge/internal/domain/tag"
	"github.com/botforge/botforge/internal/domain/user"
)

// Store is the port interface implemented by the persistence adapter.
// Chatbot reads take the owner id so that ownership and existence are
// resolved in one query; a non-owned row is reported as domain.ErrNotFound.
type Store interface {
	// Users and roles
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	GetRoleByName(ctx context.Context, name string) (*user.Role, error)
	EnsureRole(ctx context.Context, name, description string) (*user.Role, error)

	// Chatbots
	CreateChatbot(ctx context.Context, ownerID string, req chatbot.CreateRequest) (*chatbot.Chatbot, error)
	ListChatbotsByOwner(ctx context.Context, ownerID string) ([]chatbot.Chatbot, error)
	GetChatbotForOwner(ctx context.Context, ownerID, id string) (*chatbot.Chatbot, error)
	UpdateChatbot(ctx context.Context, b *chatbot.Chatbot) error
	DeleteChatbotForOwner(ctx context.Context, ownerID, id string) error

	// Contact block (singleton per chatbot)
	CreateContact(ctx context.Context, chatbotID string, c *block.Contact) error
	GetContactByChatbot(ctx context.Context, chatbotID string) (*block.Contact, error)
	UpdateContact(ctx context.Context, c *block.Contact) error

	// Schedule blocks (collection per chatbot)
	CreateSchedule(ctx context.Context, chatbotID string, s *block.Schedule) error
	ListSchedulesByChatbot(ctx context.Context, chatbotID string) ([]block.Schedule, error)
	GetScheduleInChatbot(ctx context.Context, chatbotID, entityID string) (*block.Schedule, error)
	UpdateSchedule(ctx context.Context, s *block.Schedule) error
	DeleteScheduleInChatbot(ctx context.Context, chatbotID, entityID string) error

	// Tags
	CreateTag(ctx context.Context, t *tag.Tag) error
	ListTags(ctx context.Context) ([]tag.Tag, error)
	GetTag(ctx context.Context, id string) (*tag.Tag, error)
	UpdateTag(ctx context.Context, t *tag.Tag) error
	DeleteTag(ctx context.Context, id string) error
}
