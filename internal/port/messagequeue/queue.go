// Package messagequeue defines the message queue port (interface).
package messagequeue

import "context"

// Queue is the port interface for publishing lifecycle events.
type Queue interface {
	// Publish sends a message to the given subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Close shuts down the queue connection.
	Close() error
}

// Subject constants for lifecycle events published after successful mutations.
const (
	SubjectChatbotCreated = "chatbots.created"
	SubjectChatbotUpdated = "chatbots.updated"
	SubjectChatbotDeleted = "chatbots.deleted"

	SubjectContactCreated  = "blocks.contact.created"
	SubjectContactUpdated  = "blocks.contact.updated"
	SubjectScheduleCreated = "blocks.schedule.created"
	SubjectScheduleUpdated = "blocks.schedule.updated"
	SubjectScheduleDeleted = "blocks.schedule.deleted"
)
