package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/botforge/botforge/internal/adapter/otel"
	"github.com/botforge/botforge/internal/domain"
	"github.com/botforge/botforge/internal/domain/block"
	"github.com/botforge/botforge/internal/port/database"
	"github.com/botforge/botforge/internal/port/messagequeue"
)

// ownershipVerifier gates block operations on chatbot ownership.
type ownershipVerifier interface {
	VerifyOwnership(ctx context.Context, ownerID, chatbotID string) error
}

// BlockService manages the content blocks attached to a chatbot: the
// singleton contact block and the schedule collection. Every operation runs
// the ownership gate before touching block state, so a caller probing someone
// else's chatbot learns nothing beyond "not found".
type BlockService struct {
	store   database.Store
	owners  ownershipVerifier
	queue   messagequeue.Queue
	metrics *otel.Metrics
}

// NewBlockService creates a BlockService.
func NewBlockService(store database.Store, owners ownershipVerifier, queue messagequeue.Queue, metrics *otel.Metrics) *BlockService {
	return &BlockService{
		store:   store,
		owners:  owners,
		queue:   queue,
		metrics: metrics,
	}
}

// blockEvent is the lifecycle event payload published after block mutations.
type blockEvent struct {
	ChatbotID string `json:"chatbot_id"`
	EntityID  string `json:"entity_id"`
}

// --- Contact block ---

// CreateContact attaches the contact block to a chatbot. A chatbot holds at
// most one; a second create is rejected with block.ErrContactExists.
func (s *BlockService) CreateContact(ctx context.Context, ownerID, chatbotID string, req block.CreateContactRequest) (*block.Contact, error) {
	ctx, span := otel.StartBlockSpan(ctx, "contact.create", chatbotID)
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.owners.VerifyOwnership(ctx, ownerID, chatbotID); err != nil {
		return nil, err
	}

	// Pre-check for the common case; the partial unique index in the store
	// catches the concurrent-create race.
	if _, err := s.store.GetContactByChatbot(ctx, chatbotID); err == nil {
		s.metrics.ContactConflicts.Add(ctx, 1)
		return nil, fmt.Errorf("chatbot %s: %w", chatbotID, block.ErrContactExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	c := &block.Contact{
		OrgName:     req.OrgName,
		Phone:       req.Phone,
		Email:       req.Email,
		AddressText: req.AddressText,
		City:        req.City,
		Country:     req.Country,
		HoursText:   req.HoursText,
	}

	if err := s.store.CreateContact(ctx, chatbotID, c); err != nil {
		if errors.Is(err, block.ErrContactExists) {
			s.metrics.ContactConflicts.Add(ctx, 1)
		}
		return nil, err
	}

	s.metrics.BlocksWritten.Add(ctx, 1)
	s.publish(ctx, messagequeue.SubjectContactCreated, chatbotID, c.EntityID)
	slog.Info("contact block created", "chatbot_id", chatbotID, "entity_id", c.EntityID)
	return c, nil
}

func (s *BlockService) GetContact(ctx context.Context, ownerID, chatbotID string) (*block.Contact, error) {
	if err := s.owners.VerifyOwnership(ctx, ownerID, chatbotID); err != nil {
		return nil, err
	}
	return s.store.GetContactByChatbot(ctx, chatbotID)
}

// UpdateContact merges the supplied fields onto the existing contact block.
func (s *BlockService) UpdateContact(ctx context.Context, ownerID, chatbotID string, req block.UpdateContactRequest) (*block.Contact, error) {
	ctx, span := otel.StartBlockSpan(ctx, "contact.update", chatbotID)
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.owners.VerifyOwnership(ctx, ownerID, chatbotID); err != nil {
		return nil, err
	}

	c, err := s.store.GetContactByChatbot(ctx, chatbotID)
	if err != nil {
		return nil, err
	}

	req.Apply(c)

	if err := s.store.UpdateContact(ctx, c); err != nil {
		return nil, err
	}

	s.metrics.BlocksWritten.Add(ctx, 1)
	s.publish(ctx, messagequeue.SubjectContactUpdated, chatbotID, c.EntityID)
	return c, nil
}

// --- Schedule blocks ---

// CreateSchedule appends a schedule block. Duplicate windows are allowed;
// only the open-before-close invariant is enforced.
func (s *BlockService) CreateSchedule(ctx context.Context, ownerID, chatbotID string, req block.CreateScheduleRequest) (*block.Schedule, error) {
	ctx, span := otel.StartBlockSpan(ctx, "schedule.create", chatbotID)
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.owners.VerifyOwnership(ctx, ownerID, chatbotID); err != nil {
		return nil, err
	}

	sc := &block.Schedule{
		Title:     req.Title,
		DayOfWeek: req.DayOfWeek,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		Notes:     req.Notes,
	}

	if err := s.store.CreateSchedule(ctx, chatbotID, sc); err != nil {
		return nil, err
	}

	s.metrics.BlocksWritten.Add(ctx, 1)
	s.publish(ctx, messagequeue.SubjectScheduleCreated, chatbotID, sc.EntityID)
	slog.Info("schedule block created", "chatbot_id", chatbotID, "entity_id", sc.EntityID)
	return sc, nil
}

func (s *BlockService) ListSchedules(ctx context.Context, ownerID, chatbotID string) ([]block.Schedule, error) {
	if err := s.owners.VerifyOwnership(ctx, ownerID, chatbotID); err != nil {
		return nil, err
	}
	return s.store.ListSchedulesByChatbot(ctx, chatbotID)
}

func (s *BlockService) GetSchedule(ctx context.Context, ownerID, chatbotID, entityID string) (*block.Schedule, error) {
	if err := s.owners.VerifyOwnership(ctx, ownerID, chatbotID); err != nil {
		return nil, err
	}
	return s.store.GetScheduleInChatbot(ctx, chatbotID, entityID)
}

// UpdateSchedule merges the supplied fields onto one schedule block. The
// merged time window is re-validated before anything is written.
func (s *BlockService) UpdateSchedule(ctx context.Context, ownerID, chatbotID, entityID string, req block.UpdateScheduleRequest) (*block.Schedule, error) {
	ctx, span := otel.StartBlockSpan(ctx, "schedule.update", chatbotID)
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.owners.VerifyOwnership(ctx, ownerID, chatbotID); err != nil {
		return nil, err
	}

	sc, err := s.store.GetScheduleInChatbot(ctx, chatbotID, entityID)
	if err != nil {
		return nil, err
	}

	if err := req.Apply(sc); err != nil {
		return nil, err
	}

	if err := s.store.UpdateSchedule(ctx, sc); err != nil {
		return nil, err
	}

	s.metrics.BlocksWritten.Add(ctx, 1)
	s.publish(ctx, messagequeue.SubjectScheduleUpdated, chatbotID, sc.EntityID)
	return sc, nil
}

// DeleteSchedule removes one schedule block. Deleting an already-deleted
// entity reports not found; the operation is not idempotent.
func (s *BlockService) DeleteSchedule(ctx context.Context, ownerID, chatbotID, entityID string) error {
	ctx, span := otel.StartBlockSpan(ctx, "schedule.delete", chatbotID)
	defer span.End()

	if err := s.owners.VerifyOwnership(ctx, ownerID, chatbotID); err != nil {
		return err
	}

	if err := s.store.DeleteScheduleInChatbot(ctx, chatbotID, entityID); err != nil {
		return err
	}

	s.metrics.BlocksWritten.Add(ctx, 1)
	s.publish(ctx, messagequeue.SubjectScheduleDeleted, chatbotID, entityID)
	slog.Info("schedule block deleted", "chatbot_id", chatbotID, "entity_id", entityID)
	return nil
}

// publish emits a lifecycle event. Event delivery is best effort and never
// fails the request that triggered it.
func (s *BlockService) publish(ctx context.Context, subject, chatbotID, entityID string) {
	data, err := json.Marshal(blockEvent{ChatbotID: chatbotID, EntityID: entityID})
	if err != nil {
		slog.Warn("marshal block event failed", "subject", subject, "error", err)
		return
	}
	if err := s.queue.Publish(ctx, subject, data); err != nil {
		slog.Warn("publish block event failed", "subject", subject, "error", err)
	}
}
