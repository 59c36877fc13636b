package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/botforge/botforge/internal/adapter/otel"
	"github.com/botforge/botforge/internal/domain/chatbot"
	"github.com/botforge/botforge/internal/port/cache"
	"github.com/botforge/botforge/internal/port/database"
	"github.com/botforge/botforge/internal/port/messagequeue"
)

// ChatbotService manages chatbot lifecycle with per-user ownership scoping.
// Every read and mutation is resolved against the acting user's id; a chatbot
// owned by someone else behaves exactly like one that does not exist.
type ChatbotService struct {
	store    database.Store
	cache    cache.Cache
	queue    messagequeue.Queue
	metrics  *otel.Metrics
	ownerTTL time.Duration
}

// NewChatbotService creates a ChatbotService.
func NewChatbotService(store database.Store, c cache.Cache, queue messagequeue.Queue, metrics *otel.Metrics, ownerTTL time.Duration) *ChatbotService {
	return &ChatbotService{
		store:    store,
		cache:    c,
		queue:    queue,
		metrics:  metrics,
		ownerTTL: ownerTTL,
	}
}

// chatbotEvent is the lifecycle event payload published after mutations.
type chatbotEvent struct {
	ChatbotID string `json:"chatbot_id"`
	OwnerID   string `json:"owner_id"`
}

func (s *ChatbotService) Create(ctx context.Context, ownerID string, req chatbot.CreateRequest) (*chatbot.Chatbot, error) {
	ctx, span := otel.StartChatbotSpan(ctx, "chatbot.create", ownerID)
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.store.CreateChatbot(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	s.metrics.ChatbotsCreated.Add(ctx, 1)
	s.publish(ctx, messagequeue.SubjectChatbotCreated, b.ID, ownerID)
	slog.Info("chatbot created", "chatbot_id", b.ID, "owner_id", ownerID)
	return b, nil
}

func (s *ChatbotService) List(ctx context.Context, ownerID string) ([]chatbot.Chatbot, error) {
	return s.store.ListChatbotsByOwner(ctx, ownerID)
}

func (s *ChatbotService) Get(ctx context.Context, ownerID, id string) (*chatbot.Chatbot, error) {
	return s.store.GetChatbotForOwner(ctx, ownerID, id)
}

func (s *ChatbotService) Update(ctx context.Context, ownerID, id string, req chatbot.UpdateRequest) (*chatbot.Chatbot, error) {
	ctx, span := otel.StartChatbotSpan(ctx, "chatbot.update", ownerID)
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.store.GetChatbotForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		b.DisplayName = *req.DisplayName
	}
	if req.Domain != nil {
		b.Domain = *req.Domain
	}

	if err := s.store.UpdateChatbot(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, messagequeue.SubjectChatbotUpdated, b.ID, ownerID)
	return b, nil
}

func (s *ChatbotService) Delete(ctx context.Context, ownerID, id string) error {
	ctx, span := otel.StartChatbotSpan(ctx, "chatbot.delete", ownerID)
	defer span.End()

	if err := s.store.DeleteChatbotForOwner(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, ownerCacheKey(id)); err != nil {
		slog.Warn("owner cache invalidation failed", "chatbot_id", id, "error", err)
	}

	s.metrics.ChatbotsDeleted.Add(ctx, 1)
	s.publish(ctx, messagequeue.SubjectChatbotDeleted, id, ownerID)
	slog.Info("chatbot deleted", "chatbot_id", id, "owner_id", ownerID)
	return nil
}

// VerifyOwnership confirms that ownerID owns the chatbot, consulting the
// in-process cache before the store. A mismatch or missing chatbot yields
// domain.ErrNotFound; the failure is indistinguishable from a missing row.
func (s *ChatbotService) VerifyOwnership(ctx context.Context, ownerID, chatbotID string) error {
	key := ownerCacheKey(chatbotID)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		if string(cached) == ownerID {
			return nil
		}
		// Cached owner differs; fall through to the store in case
		// ownership data is stale.
	}

	b, err := s.store.GetChatbotForOwner(ctx, ownerID, chatbotID)
	if err != nil {
		s.metrics.OwnershipDenied.Add(ctx, 1)
		return err
	}

	if err := s.cache.Set(ctx, key, []byte(b.OwnerID), s.ownerTTL); err != nil {
		slog.Warn("owner cache set failed", "chatbot_id", chatbotID, "error", err)
	}
	return nil
}

// publish emits a lifecycle event. Event delivery is best effort and never
// fails the request that triggered it.
func (s *ChatbotService) publish(ctx context.Context, subject, chatbotID, ownerID string) {
	data, err := json.Marshal(chatbotEvent{ChatbotID: chatbotID, OwnerID: ownerID})
	if err != nil {
		slog.Warn("marshal chatbot event failed", "subject", subject, "error", err)
		return
	}
	if err := s.queue.Publish(ctx, subject, data); err != nil {
		slog.Warn("publish chatbot event failed", "subject", subject, "error", err)
	}
}

func ownerCacheKey(chatbotID string) string {
	return fmt.Sprintf("chatbot_owner:%s", chatbotID)
}
