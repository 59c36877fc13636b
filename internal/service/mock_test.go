package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/botforge/botforge/internal/domain"
	"github.com/botforge/botforge/internal/domain/block"
	"github.com/botforge/botforge/internal/domain/chatbot"
	"github.com/botforge/botforge/internal/domain/tag"
	"github.com/botforge/botforge/internal/domain/user"
	"github.com/botforge/botforge/internal/port/cache"
	"github.com/botforge/botforge/internal/port/database"
	"github.com/botforge/botforge/internal/port/messagequeue"
)

// Ensure mockStore implements database.Store at compile time.
var _ database.Store = (*mockStore)(nil)

type scheduleRow struct {
	chatbotID string
	schedule  block.Schedule
}

// mockStore is a minimal in-memory implementation of database.Store for testing.
type mockStore struct {
	users     []user.User
	roles     []user.Role
	chatbots  []chatbot.Chatbot
	contacts  map[string]*block.Contact // chatbot id -> contact
	schedules []scheduleRow
	tags      []tag.Tag

	nextID int

	// Error hooks, set to inject failures.
	createChatbotErr  error
	createContactErr  error
	createScheduleErr error
	getUserErr        error
}

func newMockStore() *mockStore {
	return &mockStore{contacts: make(map[string]*block.Contact)}
}

func (m *mockStore) genID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// --- Users and roles ---

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	u.ID = m.genID("user")
	u.CreatedAt = time.Now()
	m.users = append(m.users, *u)
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	if m.getUserErr != nil {
		return nil, m.getUserErr
	}
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			return &m.users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListUsers(_ context.Context) ([]user.User, error) {
	return m.users, nil
}

func (m *mockStore) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) GetRoleByName(_ context.Context, name string) (*user.Role, error) {
	for i := range m.roles {
		if m.roles[i].Name == name {
			return &m.roles[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) EnsureRole(_ context.Context, name, description string) (*user.Role, error) {
	for i := range m.roles {
		if m.roles[i].Name == name {
			m.roles[i].Description = description
			return &m.roles[i], nil
		}
	}
	r := user.Role{ID: m.genID("role"), Name: name, Description: description}
	m.roles = append(m.roles, r)
	return &r, nil
}

// --- Chatbots ---

func (m *mockStore) CreateChatbot(_ context.Context, ownerID string, req chatbot.CreateRequest) (*chatbot.Chatbot, error) {
	if m.createChatbotErr != nil {
		return nil, m.createChatbotErr
	}
	b := chatbot.Chatbot{
		ID:          m.genID("bot"),
		OwnerID:     ownerID,
		DisplayName: req.DisplayName,
		Domain:      req.Domain,
		CreatedAt:   time.Now(),
	}
	m.chatbots = append(m.chatbots, b)
	return &b, nil
}

func (m *mockStore) ListChatbotsByOwner(_ context.Context, ownerID string) ([]chatbot.Chatbot, error) {
	var out []chatbot.Chatbot
	for _, b := range m.chatbots {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockStore) GetChatbotForOwner(_ context.Context, ownerID, id string) (*chatbot.Chatbot, error) {
	for i := range m.chatbots {
		if m.chatbots[i].ID == id && m.chatbots[i].OwnerID == ownerID {
			return &m.chatbots[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpdateChatbot(_ context.Context, b *chatbot.Chatbot) error {
	for i := range m.chatbots {
		if m.chatbots[i].ID == b.ID && m.chatbots[i].OwnerID == b.OwnerID {
			m.chatbots[i] = *b
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteChatbotForOwner(_ context.Context, ownerID, id string) error {
	for i := range m.chatbots {
		if m.chatbots[i].ID == id && m.chatbots[i].OwnerID == ownerID {
			m.chatbots = append(m.chatbots[:i], m.chatbots[i+1:]...)
			delete(m.contacts, id)
			var kept []scheduleRow
			for _, row := range m.schedules {
				if row.chatbotID != id {
					kept = append(kept, row)
				}
			}
			m.schedules = kept
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Contact block ---

func (m *mockStore) CreateContact(_ context.Context, chatbotID string, c *block.Contact) error {
	if m.createContactErr != nil {
		return m.createContactErr
	}
	if _, ok := m.contacts[chatbotID]; ok {
		return block.ErrContactExists
	}
	c.EntityID = m.genID("entity")
	stored := *c
	m.contacts[chatbotID] = &stored
	return nil
}

func (m *mockStore) GetContactByChatbot(_ context.Context, chatbotID string) (*block.Contact, error) {
	if c, ok := m.contacts[chatbotID]; ok {
		out := *c
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpdateContact(_ context.Context, c *block.Contact) error {
	for id, stored := range m.contacts {
		if stored.EntityID == c.EntityID {
			updated := *c
			m.contacts[id] = &updated
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Schedule blocks ---

func (m *mockStore) CreateSchedule(_ context.Context, chatbotID string, sc *block.Schedule) error {
	if m.createScheduleErr != nil {
		return m.createScheduleErr
	}
	sc.EntityID = m.genID("entity")
	m.schedules = append(m.schedules, scheduleRow{chatbotID: chatbotID, schedule: *sc})
	return nil
}

func (m *mockStore) ListSchedulesByChatbot(_ context.Context, chatbotID string) ([]block.Schedule, error) {
	out := []block.Schedule{}
	for _, row := range m.schedules {
		if row.chatbotID == chatbotID {
			out = append(out, row.schedule)
		}
	}
	return out, nil
}

func (m *mockStore) GetScheduleInChatbot(_ context.Context, chatbotID, entityID string) (*block.Schedule, error) {
	for i := range m.schedules {
		if m.schedules[i].chatbotID == chatbotID && m.schedules[i].schedule.EntityID == entityID {
			sc := m.schedules[i].schedule
			return &sc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpdateSchedule(_ context.Context, sc *block.Schedule) error {
	for i := range m.schedules {
		if m.schedules[i].schedule.EntityID == sc.EntityID {
			m.schedules[i].schedule = *sc
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteScheduleInChatbot(_ context.Context, chatbotID, entityID string) error {
	for i := range m.schedules {
		if m.schedules[i].chatbotID == chatbotID && m.schedules[i].schedule.EntityID == entityID {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Tags ---

func (m *mockStore) CreateTag(_ context.Context, t *tag.Tag) error {
	for _, existing := range m.tags {
		if existing.Name == t.Name {
			return domain.ErrConflict
		}
	}
	t.ID = m.genID("tag")
	m.tags = append(m.tags, *t)
	return nil
}

func (m *mockStore) ListTags(_ context.Context) ([]tag.Tag, error) {
	return m.tags, nil
}

func (m *mockStore) GetTag(_ context.Context, id string) (*tag.Tag, error) {
	for i := range m.tags {
		if m.tags[i].ID == id {
			return &m.tags[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpdateTag(_ context.Context, t *tag.Tag) error {
	for i := range m.tags {
		if m.tags[i].ID == t.ID {
			m.tags[i] = *t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteTag(_ context.Context, id string) error {
	for i := range m.tags {
		if m.tags[i].ID == id {
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Queue and cache fakes ---

var _ messagequeue.Queue = (*captureQueue)(nil)

// captureQueue records published subjects for assertion.
type captureQueue struct {
	mu       sync.Mutex
	subjects []string
}

func (q *captureQueue) Publish(_ context.Context, subject string, _ []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.subjects = append(q.subjects, subject)
	return nil
}

func (q *captureQueue) Close() error { return nil }

func (q *captureQueue) published() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.subjects...)
}

var _ cache.Cache = (*mapCache)(nil)

// mapCache is a TTL-less in-memory cache for testing.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}
