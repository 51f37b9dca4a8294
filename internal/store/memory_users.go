package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/users"
)

// MemoryUserStore is an in-memory implementation of users.Repository.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*users.User
	byEmail map[string]uuid.UUID
}

// NewMemoryUserStore creates a new in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[uuid.UUID]*users.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (m *MemoryUserStore) Create(_ context.Context, user *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[user.Email]; ok {
		return users.ErrEmailTaken
	}

	stored := *user
	m.byID[user.ID] = &stored
	m.byEmail[user.Email] = user.ID

	return nil
}

func (m *MemoryUserStore) GetByEmail(_ context.Context, email string) (*users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, users.ErrNotFound
	}

	found := *m.byID[id]

	return &found, nil
}

func (m *MemoryUserStore) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}

	found := *user

	return &found, nil
}
