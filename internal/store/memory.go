package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu     sync.RWMutex
	links  map[shortener.Code]*shortener.ShortLink
	clicks map[shortener.Code][]shortener.ClickEvent
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links:  make(map[shortener.Code]*shortener.ShortLink),
		clicks: make(map[shortener.Code][]shortener.ClickEvent),
	}
}

func (m *MemoryStore) Exists(_ context.Context, code shortener.Code) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.links[code]

	return ok, nil
}

func (m *MemoryStore) Insert(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[link.Code]; ok {
		return shortener.ErrCodeConflict
	}

	stored := *link
	m.links[link.Code] = &stored

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	found := *link

	return &found, nil
}

func (m *MemoryStore) GetOwned(_ context.Context, code shortener.Code, owner uuid.UUID) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok || link.OwnerID != owner {
		return nil, shortener.ErrNotFound
	}

	found := *link

	return &found, nil
}

func (m *MemoryStore) ListByOwner(_ context.Context, owner uuid.UUID) ([]shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	links := make([]shortener.ShortLink, 0)

	for _, link := range m.links {
		if link.OwnerID == owner {
			links = append(links, *link)
		}
	}

	slices.SortFunc(links, func(a, b shortener.ShortLink) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.Code, b.Code)
	})

	return links, nil
}

func (m *MemoryStore) IncrementClicks(_ context.Context, code shortener.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return shortener.ErrNotFound
	}

	link.ClickCount++
	link.UpdatedAt = time.Now()

	return nil
}

func (m *MemoryStore) InsertClick(_ context.Context, click *shortener.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[click.Code]; !ok {
		return shortener.ErrNotFound
	}

	m.clicks[click.Code] = append(m.clicks[click.Code], *click)

	return nil
}

func (m *MemoryStore) ListClicks(_ context.Context, code shortener.Code) ([]shortener.ClickEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clicks := slices.Clone(m.clicks[code])
	if clicks == nil {
		clicks = make([]shortener.ClickEvent, 0)
	}

	slices.SortStableFunc(clicks, func(a, b shortener.ClickEvent) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	return clicks, nil
}
