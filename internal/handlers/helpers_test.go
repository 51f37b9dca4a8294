package handlers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/auth"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() messaging.Publish[T] {
	return func(context.Context, *T) error { return nil }
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(context.Context, *T) error { return err }
}

// capturePublish records every published event.
type capturePublish[T any] struct {
	mu     sync.Mutex
	events []*T
}

func (c *capturePublish[T]) publish(_ context.Context, event *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, event)

	return nil
}

type fakeRecorder struct {
	mu        sync.Mutex
	created   int
	redirects map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{redirects: map[string]int{}}
}

func (r *fakeRecorder) LinkCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.created++
}

func (r *fakeRecorder) Redirect(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.redirects[outcome]++
}

type linkFixture struct {
	store    *store.MemoryStore
	handler  *handlers.LinkHandler
	recorder *fakeRecorder
	created  *capturePublish[analytics.LinkCreatedEvent]
	visited  *capturePublish[analytics.LinkVisitedEvent]
}

func newLinkFixture(t *testing.T, now time.Time) *linkFixture {
	t.Helper()

	repo := store.NewMemoryStore()
	clock := func() time.Time { return now }

	gen, err := shortener.NewCodeGenerator(repo, shortener.DefaultCodeOptions())
	require.NoError(t, err)

	f := &linkFixture{
		store:    repo,
		recorder: newFakeRecorder(),
		created:  &capturePublish[analytics.LinkCreatedEvent]{},
		visited:  &capturePublish[analytics.LinkVisitedEvent]{},
	}

	f.handler = handlers.NewLinkHandler(
		shortener.NewLinker(repo, gen, "http://localhost:8888", clock, zap.NewNop()),
		shortener.NewResolver(repo, clock, zap.NewNop()),
		f.created.publish,
		f.visited.publish,
		f.recorder,
		zap.NewNop(),
	)

	return f
}

func asUser(id uuid.UUID) context.Context {
	return auth.ContextWithIdentity(context.Background(), auth.Identity{UserID: id, Email: "ada@example.com"})
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	var se huma.StatusError

	require.ErrorAs(t, err, &se)
	assert.Equal(t, status, se.GetStatus())
}
