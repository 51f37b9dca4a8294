package shortener_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errStore = errors.New("store unavailable")

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, shortener.Location)

func fixedClock(t time.Time) shortener.Clock {
	return func() time.Time { return t }
}

// steppingClock advances by step on every call.
func steppingClock(start time.Time, step time.Duration) shortener.Clock {
	var mu sync.Mutex

	next := start

	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		now := next
		next = next.Add(step)

		return now
	}
}

// faultyStore wraps a MemoryStore and fails the configured operations.
type faultyStore struct {
	*store.MemoryStore

	existsErr    error
	alwaysExists bool
	insertErr    error
	incrementErr error
	clickErr     error
	listErr      error
	existsCalls  int
}

func (f *faultyStore) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	f.existsCalls++

	if f.existsErr != nil {
		return false, f.existsErr
	}

	if f.alwaysExists {
		return true, nil
	}

	return f.MemoryStore.Exists(ctx, code)
}

func (f *faultyStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	if f.insertErr != nil {
		return f.insertErr
	}

	return f.MemoryStore.Insert(ctx, link)
}

func (f *faultyStore) IncrementClicks(ctx context.Context, code shortener.Code) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}

	return f.MemoryStore.IncrementClicks(ctx, code)
}

func (f *faultyStore) InsertClick(ctx context.Context, click *shortener.ClickEvent) error {
	if f.clickErr != nil {
		return f.clickErr
	}

	return f.MemoryStore.InsertClick(ctx, click)
}

func (f *faultyStore) ListByOwner(ctx context.Context, owner uuid.UUID) ([]shortener.ShortLink, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.MemoryStore.ListByOwner(ctx, owner)
}

func newGenerator(t *testing.T, checker shortener.CodeChecker) *shortener.CodeGenerator {
	t.Helper()

	gen, err := shortener.NewCodeGenerator(checker, shortener.DefaultCodeOptions())
	require.NoError(t, err)

	return gen
}

func newLinker(t *testing.T, repo shortener.Repository, now shortener.Clock) *shortener.Linker {
	t.Helper()

	return shortener.NewLinker(repo, newGenerator(t, repo), "http://sho.rt/", now, zap.NewNop())
}
