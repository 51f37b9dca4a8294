package shortener

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolver serves redirections and the owner-facing analytics views.
type Resolver struct {
	links  Repository
	now    Clock
	logger *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(links Repository, now Clock, logger *zap.Logger) *Resolver {
	return &Resolver{links: links, now: now, logger: logger}
}

// Resolution is the outcome of a successful redirect: where to send the
// visitor and the click that was recorded for it.
type Resolution struct {
	DestinationURL string
	Click          ClickEvent
}

// Resolve looks up code, refuses expired links and records the visit.
// A failed click event insert is logged; the counter has already moved
// and the visitor is still redirected.
func (r *Resolver) Resolve(ctx context.Context, code Code, visit Visit) (*Resolution, error) {
	link, err := r.links.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrLinkNotFound
		}

		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	now := r.now().In(Location)

	if IsExpired(link.ExpiresAt, now) {
		return nil, ErrLinkExpired
	}

	if err := r.links.IncrementClicks(ctx, code); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	referer := visit.Referer
	if referer == "" {
		referer = DirectReferer
	}

	click := &ClickEvent{
		ID:        uuid.New(),
		Code:      code,
		Timestamp: now,
		IPAddress: visit.IPAddress,
		UserAgent: visit.UserAgent,
		Referer:   referer,
	}

	if err := r.links.InsertClick(ctx, click); err != nil {
		r.logger.Error("click counted but event not recorded",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}

	return &Resolution{DestinationURL: link.DestinationURL, Click: *click}, nil
}

// ListForOwner returns the owner's links, newest first.
func (r *Resolver) ListForOwner(ctx context.Context, owner uuid.UUID) ([]ShortLink, error) {
	links, err := r.links.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return links, nil
}

// Stats returns a link and its clicks when owner created it. A missing
// code and a foreign code are indistinguishable to the caller.
func (r *Resolver) Stats(ctx context.Context, code Code, owner uuid.UUID) (*Stats, error) {
	link, err := r.links.GetOwned(ctx, code, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}

		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	clicks, err := r.links.ListClicks(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return &Stats{Link: *link, Clicks: clicks}, nil
}
