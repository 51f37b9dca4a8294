package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/auth"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/metrics"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// Recorder counts link and redirect outcomes.
type Recorder interface {
	LinkCreated()
	Redirect(outcome string)
}

// LinkHandler serves link creation, redirection and owner statistics.
type LinkHandler struct {
	linker             *shortener.Linker
	resolver           *shortener.Resolver
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent]
	publishLinkVisited messaging.Publish[analytics.LinkVisitedEvent]
	recorder           Recorder
	logger             *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	linker *shortener.Linker,
	resolver *shortener.Resolver,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishLinkVisited messaging.Publish[analytics.LinkVisitedEvent],
	recorder Recorder,
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		linker:             linker,
		resolver:           resolver,
		publishLinkCreated: publishLinkCreated,
		publishLinkVisited: publishLinkVisited,
		recorder:           recorder,
		logger:             logger,
	}
}

func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	link, err := h.linker.Create(ctx, shortener.CreateLinkInput{
		Code:           shortener.Code(req.Body.ShortCode),
		DestinationURL: req.Body.OriginalURL,
		ExpiresAt:      req.Body.ExpiresAt,
		OwnerID:        owner,
	})
	if err != nil {
		return nil, h.linkError(err, req.Body.ShortCode)
	}

	h.recorder.LinkCreated()

	event := &analytics.LinkCreatedEvent{
		Code:           string(link.Code),
		OwnerID:        owner.String(),
		DestinationURL: link.DestinationURL,
		ExpiresAt:      link.ExpiresAt,
		CreatedAt:      link.CreatedAt,
	}

	if err := h.publishLinkCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	resp := &CreateLinkResponse{Location: link.PublicURL}
	resp.Body.Message = "Short URL created successfully"
	resp.Body.ShortURL = link.PublicURL
	resp.Body.ShortCode = string(link.Code)

	return resp, nil
}

func (h *LinkHandler) ListMyLinks(ctx context.Context, _ *struct{}) (*ListLinksResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	links, err := h.resolver.ListForOwner(ctx, owner)
	if err != nil {
		return nil, h.linkError(err, "")
	}

	resp := &ListLinksResponse{}
	resp.Body.Message = "URLs retrieved successfully"
	resp.Body.Results = lo.Map(links, func(link shortener.ShortLink, _ int) LinkView {
		return toLinkView(&link)
	})
	resp.Body.Count = len(resp.Body.Results)

	return resp, nil
}

func (h *LinkHandler) LinkStats(ctx context.Context, req *StatsRequest) (*StatsResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := h.resolver.Stats(ctx, shortener.Code(req.Code), owner)
	if err != nil {
		return nil, h.linkError(err, req.Code)
	}

	resp := &StatsResponse{}
	resp.Body.LinkView = toLinkView(&stats.Link)
	resp.Body.Clicks = lo.Map(stats.Clicks, func(click shortener.ClickEvent, _ int) ClickView {
		return ClickView{
			ID:        click.ID.String(),
			Timestamp: click.Timestamp,
			IPAddress: click.IPAddress,
			UserAgent: click.UserAgent,
			Referer:   click.Referer,
		}
	})

	return resp, nil
}

func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	meta := RequestMetaFromContext(ctx)

	resolution, err := h.resolver.Resolve(ctx, shortener.Code(req.Code), shortener.Visit{
		IPAddress: meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referer:   meta.Referer,
	})
	if err != nil {
		h.recorder.Redirect(redirectOutcome(err))

		return nil, h.linkError(err, req.Code)
	}

	h.recorder.Redirect(metrics.OutcomeRedirected)

	click := resolution.Click
	event := &analytics.LinkVisitedEvent{
		Code:      string(click.Code),
		VisitedAt: click.Timestamp,
		ClientIP:  click.IPAddress,
		UserAgent: click.UserAgent,
		Referer:   click.Referer,
	}

	if err := h.publishLinkVisited(ctx, event); err != nil {
		h.logger.Error("failed to publish link visited event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusMovedPermanently,
		Location: resolution.DestinationURL,
	}, nil
}

func (h *LinkHandler) linkError(err error, code string) error {
	switch {
	case errors.Is(err, shortener.ErrInvalidExpiry):
		return huma.Error400BadRequest("Expiration date must be in the future and formatted as dd/mm/yyyy or dd/mm/yyyy hh:mm")
	case errors.Is(err, shortener.ErrInvalidDestination):
		return huma.Error400BadRequest("originalUrl must be an absolute http or https URL")
	case errors.Is(err, shortener.ErrCodeConflict):
		return huma.Error409Conflict("shortCode already exists, please change it")
	case errors.Is(err, shortener.ErrLinkNotFound):
		return huma.Error404NotFound("Short link not found")
	case errors.Is(err, shortener.ErrLinkExpired):
		return huma.NewError(http.StatusGone, "Short link has expired")
	case errors.Is(err, shortener.ErrNotFoundOrForbidden):
		return huma.Error404NotFound("Short link not found or access denied")
	}

	h.logger.Error("link operation failed", zap.String("code", code), zap.Error(err))

	return huma.Error500InternalServerError("Server error")
}

func redirectOutcome(err error) string {
	switch {
	case errors.Is(err, shortener.ErrLinkNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, shortener.ErrLinkExpired):
		return metrics.OutcomeExpired
	default:
		return metrics.OutcomeError
	}
}

func ownerFromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return uuid.Nil, huma.Error401Unauthorized("No token, authorization has been denied")
	}

	return id.UserID, nil
}

func toLinkView(link *shortener.ShortLink) LinkView {
	return LinkView{
		ShortCode:   string(link.Code),
		OriginalURL: link.DestinationURL,
		ShortURL:    link.PublicURL,
		ExpiresAt:   link.ExpiresAt,
		ClickCount:  link.ClickCount,
		CreatedAt:   link.CreatedAt,
		UpdatedAt:   link.UpdatedAt,
	}
}
