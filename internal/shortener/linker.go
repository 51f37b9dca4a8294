package shortener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateLinkInput describes a link to create. Empty Code asks for a
// generated one and empty ExpiresAt means the link never expires.
type CreateLinkInput struct {
	Code           Code
	DestinationURL string
	ExpiresAt      string
	OwnerID        uuid.UUID
}

// Linker creates short links.
type Linker struct {
	links   Repository
	codes   *CodeGenerator
	baseURL string
	now     Clock
	logger  *zap.Logger
}

// NewLinker creates a Linker that publishes links under baseURL.
func NewLinker(links Repository, codes *CodeGenerator, baseURL string, now Clock, logger *zap.Logger) *Linker {
	return &Linker{
		links:   links,
		codes:   codes,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     now,
		logger:  logger,
	}
}

// PublicURL returns the address a code is served under.
func (l *Linker) PublicURL(code Code) string {
	return l.baseURL + "/" + string(code)
}

// Create validates the input, picks or checks the code and stores the link.
func (l *Linker) Create(ctx context.Context, in CreateLinkInput) (*ShortLink, error) {
	if err := validateDestination(in.DestinationURL); err != nil {
		return nil, err
	}

	now := l.now().In(Location)

	var expiresAt *time.Time

	if in.ExpiresAt != "" {
		t, err := ParseExpiry(in.ExpiresAt)
		if err != nil {
			return nil, err
		}

		if t.Before(now) {
			return nil, fmt.Errorf("%w: %s is in the past", ErrInvalidExpiry, t.Format(expiryDateTimeLayout))
		}

		expiresAt = &t
	}

	code := in.Code
	if code == "" {
		generated, err := l.codes.Generate(ctx)
		if err != nil {
			return nil, err
		}

		code = generated
	}

	exists, err := l.links.Exists(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if exists {
		return nil, ErrCodeConflict
	}

	link := &ShortLink{
		Code:           code,
		OwnerID:        in.OwnerID,
		DestinationURL: in.DestinationURL,
		PublicURL:      l.PublicURL(code),
		ExpiresAt:      expiresAt,
		ClickCount:     0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := l.links.Insert(ctx, link); err != nil {
		if errors.Is(err, ErrCodeConflict) {
			return nil, ErrCodeConflict
		}

		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	l.logger.Debug("short link created",
		zap.String("code", string(code)),
		zap.Stringer("owner", in.OwnerID),
	)

	return link, nil
}

func validateDestination(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDestination, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidDestination
	}

	return nil
}
