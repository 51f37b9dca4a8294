package shortener

import (
	"time"

	"github.com/google/uuid"
)

// Code represents a short link code.
type Code string

// DirectReferer is recorded when a visit carries no Referer header.
const DirectReferer = "direct"

// ShortLink is a code mapped to a destination URL and owned by a user.
type ShortLink struct {
	Code           Code
	OwnerID        uuid.UUID
	DestinationURL string
	PublicURL      string
	ExpiresAt      *time.Time // nil never expires
	ClickCount     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ClickEvent is one recorded visit of a short link.
type ClickEvent struct {
	ID        uuid.UUID
	Code      Code
	Timestamp time.Time
	IPAddress string
	UserAgent string
	Referer   string
}

// Visit carries the request details captured for a redirection.
type Visit struct {
	IPAddress string
	UserAgent string
	Referer   string
}

// Stats is a link together with its click history, newest first.
type Stats struct {
	Link   ShortLink
	Clicks []ClickEvent
}
