package analytics

import "time"

const (
	TopicLinkCreated = "link.created"
	TopicLinkVisited = "link.visited"
)

// LinkCreatedEvent is emitted after a short link is stored.
type LinkCreatedEvent struct {
	Code           string     `json:"code"`
	OwnerID        string     `json:"ownerId"`
	DestinationURL string     `json:"destinationUrl"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// LinkVisitedEvent is emitted after a redirection was recorded.
type LinkVisitedEvent struct {
	Code      string    `json:"code"`
	VisitedAt time.Time `json:"visitedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referer   string    `json:"referer"`
}
