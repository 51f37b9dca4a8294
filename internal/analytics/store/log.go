package store

import (
	"context"

	"github.com/serroba/shortlink/internal/analytics"
	"go.uber.org/zap"
)

// Log is an analytics.Store that writes every event to the log.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a logging analytics store.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	fields := []zap.Field{
		zap.String("code", event.Code),
		zap.String("ownerId", event.OwnerID),
		zap.String("destinationUrl", event.DestinationURL),
		zap.Time("createdAt", event.CreatedAt),
	}

	if event.ExpiresAt != nil {
		fields = append(fields, zap.Time("expiresAt", *event.ExpiresAt))
	}

	l.logger.Info("link created", fields...)

	return nil
}

func (l *Log) SaveLinkVisited(_ context.Context, event *analytics.LinkVisitedEvent) error {
	l.logger.Info("link visited",
		zap.String("code", event.Code),
		zap.Time("visitedAt", event.VisitedAt),
		zap.String("clientIp", event.ClientIP),
		zap.String("referer", event.Referer),
	)

	return nil
}
