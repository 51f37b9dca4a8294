package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// Store receives analytics events from the bus.
type Store interface {
	SaveLinkCreated(ctx context.Context, event *LinkCreatedEvent) error
	SaveLinkVisited(ctx context.Context, event *LinkVisitedEvent) error
}

// NewConsumers returns one consumer per analytics topic, all feeding store.
func NewConsumers(subscriber message.Subscriber, store Store, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer[LinkCreatedEvent](subscriber, TopicLinkCreated, store.SaveLinkCreated, logger),
		messaging.NewConsumer[LinkVisitedEvent](subscriber, TopicLinkVisited, store.SaveLinkVisited, logger),
	}
}
