package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// MetadataTopic is set on every published message.
const MetadataTopic = "topic"

// Publish sends a typed event to the topic it was bound to.
type Publish[T any] func(ctx context.Context, event *T) error

// NewPublishFunc binds a JSON publish function for T to a topic.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(ctx context.Context, event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set(MetadataTopic, topic)
		msg.SetContext(ctx)

		return publisher.Publish(topic, msg)
	}
}

// PublisherGroup owns the publisher shared by all publish functions.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup creates a new publisher group.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher returns the shared publisher.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
