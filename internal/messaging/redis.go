package messaging

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisPublisher creates a publisher writing to Redis streams.
func NewRedisPublisher(client redis.UniversalClient, logger *zap.Logger) (message.Publisher, error) {
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client:     client,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		},
		NewZapLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create redis stream publisher: %w", err)
	}

	return publisher, nil
}

// NewRedisSubscriber creates a subscriber reading Redis streams as part of
// consumerGroup, so several consumer processes share the work.
func NewRedisSubscriber(client redis.UniversalClient, consumerGroup string, logger *zap.Logger) (message.Subscriber, error) {
	subscriber, err := redisstream.NewSubscriber(
		redisstream.SubscriberConfig{
			Client:        client,
			Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
			ConsumerGroup: consumerGroup,
		},
		NewZapLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create redis stream subscriber: %w", err)
	}

	return subscriber, nil
}
