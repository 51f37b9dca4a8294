package messaging

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Handler processes one decoded event.
type Handler[T any] func(ctx context.Context, event *T) error

// Consumer decodes JSON messages from one topic and hands them to a Handler.
// Handler errors are nacked for redelivery; payloads that cannot be decoded
// are acked and dropped.
type Consumer[T any] struct {
	subscriber message.Subscriber
	topic      string
	handler    Handler[T]
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewConsumer creates a consumer for events of type T on topic.
func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handler Handler[T],
	logger *zap.Logger,
) *Consumer[T] {
	return &Consumer[T]{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger.With(zap.String("topic", topic)),
		done:       make(chan struct{}),
	}
}

// Topic returns the subscribed topic.
func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Start subscribes and processes messages in the background until
// Shutdown or ctx is done.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		c.cancel()
		close(c.done)

		return err
	}

	go c.run(ctx, msgs)

	return nil
}

func (c *Consumer[T]) run(ctx context.Context, msgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			c.process(ctx, msg)
		}
	}
}

func (c *Consumer[T]) process(ctx context.Context, msg *message.Message) {
	logger := c.logger.With(zap.String("messageId", msg.UUID))

	var event T
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		logger.Error("dropping undecodable message", zap.Error(err))
		msg.Ack()

		return
	}

	if err := c.handler(ctx, &event); err != nil {
		logger.Warn("handler failed, message will be redelivered", zap.Error(err))
		msg.Nack()

		return
	}

	msg.Ack()
	logger.Debug("message processed")
}

// Shutdown stops consuming and waits for the in-flight message.
func (c *Consumer[T]) Shutdown() error {
	if c.cancel == nil {
		return nil
	}

	c.cancel()
	<-c.done

	return nil
}
