package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	messages   []*message.Message
	topic      string
	publishErr error
	closeErr   error
}

func (m *mockPublisher) Publish(topic string, msgs ...*message.Message) error {
	if m.publishErr != nil {
		return m.publishErr
	}

	m.topic = topic
	m.messages = append(m.messages, msgs...)

	return nil
}

func (m *mockPublisher) Close() error {
	return m.closeErr
}

type publishTestEvent struct {
	Code string `json:"code"`
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("publishes json payload to the bound topic", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := messaging.NewPublishFunc[publishTestEvent](mock, "link.created")

		err := publish(context.Background(), &publishTestEvent{Code: "abc123"})

		require.NoError(t, err)
		assert.Equal(t, "link.created", mock.topic)
		require.Len(t, mock.messages, 1)
		assert.JSONEq(t, `{"code":"abc123"}`, string(mock.messages[0].Payload))
		assert.Equal(t, "link.created", mock.messages[0].Metadata.Get(messaging.MetadataTopic))
		assert.NotEmpty(t, mock.messages[0].UUID)
	})

	t.Run("returns error when publish fails", func(t *testing.T) {
		mock := &mockPublisher{publishErr: errors.New("publish error")}
		publish := messaging.NewPublishFunc[publishTestEvent](mock, "link.created")

		err := publish(context.Background(), &publishTestEvent{Code: "abc123"})

		assert.Error(t, err)
	})
}

func TestPublisherGroup(t *testing.T) {
	t.Run("returns underlying publisher", func(t *testing.T) {
		mock := &mockPublisher{}
		group := messaging.NewPublisherGroup(mock)

		assert.Equal(t, mock, group.Publisher())
	})

	t.Run("shuts down successfully", func(t *testing.T) {
		group := messaging.NewPublisherGroup(&mockPublisher{})

		require.NoError(t, group.Shutdown())
	})

	t.Run("returns error when close fails", func(t *testing.T) {
		group := messaging.NewPublisherGroup(&mockPublisher{closeErr: errors.New("close error")})

		assert.Error(t, group.Shutdown())
	})
}
