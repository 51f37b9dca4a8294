package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	Code    string `json:"code"`
	Referer string `json:"referer"`
}

type mockSubscriber struct {
	msgChan      chan *message.Message
	subscribeErr error
	closeErr     error
	mu           sync.Mutex
	closed       bool
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{
		msgChan: make(chan *message.Message, 10),
	}
}

func (m *mockSubscriber) Subscribe(_ context.Context, _ string) (<-chan *message.Message, error) {
	if m.subscribeErr != nil {
		return nil, m.subscribeErr
	}

	return m.msgChan, nil
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.msgChan)
	}

	return m.closeErr
}

func newTestMessage(t *testing.T, event any) *message.Message {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	return message.NewMessage(uuid.NewString(), payload)
}

func TestConsumer_Start(t *testing.T) {
	t.Run("starts successfully", func(t *testing.T) {
		consumer := messaging.NewConsumer(
			newMockSubscriber(),
			"link.visited",
			func(_ context.Context, _ *testEvent) error { return nil },
			zap.NewNop(),
		)

		err := consumer.Start(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "link.visited", consumer.Topic())
		require.NoError(t, consumer.Shutdown())
	})

	t.Run("returns error when subscribe fails", func(t *testing.T) {
		consumer := messaging.NewConsumer(
			&mockSubscriber{subscribeErr: errors.New("subscribe error")},
			"link.visited",
			func(_ context.Context, _ *testEvent) error { return nil },
			zap.NewNop(),
		)

		err := consumer.Start(context.Background())

		require.Error(t, err)
		assert.NoError(t, consumer.Shutdown())
	})
}

func TestConsumer_Process(t *testing.T) {
	t.Run("acks after the handler succeeds", func(t *testing.T) {
		sub := newMockSubscriber()
		received := make(chan *testEvent, 1)

		consumer := messaging.NewConsumer(
			sub,
			"link.visited",
			func(_ context.Context, event *testEvent) error {
				received <- event

				return nil
			},
			zap.NewNop(),
		)
		require.NoError(t, consumer.Start(context.Background()))

		msg := newTestMessage(t, testEvent{Code: "abc123", Referer: "direct"})
		sub.msgChan <- msg

		select {
		case <-msg.Acked():
			event := <-received
			assert.Equal(t, "abc123", event.Code)
			assert.Equal(t, "direct", event.Referer)
		case <-msg.Nacked():
			t.Fatal("message was nacked")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for ack")
		}

		_ = consumer.Shutdown()
	})

	t.Run("acks and drops undecodable payloads", func(t *testing.T) {
		sub := newMockSubscriber()
		called := false

		consumer := messaging.NewConsumer(
			sub,
			"link.visited",
			func(_ context.Context, _ *testEvent) error {
				called = true

				return nil
			},
			zap.NewNop(),
		)
		require.NoError(t, consumer.Start(context.Background()))

		msg := message.NewMessage(uuid.NewString(), []byte("not json"))
		sub.msgChan <- msg

		select {
		case <-msg.Acked():
		case <-msg.Nacked():
			t.Fatal("undecodable message should not be redelivered")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for ack")
		}

		_ = consumer.Shutdown()
		assert.False(t, called)
	})

	t.Run("nacks when the handler fails", func(t *testing.T) {
		sub := newMockSubscriber()
		consumer := messaging.NewConsumer(
			sub,
			"link.visited",
			func(_ context.Context, _ *testEvent) error {
				return errors.New("sink unavailable")
			},
			zap.NewNop(),
		)
		require.NoError(t, consumer.Start(context.Background()))

		msg := newTestMessage(t, testEvent{Code: "abc123"})
		sub.msgChan <- msg

		select {
		case <-msg.Nacked():
		case <-msg.Acked():
			t.Fatal("message should have been nacked")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for nack")
		}

		_ = consumer.Shutdown()
	})
}

func TestConsumer_Shutdown(t *testing.T) {
	t.Run("returns immediately when never started", func(t *testing.T) {
		consumer := messaging.NewConsumer(
			newMockSubscriber(),
			"link.visited",
			func(_ context.Context, _ *testEvent) error { return nil },
			zap.NewNop(),
		)

		assert.NoError(t, consumer.Shutdown())
	})

	t.Run("stops when the subscription channel closes", func(t *testing.T) {
		sub := newMockSubscriber()
		consumer := messaging.NewConsumer(
			sub,
			"link.visited",
			func(_ context.Context, _ *testEvent) error { return nil },
			zap.NewNop(),
		)
		require.NoError(t, consumer.Start(context.Background()))

		require.NoError(t, sub.Close())

		assert.NoError(t, consumer.Shutdown())
	})
}
