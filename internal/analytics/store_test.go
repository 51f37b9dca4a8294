package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type topicSubscriber struct {
	channels map[string]chan *message.Message
}

func newTopicSubscriber() *topicSubscriber {
	return &topicSubscriber{
		channels: map[string]chan *message.Message{
			analytics.TopicLinkCreated: make(chan *message.Message, 1),
			analytics.TopicLinkVisited: make(chan *message.Message, 1),
		},
	}
}

func (s *topicSubscriber) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	ch, ok := s.channels[topic]
	if !ok {
		return nil, errors.New("unknown topic")
	}

	return ch, nil
}

func (s *topicSubscriber) Close() error {
	return nil
}

type recordingStore struct {
	mu      sync.Mutex
	created []analytics.LinkCreatedEvent
	visited []analytics.LinkVisitedEvent
}

func (r *recordingStore) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.created = append(r.created, *event)

	return nil
}

func (r *recordingStore) SaveLinkVisited(_ context.Context, event *analytics.LinkVisitedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visited = append(r.visited, *event)

	return nil
}

func waitAck(t *testing.T, msg *message.Message) {
	t.Helper()

	select {
	case <-msg.Acked():
	case <-msg.Nacked():
		t.Fatal("message was nacked")
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for ack")
	}
}

func TestNewConsumers(t *testing.T) {
	sub := newTopicSubscriber()
	sink := &recordingStore{}

	consumers := analytics.NewConsumers(sub, sink, zap.NewNop())
	require.Len(t, consumers, 2)

	for _, c := range consumers {
		require.NoError(t, c.Start(context.Background()))
	}

	created, _ := json.Marshal(analytics.LinkCreatedEvent{Code: "abc123", DestinationURL: "https://example.com"})
	createdMsg := message.NewMessage(uuid.NewString(), created)
	sub.channels[analytics.TopicLinkCreated] <- createdMsg

	visited, _ := json.Marshal(analytics.LinkVisitedEvent{Code: "abc123", Referer: "direct"})
	visitedMsg := message.NewMessage(uuid.NewString(), visited)
	sub.channels[analytics.TopicLinkVisited] <- visitedMsg

	waitAck(t, createdMsg)
	waitAck(t, visitedMsg)

	for _, c := range consumers {
		require.NoError(t, c.Shutdown())
	}

	require.Len(t, sink.created, 1)
	assert.Equal(t, "https://example.com", sink.created[0].DestinationURL)
	require.Len(t, sink.visited, 1)
	assert.Equal(t, "direct", sink.visited[0].Referer)
}
