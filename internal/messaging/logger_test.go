package messaging_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := messaging.NewZapLogger(zap.New(core))

	logger.With(watermill.LogFields{"stream": "link.created"}).
		Error("publish failed", errors.New("boom"), watermill.LogFields{"attempt": 2})
	logger.Trace("polling", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "publish failed", entries[0].Message)
	assert.Equal(t, "link.created", entries[0].ContextMap()["stream"])
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "watermill", entries[1].LoggerName)
}
