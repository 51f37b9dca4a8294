package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/container"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

func main() {
	opts := &container.Options{
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		ConsumerGroup: getEnv("CONSUMER_GROUP", "analytics"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.ConsumerGroupPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)
	group := do.MustInvoke[*messaging.ConsumerGroup](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start consumer group", zap.Error(err))
	}

	logger.Info("consuming analytics events", zap.String("group", opts.ConsumerGroup))

	<-ctx.Done()

	logger.Info("shutting down")

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
	_ = logger.Sync()
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}
