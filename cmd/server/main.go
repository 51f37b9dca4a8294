package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/container"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func registerPackages(injector *do.Injector, options *container.Options) {
	do.ProvideValue(injector, options)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.RepositoryPackage(injector)
	container.ServicePackage(injector)
	container.MetricsPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)
}

// newHTTPServer builds the API, which registers every route on the router.
func newHTTPServer(injector *do.Injector, options *container.Options) *http.Server {
	router := do.MustInvoke[*chi.Mux](injector)
	_ = do.MustInvoke[huma.API](injector)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", options.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(do.MustInvoke[*zap.Logger](injector).Named("http")),
	}
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := do.New()
		registerPackages(injector, options)

		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			server = newHTTPServer(injector, options)

			logger.Info("server starting",
				zap.Int("port", options.Port),
				zap.String("baseUrl", options.PublicBaseURL()),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("server shutdown error", zap.Error(err))
				}
			}

			// Closes the publisher, Redis client and Postgres pool.
			if err := injector.Shutdown(); err != nil {
				logger.Error("service shutdown error", zap.Error(err))
			}

			logger.Info("shutdown complete")
			_ = logger.Sync()
		})
	})

	cli.Run()
}
