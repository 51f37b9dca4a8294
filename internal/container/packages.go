package container

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/analytics"
	analyticsstore "github.com/serroba/shortlink/internal/analytics/store"
	"github.com/serroba/shortlink/internal/auth"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/health"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/metrics"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/serroba/shortlink/internal/users"
	"go.uber.org/zap"
)

// RepositoryPackage provides the PostgreSQL link and user stores.
func RepositoryPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (shortener.Repository, error) {
		return store.NewPostgresStore(do.MustInvoke[*Postgres](i).Pool), nil
	})

	do.Provide(i, func(i *do.Injector) (users.Repository, error) {
		return store.NewPostgresUserStore(do.MustInvoke[*Postgres](i).Pool), nil
	})
}

// ServicePackage provides the link engine, token issuer and user service.
func ServicePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*shortener.CodeGenerator, error) {
		opts := do.MustInvoke[*Options](i)

		return shortener.NewCodeGenerator(do.MustInvoke[shortener.Repository](i), shortener.CodeOptions{
			MinLength:   opts.CodeMinLength,
			MaxLength:   opts.CodeMaxLength,
			MaxAttempts: opts.CodeMaxAttempts,
		})
	})

	do.Provide(i, func(i *do.Injector) (*shortener.Linker, error) {
		return shortener.NewLinker(
			do.MustInvoke[shortener.Repository](i),
			do.MustInvoke[*shortener.CodeGenerator](i),
			do.MustInvoke[*Options](i).PublicBaseURL(),
			time.Now,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(i, func(i *do.Injector) (*shortener.Resolver, error) {
		return shortener.NewResolver(
			do.MustInvoke[shortener.Repository](i),
			time.Now,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(i, func(i *do.Injector) (*auth.Issuer, error) {
		opts := do.MustInvoke[*Options](i)

		return auth.NewIssuer(opts.JWTSecret, time.Duration(opts.TokenTTLHours)*time.Hour), nil
	})

	do.Provide(i, func(i *do.Injector) (*users.Service, error) {
		return users.NewService(
			do.MustInvoke[users.Repository](i),
			do.MustInvoke[*auth.Issuer](i),
			do.MustInvoke[*Options](i).BcryptCost,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// MetricsPackage provides the Prometheus collectors.
func MetricsPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*metrics.Metrics, error) {
		return metrics.New(), nil
	})
}

// PublisherGroupPackage provides the Redis stream publisher.
func PublisherGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		publisher, err := messaging.NewRedisPublisher(
			do.MustInvoke[*Redis](i).Client,
			do.MustInvoke[*zap.Logger](i),
		)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage provides the analytics consumers reading Redis streams.
func ConsumerGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := messaging.NewRedisSubscriber(do.MustInvoke[*Redis](i).Client, opts.ConsumerGroup, logger)
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(analytics.NewConsumers(subscriber, analyticsstore.NewLog(logger), logger)...)

		return group, nil
	})
}

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*chi.Mux, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		m := do.MustInvoke[*metrics.Metrics](i)

		router := chi.NewMux()
		router.Use(chimw.RequestID, chimw.Recoverer, middleware.AccessLog(logger), m.Middleware)
		router.Handle("/metrics", m.Handler())

		return router, nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		publishers := do.MustInvoke[*messaging.PublisherGroup](i)

		config := huma.DefaultConfig("Shortlink", "1.0.0")
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
			handlers.SecurityScheme: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		}

		api := humachi.New(router, config)
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.Authenticate(api, do.MustInvoke[*auth.Issuer](i)),
		)

		linkHandler := handlers.NewLinkHandler(
			do.MustInvoke[*shortener.Linker](i),
			do.MustInvoke[*shortener.Resolver](i),
			messaging.NewPublishFunc[analytics.LinkCreatedEvent](publishers.Publisher(), analytics.TopicLinkCreated),
			messaging.NewPublishFunc[analytics.LinkVisitedEvent](publishers.Publisher(), analytics.TopicLinkVisited),
			do.MustInvoke[*metrics.Metrics](i),
			logger,
		)
		userHandler := handlers.NewUserHandler(do.MustInvoke[*users.Service](i), logger)

		handlers.RegisterRoutes(api, linkHandler, userHandler)
		health.RegisterRoutes(api, health.NewHandler(map[string]health.Checker{
			"postgres": health.NewPostgresChecker(do.MustInvoke[*Postgres](i).Pool),
			"redis":    health.NewRedisChecker(do.MustInvoke[*Redis](i).Client),
		}))

		return api, nil
	})
}
