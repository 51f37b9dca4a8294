package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PostgresChecker adapts pgxpool.Pool to Checker interface.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a new PostgreSQL health checker.
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Handler reports the health of every registered dependency.
type Handler struct {
	checkers map[string]Checker
	timeout  time.Duration
}

// NewHandler creates a health handler over the named checkers.
func NewHandler(checkers map[string]Checker) *Handler {
	return &Handler{checkers: checkers, timeout: 2 * time.Second}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status string            `example:"ok" json:"status"`
		Checks map[string]string `json:"checks"`
	}
}

// Check pings every dependency. Any failure degrades the overall status.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Checks = make(map[string]string, len(h.checkers))

	for name, checker := range h.checkers {
		if err := checker.Ping(ctx); err != nil {
			resp.Body.Checks[name] = "unhealthy"
			resp.Body.Status = "degraded"

			continue
		}

		resp.Body.Checks[name] = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
