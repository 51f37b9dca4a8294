package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/handlers"
)

// RequestMeta puts the client IP, user agent and referer into the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referer:   ctx.Header("Referer"),
		}

		next(huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta)))
	}
}

func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	addr := ctx.RemoteAddr()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}

	return addr
}
