package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/auth"
	"github.com/serroba/shortlink/internal/handlers"
)

// TokenVerifier turns a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// Authenticate verifies the bearer token of every operation that declares
// handlers.SecurityScheme in its Security requirements. Other operations pass through.
func Authenticate(api huma.API, verifier TokenVerifier) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresBearer(ctx.Operation()) {
			next(ctx)

			return
		}

		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "No token, authorization has been denied")

			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			msg := "Token is not valid"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Token is expired"
			}

			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, msg)

			return
		}

		next(huma.WithContext(ctx, auth.ContextWithIdentity(ctx.Context(), *identity)))
	}
}

func requiresBearer(op *huma.Operation) bool {
	if op == nil {
		return false
	}

	for _, requirement := range op.Security {
		if _, ok := requirement[handlers.SecurityScheme]; ok {
			return true
		}
	}

	return false
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
