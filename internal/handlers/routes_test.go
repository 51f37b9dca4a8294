package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/auth"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/stretchr/testify/assert"
)

// setupRoutes serves every route with the caller already authenticated as owner.
func setupRoutes(t *testing.T, owner uuid.UUID) (*chi.Mux, *linkFixture) {
	t.Helper()

	f := newLinkFixture(t, now)
	accounts, _ := newUserHandler()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		identity := auth.Identity{UserID: owner, Email: "ada@example.com"}
		next(huma.WithContext(ctx, auth.ContextWithIdentity(ctx.Context(), identity)))
	})

	handlers.RegisterRoutes(api, f.handler, accounts)

	return router, f
}

func postShorten(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestRoutes_CreateLink(t *testing.T) {
	owner := uuid.New()

	t.Run("an empty shortCode is treated as omitted", func(t *testing.T) {
		router, f := setupRoutes(t, owner)

		w := postShorten(router, `{"shortCode": "", "originalUrl": "https://example.com"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotEmpty(t, w.Header().Get("Location"))
		assert.Equal(t, 1, f.recorder.created)
	})

	t.Run("accepts a custom shortCode", func(t *testing.T) {
		router, _ := setupRoutes(t, owner)

		w := postShorten(router, `{"shortCode": "mine42", "originalUrl": "https://example.com"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "http://localhost:8888/mine42", w.Header().Get("Location"))
	})

	t.Run("rejects shortCodes outside 4 to 10 alphanumerics", func(t *testing.T) {
		router, f := setupRoutes(t, owner)

		for _, code := range []string{"abc", "abcdefghijk", "ab-cd"} {
			w := postShorten(router, `{"shortCode": "`+code+`", "originalUrl": "https://example.com"}`)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, code)
		}

		assert.Zero(t, f.recorder.created)
	})

	t.Run("redirects through the catch-all route", func(t *testing.T) {
		router, _ := setupRoutes(t, owner)
		postShorten(router, `{"shortCode": "jump01", "originalUrl": "https://example.com/target"}`)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jump01", nil))

		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "https://example.com/target", w.Header().Get("Location"))
	})
}
