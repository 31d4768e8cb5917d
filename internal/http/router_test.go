package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database/apikeys"
	"github.com/mrlokans/library/internal/entities"
)

func withAPIKeyAuth(static string) func(*RouterConfig) {
	return func(cfg *RouterConfig) {
		cfg.AuthConfig = config.Auth{
			Mode:       config.AuthModeAPIKey,
			APIKey:     static,
			Header:     config.DefaultAPIKeyHeader,
			BcryptCost: bcrypt.MinCost,
		}
		cfg.AuthService = auth.NewService(apikeys.NewRepository(cfg.Database), cfg.AuthConfig)
	}
}

func TestRouter_APIKeyAuth(t *testing.T) {
	env := setupTestEnv(t, withAPIKeyAuth("static-secret"))

	t.Run("rejects missing key", func(t *testing.T) {
		w := env.do(http.MethodGet, "/books", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid or missing API key"}`, w.Body.String())
	})

	t.Run("accepts static key", func(t *testing.T) {
		w := env.do(http.MethodPost, "/books", validBook("978-0134190440"), "Authorization", "ApiKey static-secret")
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("accepts stored key and rejects it after revocation", func(t *testing.T) {
		svc := auth.NewService(apikeys.NewRepository(env.db), config.Auth{BcryptCost: bcrypt.MinCost})
		key, record, err := svc.CreateKey(context.Background(), "integration")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/books", nil, "Authorization", key).Code)

		require.NoError(t, svc.RevokeKey(context.Background(), record.ID))
		assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/books", nil, "Authorization", key).Code)
	})

	t.Run("public routes stay open", func(t *testing.T) {
		for _, path := range []string{"/health", "/ping", "/swagger/doc.json", "/swagger/index.html", "/swagger/swagger-ui.css"} {
			assert.Equal(t, http.StatusOK, env.do(http.MethodGet, path, nil).Code, path)
		}
	})
}

func TestRouter_Docs(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode[map[string]any](t, w)
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Equal(t, "test", doc["info"].(map[string]any)["version"])

	paths := doc["paths"].(map[string]any)
	for _, path := range []string{"/books", "/books/{isbn}", "/api/books/stats", "/api/audit", "/health"} {
		assert.Contains(t, paths, path)
	}
	book := paths["/books/{isbn}"].(map[string]any)
	for _, method := range []string{"get", "put", "delete"} {
		assert.Contains(t, book, method)
	}

	definitions := doc["definitions"].(map[string]any)
	assert.Contains(t, definitions, "entities.Book")
	assert.Contains(t, definitions, "validation.FieldError")

	apiKey := doc["securityDefinitions"].(map[string]any)["ApiKey"].(map[string]any)
	assert.Equal(t, "header", apiKey["in"])
	assert.Equal(t, config.DefaultAPIKeyHeader, apiKey["name"])

	w = env.do(http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui-bundle.js")
	assert.NotContains(t, w.Header().Get("Content-Security-Policy"), "https:")

	w = env.do(http.MethodGet, "/swagger/swagger-ui.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/swagger", nil)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/swagger/index.html", w.Header().Get("Location"))
}

type auditPage struct {
	Data    []entities.AuditEvent `json:"data"`
	Total   int64                 `json:"total"`
	HasMore bool                  `json:"has_more"`
}

func TestRouter_AuditEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/books", validBook("978-0134190440")).Code)
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/books", validBook("978-0-13-468599-1")).Code)
	require.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/books/978-0134190440", nil).Code)

	w := env.do(http.MethodGet, "/api/audit?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[auditPage](t, w)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Data, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, entities.AuditActionBookDelete, page.Data[0].Action)

	w = env.do(http.MethodGet, "/api/audit?isbn=978-0-13-468599-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[PaginatedResponse](t, w).Total)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/audit?offset=x", nil).Code)
}

func TestRouter_AuditDisabled(t *testing.T) {
	env := setupTestEnv(t, func(cfg *RouterConfig) { cfg.Audit = nil })
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/books", validBook("978-0134190440")).Code)

	w := env.do(http.MethodGet, "/api/audit", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode[PaginatedResponse](t, w).Total)
}

func TestRouter_UnknownRoute(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
