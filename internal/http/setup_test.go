package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	auditrepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	db     *database.Database
	books  *books.Repository
	audit  *audit.Service
}

func setupTestEnv(t *testing.T, mutate ...func(*RouterConfig)) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "library.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := books.NewRepository(db)
	auditService := audit.NewService(auditrepo.NewRepository(db))

	cfg := RouterConfig{
		Books:      repo,
		Validator:  validation.New(),
		Database:   db,
		Audit:      auditService,
		AuthConfig: config.Auth{Mode: config.AuthModeNone},
		CORS:       config.CORS{AllowedOrigins: []string{"*"}},
		Version:    "test",
	}
	for _, m := range mutate {
		m(&cfg)
	}

	return &testEnv{
		router: NewRouter(cfg),
		db:     db,
		books:  repo,
		audit:  auditService,
	}
}

func (e *testEnv) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func validBook(isbn string) entities.Book {
	return entities.Book{
		ISBN:             isbn,
		Title:            "The Go Programming Language",
		Author:           "Alan A. A. Donovan",
		ShortDescription: "Introduction to Go",
		PageCount:        380,
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

