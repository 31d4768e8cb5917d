package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/library/internal/config"
)

// APIKeyContextKey is set when a request was authenticated.
const APIKeyContextKey = "api_key_authenticated"

// DefaultPublicPaths are reachable without a key.
var DefaultPublicPaths = []string{
	"/health",
	"/ping",
	"/swagger",
}

// Middleware rejects requests that do not carry a valid API key.
type Middleware struct {
	service     *Service
	header      string
	publicPaths []string
}

// NewMiddleware creates the auth middleware for the configured header.
func NewMiddleware(service *Service, cfg config.Auth) *Middleware {
	header := cfg.Header
	if header == "" {
		header = config.DefaultAPIKeyHeader
	}
	return &Middleware{
		service:     service,
		header:      header,
		publicPaths: DefaultPublicPaths,
	}
}

// WithPublicPaths replaces the list of paths that skip authentication.
func (m *Middleware) WithPublicPaths(paths ...string) *Middleware {
	m.publicPaths = paths
	return m
}

// Handler returns the gin handler.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.service.IsAuthEnabled() || m.isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		key := ExtractKey(c.GetHeader(m.header))
		err := m.service.Validate(c.Request.Context(), key)
		switch {
		case err == nil:
			c.Set(APIKeyContextKey, true)
			c.Next()
		case errors.Is(err, ErrInvalidAPIKey):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidAPIKey.Error()})
		default:
			log.Error().Err(err).Msg("api key validation failed")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		}
	}
}

func (m *Middleware) isPublicPath(path string) bool {
	for _, public := range m.publicPaths {
		if path == public || strings.HasPrefix(path, public+"/") {
			return true
		}
	}
	return false
}

// ExtractKey strips an optional "ApiKey " or "Bearer " scheme from a header value.
func ExtractKey(value string) string {
	value = strings.TrimSpace(value)
	for _, scheme := range []string{"ApiKey ", "Bearer "} {
		if len(value) > len(scheme) && strings.EqualFold(value[:len(scheme)], scheme) {
			return strings.TrimSpace(value[len(scheme):])
		}
	}
	return value
}
