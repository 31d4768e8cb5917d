package http

import (
	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Books     services.BookService
	Validator services.BookValidator
	Database  *database.Database

	// Audit trail (optional, nil disables)
	Audit *audit.Service

	// Authentication (optional, nil leaves every route open)
	AuthService *auth.Service
	AuthConfig  config.Auth

	// Cross-cutting middleware
	CORS           config.CORS
	RateLimit      config.RateLimit
	TrustedProxies []string

	// Application info
	Version string
}
