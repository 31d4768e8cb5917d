package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mrlokans/library/docs"
	"github.com/mrlokans/library/internal/auth"
)

const docsPrefix = "/swagger"

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// ClientIP feeds rate limiting and the audit trail, so X-Forwarded-For
	// is only read from configured proxies.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("proxies", cfg.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.CORS, cfg.AuthConfig.Header))

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware(docsPrefix))
	router.Use(auth.StrictTransportSecurityMiddleware())

	if limiter := NewRateLimiter(cfg.RateLimit); limiter != nil {
		router.Use(limiter.Handler())
	}

	// Apply auth middleware if enabled
	if cfg.AuthService != nil {
		router.Use(auth.NewMiddleware(cfg.AuthService, cfg.AuthConfig).Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Books, cfg.Version)
	books := NewBooksController(cfg.Books, cfg.Validator, cfg.Audit)
	auditController := NewAuditController(cfg.Audit)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// Catalog endpoints
	router.POST("/books", books.CreateBook)
	router.GET("/books", books.GetBooks)
	router.GET("/books/:isbn", books.GetBook)
	router.PUT("/books/:isbn", books.UpdateBook)
	router.DELETE("/books/:isbn", books.DeleteBook)
	router.GET("/api/books/stats", books.GetBookStats)

	// Audit trail
	router.GET("/api/audit", auditController.GetEvents)

	// API documentation
	router.GET(docsPrefix, func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, docsPrefix+"/index.html")
	})
	if cfg.Version != "" {
		docs.SwaggerInfo.Version = cfg.Version
	}
	router.GET(docsPrefix+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DefaultModelsExpandDepth(-1)))

	router.NoRoute(func(c *gin.Context) {
		respondNotFound(c, "route")
	})

	return router
}
