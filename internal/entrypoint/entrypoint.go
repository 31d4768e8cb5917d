package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/apikeys"
	auditrepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/books"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/logger"
	"github.com/mrlokans/library/internal/validation"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("server exiting")
}

// BuildRouter wires the catalog, validation, audit and auth services onto db.
func BuildRouter(cfg *config.Config, db *database.Database, version string) *gin.Engine {
	var auditService *audit.Service
	if cfg.Audit.Enabled {
		auditService = audit.NewService(auditrepo.NewRepository(db))
	}

	var authService *auth.Service
	switch cfg.Auth.Mode {
	case config.AuthModeNone:
		log.Warn().Msg("authentication mode: none (every route is open)")
	default:
		authService = auth.NewService(apikeys.NewRepository(db), cfg.Auth)
		log.Info().Str("header", cfg.Auth.Header).Bool("static_key", cfg.Auth.APIKey != "").
			Msg("authentication mode: apikey")
	}

	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:          books.NewRepository(db),
		Validator:      validation.New(),
		Database:       db,
		Audit:          auditService,
		AuthService:    authService,
		AuthConfig:     cfg.Auth,
		CORS:           cfg.CORS,
		RateLimit:      cfg.RateLimit,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Version:        version,
	})
}

func Run(cfg *config.Config, version string) {
	logger.Setup(cfg.Log)
	log.Info().Str("version", version).Msg("starting library api")

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := append(database.ConfigOptions(cfg.Database), database.WithLogLevel(logger.GormLevel(cfg.Log.Level)))
	db, err := database.NewDatabase(cfg.Database.Path, opts...)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("failed to initialize database")
	}

	router := BuildRouter(cfg, db, version)

	Serve(router, cfg, func(ctx context.Context) {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	})
}
