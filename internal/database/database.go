package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entities"
)

const (
	defaultMaxOpenConns = 4
	defaultMaxIdleConns = 2
	defaultBusyTimeout  = 5000
)

const (
	driverName = "sqlite3_library"

	// UnicodeLowerFunc is available in every SQL statement. SQLite's own
	// LOWER only folds ASCII letters.
	UnicodeLowerFunc = "unicode_lower"
)

var registerDriver sync.Once

// registerSQLiteDriver adds the mattn driver with the catalog's SQL functions
// attached to every new connection.
func registerSQLiteDriver() {
	registerDriver.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc(UnicodeLowerFunc, strings.ToLower, true)
			},
		})
	})
}

type Database struct {
	DB *gorm.DB
}

type options struct {
	maxOpenConns int
	maxIdleConns int
	busyTimeout  int
	logLevel     logger.LogLevel
}

// Option customises how the database is opened.
type Option func(*options)

// WithPool sets the connection pool limits. Non-positive values keep the defaults.
func WithPool(maxOpen, maxIdle int) Option {
	return func(o *options) {
		if maxOpen > 0 {
			o.maxOpenConns = maxOpen
		}
		if maxIdle > 0 {
			o.maxIdleConns = maxIdle
		}
	}
}

// WithBusyTimeout sets how long, in milliseconds, SQLite waits on a locked database.
func WithBusyTimeout(ms int) Option {
	return func(o *options) {
		if ms > 0 {
			o.busyTimeout = ms
		}
	}
}

// WithLogLevel sets gorm's SQL log level.
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// ConfigOptions maps the database settings onto open options.
func ConfigOptions(cfg config.Database) []Option {
	return []Option{
		WithPool(cfg.MaxOpenConns, cfg.MaxIdleConns),
		WithBusyTimeout(cfg.BusyTimeout),
	}
}

// NewDatabase opens the SQLite catalog at dbPath and ensures the schema exists.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{
		maxOpenConns: defaultMaxOpenConns,
		maxIdleConns: defaultMaxIdleConns,
		busyTimeout:  defaultBusyTimeout,
		logLevel:     logger.Silent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Every pooled connection to :memory: would see its own empty database.
	if dbPath == ":memory:" {
		o.maxOpenConns = 1
		o.maxIdleConns = 1
	}

	registerSQLiteDriver()
	dialector := sqlite.New(sqlite.Config{
		DriverName: driverName,
		DSN:        dsn(dbPath, o.busyTimeout),
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(o.logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(o.maxOpenConns)
	sqlDB.SetMaxIdleConns(o.maxIdleConns)

	database := &Database{DB: db}
	if err := database.Initialize(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info().Str("path", dbPath).Msg("database initialized")

	return database, nil
}

// Initialize creates any missing tables and columns. It is safe to run
// against an already initialized database.
func (d *Database) Initialize() error {
	err := d.DB.AutoMigrate(
		&entities.Book{},
		&entities.APIKey{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Conn returns a session scoped to a single operation. The underlying pooled
// connection is released as soon as the statement or transaction completes.
func (d *Database) Conn(ctx context.Context) *gorm.DB {
	return d.DB.WithContext(ctx)
}

// Ping checks that the database file is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dsn(dbPath string, busyTimeout int) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d&_foreign_keys=on", dbPath, sep, busyTimeout)
}
