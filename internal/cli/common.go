package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/logger"
)

// openDatabase opens the catalog at path, falling back to the configured
// location when path is empty. Pool and log settings come from the environment.
func openDatabase(path string) (*database.Database, *config.Config, error) {
	cfg := config.NewConfig()
	if path == "" {
		path = cfg.Database.Path
	}

	if path != ":memory:" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get absolute path for database: %w", err)
		}
		path = absPath
	}

	opts := append(database.ConfigOptions(cfg.Database), database.WithLogLevel(logger.GormLevel(cfg.Log.Level)))
	db, err := database.NewDatabase(path, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	cfg.Database.Path = path
	return db, cfg, nil
}
