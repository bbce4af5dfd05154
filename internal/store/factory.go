package store

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/zneright/tourkita-core/internal/config"
	"github.com/zneright/tourkita-core/internal/database"
	"github.com/zneright/tourkita-core/internal/store/gormstore"
	"github.com/zneright/tourkita-core/internal/store/memory"
)

// NewStore creates a storage backend based on configuration.
func NewStore(cfg config.StorageConfig, logger *slog.Logger, dbLogger zerolog.Logger) (Store, error) {
	switch cfg.Type {
	case "memory":
		s := memory.NewStore(logger)
		if cfg.SeedFile != "" {
			if err := s.LoadSeedFile(cfg.SeedFile); err != nil {
				return nil, fmt.Errorf("loading seed file: %w", err)
			}
		}
		return s, nil
	case "sqlite", "postgres":
		mgr := database.NewManager(dbLogger)
		if err := mgr.Connect(cfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("connecting database: %w", err)
		}
		return gormstore.NewStore(mgr.DB)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
