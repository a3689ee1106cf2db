package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/config"
	storepkg "github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store/memory"
	storepg "github.com/Akashyo7/Ai-Nidhi-sub000/internal/store/postgres"
	storesqlite "github.com/Akashyo7/Ai-Nidhi-sub000/internal/store/sqlite"
)

// NewStore opens the store selected by cfg.DBDriver and applies its schema.
// Schemas are idempotent, so this is safe on every start.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "memory":
		log.Warn().Msg("using in-memory store; data is lost on exit")
		return memory.New(), nil

	case "sqlite":
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("CONTENT_ENGINE_SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
		st, err := storesqlite.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("store opened")
		return st, nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("CONTENT_ENGINE_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		migrateCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout(cfg))
		defer cancel()
		if err := storepg.Migrate(migrateCtx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("store opened")
		return storepg.NewWithDB(db), nil
	}
	return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
}

func bootstrapTimeout(cfg *config.Config) time.Duration {
	if cfg.BootstrapTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
}
