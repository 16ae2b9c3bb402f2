package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wellandwilde/landing-be/internal/config"
	"github.com/wellandwilde/landing-be/internal/database"
	"github.com/wellandwilde/landing-be/internal/models"
	"github.com/wellandwilde/landing-be/internal/store/memory"
	"github.com/wellandwilde/landing-be/internal/store/postgres"
	"github.com/wellandwilde/landing-be/internal/store/sqlite"
)

// Stores bundles the persistence backends selected by configuration.
type Stores struct {
	Name        string
	Subscribers models.SubscriberStore
	Users       models.UserStore
	close       func()
}

// Close releases the underlying connections.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStores opens the configured backend. Database backends are migrated
// to the latest schema before use.
func OpenStores(ctx context.Context, cfg config.Store) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("Using in-memory store: subscribers are lost on restart")
		store := memory.New()
		return &Stores{Name: cfg.Driver, Subscribers: store, Users: store}, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := database.MigrateSQLite(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply sqlite migrations: %w", err)
		}
		store := sqlite.New(db)
		return &Stores{Name: cfg.Driver, Subscribers: store, Users: store, close: func() { db.Close() }}, nil

	case config.DriverPostgres:
		if err := database.MigratePostgres(cfg.DSN); err != nil {
			return nil, fmt.Errorf("failed to apply postgres migrations: %w", err)
		}
		pool, err := database.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		store := postgres.New(pool)
		return &Stores{Name: cfg.Driver, Subscribers: store, Users: store, close: pool.Close}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
