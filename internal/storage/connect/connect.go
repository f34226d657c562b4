// Package connect selects and opens the persistence backend. Exactly one
// backend serves the process: the document store when a MongoDB URI is
// configured, otherwise the relational store when a DSN is configured.
// Configuring neither is a startup error, never a silent default.
package connect

import (
	"context"
	"fmt"

	"github.com/planbase/planbase/internal/config"
	"github.com/planbase/planbase/internal/storage"
	"github.com/planbase/planbase/internal/storage/mongostore"
	"github.com/planbase/planbase/internal/storage/sqlstore"
	"github.com/rs/zerolog/log"
)

// Open picks the backend from config and returns the connected store.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (storage.Store, error) {
	switch {
	case cfg.MongoURI != "":
		log.Info().Str("backend", "mongodb").Str("database", cfg.MongoDatabase).
			Msg("opening document store")
		return mongostore.Open(ctx, cfg)
	case cfg.DSN != "":
		log.Info().Str("backend", "sql").Str("driver", cfg.Driver).
			Msg("opening relational store")
		return sqlstore.Open(cfg)
	default:
		return nil, fmt.Errorf("%w: set MONGODB_URI or DB_DSN", storage.ErrNotConfigured)
	}
}
