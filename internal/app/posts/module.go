package posts

import (
	"context"

	"go.uber.org/fx"

	"blogd/internal/app/database"
	"blogd/internal/config"
	"blogd/internal/config/logger"
)

// Module provides the fx dependency injection options for the posts package
var Module = fx.Options(
	fx.Provide(NewStore),
)

// NewStore builds the Store selected by database.driver; the SQLite pool is attached and
// the schema created at construction so a bad store aborts startup, and the pool closes on stop
func NewStore(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (Store, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Info().Msg("Using in-memory fixture store")
		return NewMemoryStore(Fixtures()...), nil
	}

	ctx := context.Background()

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	log.Info().Msgf("Attached SQLite store at %s", cfg.Database.DSN)

	return NewSQLStore(db, log), nil
}
