package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/config"
	storepkg "github.com/Maverick-list/Personal-Advance-Portofolio/internal/store"
	storepg "github.com/Maverick-list/Personal-Advance-Portofolio/internal/store/postgres"
	storeredis "github.com/Maverick-list/Personal-Advance-Portofolio/internal/store/redis"
	storesqlite "github.com/Maverick-list/Personal-Advance-Portofolio/internal/store/sqlite"
)

// NewStore returns the memory store selected by cfg.StoreDriver.
// The result is wrapped so that a clear never interleaves with an append.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	var (
		s   storepkg.Store
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		s, err = storesqlite.New(cfg.SQLitePath)
	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("ASSISTANT_POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
		s, err = storepg.New(ctx, cfg.PostgresDSN)
	case config.DriverRedis:
		s, err = storeredis.New(ctx, storeredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
		})
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().Str("driver", cfg.StoreDriver).Msg("memory store opened")
	return storepkg.Serialized(s), nil
}
