package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/JackpotEngine_Go/internal/archive"
	"github.com/osse101/JackpotEngine_Go/internal/config"
	"github.com/osse101/JackpotEngine_Go/internal/database"
	"github.com/osse101/JackpotEngine_Go/internal/database/postgres"
	"github.com/osse101/JackpotEngine_Go/internal/handler"
	"github.com/osse101/JackpotEngine_Go/internal/identity"
	"github.com/osse101/JackpotEngine_Go/internal/inventory"
)

// Archive bundles the configured store with its readiness check
type Archive struct {
	Store  archive.Store
	Health handler.HealthChecker
	pool   *pgxpool.Pool
}

// Close closes the store and, for postgres, the connection pool
func (a *Archive) Close() error {
	err := a.Store.Close()
	if a.pool != nil {
		a.pool.Close()
	}
	return err
}

// OpenArchive opens the backend selected by ARCHIVE_BACKEND
func OpenArchive(ctx context.Context, cfg *config.Config) (*Archive, error) {
	var a *Archive
	switch cfg.ArchiveBackend {
	case config.ArchiveBackendMemory:
		a = &Archive{Store: archive.NewMemoryStore(), Health: handler.HealthCheckFunc(alwaysHealthy)}

	case config.ArchiveBackendBolt:
		store, err := archive.OpenBolt(ctx, cfg.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenArchive, err)
		}
		a = &Archive{Store: store, Health: handler.HealthCheckFunc(func(ctx context.Context) error {
			_, err := store.Count(ctx)
			return err
		})}

	case config.ArchiveBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolSettings{
			MaxConns:    cfg.DBMaxConns,
			MaxIdle:     cfg.DBMaxIdle,
			MaxLifetime: cfg.DBMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		a = &Archive{
			Store:  postgres.NewArchiveRepository(pool),
			Health: handler.HealthCheckFunc(pool.Ping),
			pool:   pool,
		}

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownArchiveBackend, cfg.ArchiveBackend)
	}

	slog.Info(LogMsgArchiveOpened, "backend", cfg.ArchiveBackend)
	return a, nil
}

func alwaysHealthy(context.Context) error { return nil }

// NewResolver builds the credential resolver selected by IDENTITY_MODE, behind a TTL cache
func NewResolver(cfg *config.Config) (identity.Resolver, error) {
	var next identity.Resolver
	switch cfg.IdentityMode {
	case config.IdentityModeHeader:
		next = identity.NewHeaderResolver()
	case config.IdentityModeHTTP:
		next = identity.NewHTTPResolver(cfg.IdentityURL, cfg.IdentityTimeout)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownIdentityMode, cfg.IdentityMode)
	}

	slog.Info(LogMsgIdentityConfigured, "mode", cfg.IdentityMode, "cache_ttl", cfg.IdentityCacheTTL)
	if cfg.IdentityCacheTTL <= 0 {
		return next, nil
	}
	return identity.NewCachedResolver(next, cfg.IdentityCacheMax, cfg.IdentityCacheTTL), nil
}

// NewChecker uses the inventory service when INVENTORY_URL is set, otherwise the TOML catalog
func NewChecker(ctx context.Context, cfg *config.Config) (inventory.Checker, error) {
	if cfg.InventoryURL != "" {
		slog.Info(LogMsgInventoryConfigured, "source", cfg.InventoryURL)
		return inventory.NewHTTPChecker(cfg.InventoryURL, cfg.InventoryTimeout), nil
	}
	catalog, err := inventory.LoadCatalog(ctx, cfg.InventoryCatalog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgInventoryConfigured, "source", cfg.InventoryCatalog)
	return catalog, nil
}
