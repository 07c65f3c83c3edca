// Package store arma los adaptadores del almacén externo según STORE_DRIVER
// y, si hay Redis configurado, envuelve el catálogo con la caché read-through.
package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/hpp-api/internal/domain/repository"
	"github.com/jhoicas/hpp-api/internal/infrastructure/backend"
	"github.com/jhoicas/hpp-api/internal/infrastructure/cache"
	"github.com/jhoicas/hpp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/hpp-api/pkg/config"
	"github.com/jhoicas/hpp-api/pkg/logger"
)

// Stores puertos listos para inyectar en los casos de uso.
type Stores struct {
	Catalog     repository.CatalogRepository
	Invalidator repository.CatalogInvalidator // nil = sin caché
	CostBasis   repository.CostBasisStore
	Orders      repository.OrderReportRepository

	closers []func()
}

// Close libera pool y cliente Redis en orden inverso.
func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Open conecta con el driver configurado.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stores, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Stores{}

	switch cfg.Store.Driver {
	case config.StoreDriverBackend:
		client := backend.NewClient(cfg.Backend)
		s.Catalog = backend.NewCatalogRepository(client)
		s.CostBasis = backend.NewCostBasisStore(client)
		s.Orders = backend.NewOrderReportRepository(client)
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(pool, log); err != nil {
				s.Close()
				return nil, err
			}
		}
		s.Catalog = postgres.NewCatalogRepository(pool)
		s.CostBasis = postgres.NewCostBasisStore(postgres.NewTxRunner(pool))
		s.Orders = postgres.NewOrderReportRepository(pool)
	default:
		return nil, fmt.Errorf("driver de almacén desconocido %q", cfg.Store.Driver)
	}
	log.Info().Str("driver", cfg.Store.Driver).Msg("almacén externo configurado")

	if cfg.Redis.Enabled() {
		client, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Close() })
		s.wrapCatalog(client, cfg.Redis, log)
	}
	return s, nil
}

func (s *Stores) wrapCatalog(client *redis.Client, cfg config.RedisConfig, log *logger.Logger) {
	cc := cache.NewCatalogCache(s.Catalog, client, cfg.CatalogCacheTTL, log)
	s.Catalog = cc
	s.Invalidator = cc
	log.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.CatalogCacheTTL).Msg("caché de catálogo activa")
}
