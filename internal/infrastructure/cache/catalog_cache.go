// Package cache caché read-through del catálogo de SKUs sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
	"github.com/jhoicas/hpp-api/pkg/logger"
)

var (
	_ repository.CatalogRepository  = (*CatalogCache)(nil)
	_ repository.CatalogInvalidator = (*CatalogCache)(nil)
)

const catalogKeyPrefix = "hpp:catalog:"

// CatalogCache decora un CatalogRepository. Un fallo de Redis nunca bloquea la lectura:
// se registra y se consulta el origen.
type CatalogCache struct {
	next   repository.CatalogRepository
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewCatalogCache construye el decorador. ttl <= 0 deja las entradas sin expiración.
func NewCatalogCache(next repository.CatalogRepository, client *redis.Client, ttl time.Duration, log *logger.Logger) *CatalogCache {
	if log == nil {
		log = logger.Nop()
	}
	if ttl < 0 {
		ttl = 0
	}
	return &CatalogCache{next: next, client: client, ttl: ttl, log: log.Component("catalog_cache")}
}

func catalogKey(shopID string) string {
	return catalogKeyPrefix + shopID
}

// ListSkus sirve desde Redis si hay entrada; si no, lee el origen y la guarda.
func (c *CatalogCache) ListSkus(ctx context.Context, shopID string) ([]entity.SkuRecord, error) {
	key := catalogKey(shopID)
	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var recs []entity.SkuRecord
		if jsonErr := json.Unmarshal(payload, &recs); jsonErr == nil {
			return recs, nil
		}
		c.log.Warn().Str("key", key).Msg("entrada de caché corrupta; se recarga")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
	}

	recs, err := c.next.ListSkus(ctx, shopID)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("cache: serializar catálogo: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
	}
	return recs, nil
}

// Invalidate elimina la entrada de la tienda; la próxima lectura va al origen.
func (c *CatalogCache) Invalidate(ctx context.Context, shopID string) error {
	if err := c.client.Del(ctx, catalogKey(shopID)).Err(); err != nil {
		return fmt.Errorf("cache: invalidar catálogo: %w", err)
	}
	return nil
}
