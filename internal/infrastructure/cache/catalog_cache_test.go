package cache_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/infrastructure/cache"
	"github.com/jhoicas/hpp-api/pkg/config"
)

type countingRepo struct {
	calls int
	recs  []entity.SkuRecord
}

func (r *countingRepo) ListSkus(ctx context.Context, shopID string) ([]entity.SkuRecord, error) {
	r.calls++
	return r.recs, nil
}

func newCache(t *testing.T, repo *countingRepo) (*cache.CatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewCatalogCache(repo, client, time.Minute, nil), mr
}

func sampleRecords() []entity.SkuRecord {
	return []entity.SkuRecord{
		{SKU: "A", ItemName: "Kaos", TotalOrders: 2, TotalQuantity: 3, TotalRevenue: decimal.NewFromInt(300000),
			CurrentHPP: decimal.NewNullDecimal(decimal.NewFromInt(40000))},
		{SKU: "B", ItemName: "Celana", TotalRevenue: decimal.NewFromInt(100)},
	}
}

func TestCatalogCache_ReadThrough(t *testing.T) {
	repo := &countingRepo{recs: sampleRecords()}
	c, mr := newCache(t, repo)
	ctx := context.Background()

	first, err := c.ListSkus(ctx, "shop-1")
	require.NoError(t, err)
	second, err := c.ListSkus(ctx, "shop-1")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls, "la segunda lectura sale de Redis")
	assert.True(t, mr.Exists("hpp:catalog:shop-1"))
	require.Len(t, second, 2)
	assert.Equal(t, first[0].SKU, second[0].SKU)
	assert.True(t, second[0].CurrentHPP.Valid)
	assert.True(t, second[0].CurrentHPP.Decimal.Equal(decimal.NewFromInt(40000)))
	assert.False(t, second[1].CurrentHPP.Valid, "HPP desconocido sobrevive la serialización")
	assert.Equal(t, time.Minute, mr.TTL("hpp:catalog:shop-1"))
}

func TestCatalogCache_Invalidate(t *testing.T) {
	repo := &countingRepo{recs: sampleRecords()}
	c, mr := newCache(t, repo)
	ctx := context.Background()

	_, err := c.ListSkus(ctx, "shop-1")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "shop-1"))
	assert.False(t, mr.Exists("hpp:catalog:shop-1"))

	_, err = c.ListSkus(ctx, "shop-1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCatalogCache_ShopsAreIsolated(t *testing.T) {
	repo := &countingRepo{recs: sampleRecords()}
	c, _ := newCache(t, repo)
	ctx := context.Background()

	_, _ = c.ListSkus(ctx, "shop-1")
	_, _ = c.ListSkus(ctx, "shop-2")
	assert.Equal(t, 2, repo.calls)
}

func TestCatalogCache_CorruptEntryReloads(t *testing.T) {
	repo := &countingRepo{recs: sampleRecords()}
	c, mr := newCache(t, repo)
	require.NoError(t, mr.Set("hpp:catalog:shop-1", "{no es json"))

	recs, err := c.ListSkus(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, 1, repo.calls)
}

func TestCatalogCache_RedisDownFallsBack(t *testing.T) {
	repo := &countingRepo{recs: sampleRecords()}
	c, mr := newCache(t, repo)
	mr.Close()

	recs, err := c.ListSkus(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Error(t, c.Invalidate(context.Background(), "shop-1"))
}

func TestNew_PingFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := cache.New(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
