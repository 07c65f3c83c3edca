package postgres

import (
	"io"
	"io/fs"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

func TestOrderWhere(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	where, args := orderWhere("shop-1", entity.OrderFilter{})
	assert.Equal(t, "o.shop_id = $1", where)
	assert.Equal(t, []any{"shop-1"}, args)

	where, args = orderWhere("shop-1", entity.OrderFilter{Status: entity.OrderStatusAll})
	assert.Equal(t, "o.shop_id = $1", where, "all no filtra estado")
	assert.Len(t, args, 1)

	where, args = orderWhere("shop-1", entity.OrderFilter{Status: entity.OrderStatusPending, Start: &start, End: &end})
	assert.Equal(t, "o.shop_id = $1 AND o.order_status <> $2 AND o.create_time >= $3 AND o.create_time <= $4", where)
	assert.Equal(t, []any{"shop-1", entity.OrderStatusCompleted, start, end}, args)

	where, args = orderWhere("shop-1", entity.OrderFilter{Status: entity.OrderStatusCompleted, SKU: "kaos"})
	assert.Contains(t, where, "o.order_status = $2")
	assert.Contains(t, where, "oi.item_sku ILIKE $3")
	assert.Equal(t, "%kaos%", args[2])
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%A\_B\%%`, likePattern("A_B%"))
	assert.Equal(t, `%C\\D%`, likePattern(`C\D`))
}

func TestRejectInvalid(t *testing.T) {
	items := []entity.CostBasisBatchItem{
		{SKU: "A", HPP: decimal.NewFromInt(10)},
		{SKU: "B", HPP: decimal.NewFromInt(-1)},
		{SKU: "", HPP: decimal.NewFromInt(1)},
		{SKU: "C", HPP: decimal.Zero},
	}
	rejected := rejectInvalid(items)
	assert.Equal(t, []entity.RejectedItem{
		{SKU: "B", Reason: "HPP negativo"},
		{SKU: "", Reason: "SKU vacío"},
	}, rejected)
	assert.Empty(t, rejectInvalid(items[:1]))
}

func TestTimeOrZero(t *testing.T) {
	assert.True(t, timeOrZero(nil).IsZero())
	now := time.Now()
	assert.Equal(t, now, timeOrZero(&now))
}

func TestWithIPv4Host_LeavesKeywordDSN(t *testing.T) {
	dsn := "host=localhost user=postgres"
	assert.Equal(t, dsn, withIPv4Host(dsn))
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/db", withIPv4Host("postgres://u:p@127.0.0.1/db"))
}

func TestMigrationSource_ListsInitialVersion(t *testing.T) {
	src, err := migrationSource()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	_, err = src.Next(first)
	assert.ErrorIs(t, err, fs.ErrNotExist, "solo existe la versión inicial")

	up, _, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS product_hpp")
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS order_items")
	// El HPP se guarda sin escala fija: 10.555 no debe redondearse a 10.56.
	assert.NotContains(t, string(body), "hpp         NUMERIC(")
	assert.Regexp(t, `hpp\s+NUMERIC\s+NOT NULL CHECK \(hpp >= 0\)`, string(body))

	down, _, err := src.ReadDown(first)
	require.NoError(t, err)
	defer down.Close()
	body, err = io.ReadAll(down)
	require.NoError(t, err)
	assert.Contains(t, string(body), "DROP TABLE IF EXISTS product_hpp")
}
