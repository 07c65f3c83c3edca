package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

func TestOrderFilter_MatchesOrder(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	inRange := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	completed := entity.Order{Status: entity.OrderStatusCompleted, OrderDate: inRange}
	shipped := entity.Order{Status: "SHIPPED", OrderDate: inRange}
	undated := entity.Order{Status: entity.OrderStatusCompleted}

	assert.True(t, entity.OrderFilter{}.MatchesOrder(undated), "sin filtro todo coincide")
	assert.True(t, entity.OrderFilter{Status: entity.OrderStatusAll}.MatchesOrder(shipped))

	pending := entity.OrderFilter{Status: entity.OrderStatusPending}
	assert.True(t, pending.MatchesOrder(shipped), "PENDING = todo lo no completado")
	assert.False(t, pending.MatchesOrder(completed))

	ranged := entity.OrderFilter{Status: entity.OrderStatusCompleted, Start: &start, End: &end}
	assert.True(t, ranged.MatchesOrder(completed))
	assert.False(t, ranged.MatchesOrder(shipped))
	assert.False(t, ranged.MatchesOrder(undated), "sin fecha no entra en un rango")

	late := completed
	late.OrderDate = end.Add(time.Second)
	assert.False(t, ranged.MatchesOrder(late))
}

func TestOrderFilter_MatchesSKU(t *testing.T) {
	f := entity.OrderFilter{SKU: "kaos"}
	assert.True(t, f.MatchesSKU("KAOS-HITAM-L"))
	assert.False(t, f.MatchesSKU("CELANA-01"))
	assert.True(t, entity.OrderFilter{}.MatchesSKU("cualquiera"))
}

func TestPlatformFees_Total(t *testing.T) {
	f := entity.PlatformFees{
		Commission:     decimal.NewFromInt(1000),
		Service:        decimal.NewFromInt(200),
		Transaction:    decimal.NewFromInt(30),
		Shipping:       decimal.NewFromInt(4),
		PaymentChannel: decimal.RequireFromString("0.5"),
	}
	assert.True(t, f.Total().Equal(decimal.RequireFromString("1234.5")))
	assert.True(t, f.Add(f).Total().Equal(decimal.NewFromInt(2469)))
}
