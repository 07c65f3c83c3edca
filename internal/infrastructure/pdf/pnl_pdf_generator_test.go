package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hpp-api/internal/application/report"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/profit"
)

func TestGeneratePnLPDF(t *testing.T) {
	orders := profit.ComputeOrderSummaries([]entity.OrderBundle{
		{
			Order: entity.Order{OrderSn: "SN-1", Status: "COMPLETED", OrderDate: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
			Items: []entity.OrderItem{{SKU: "A1", Quantity: 1, UnitPrice: decimal.NewFromInt(50000), HPP: decimal.NewNullDecimal(decimal.NewFromInt(20000))}},
		},
		{
			Order: entity.Order{OrderSn: "SN-2", Status: "SHIPPED"},
			Items: []entity.OrderItem{{SKU: "B2", Quantity: 1, UnitPrice: decimal.NewFromInt(10000)}},
		},
	})
	rep := &report.PnLReport{
		ShopID:      "shop-1",
		Location:    time.UTC,
		GeneratedAt: time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC),
		Orders:      orders,
		Summary:     profit.SummarizeOrders(orders),
	}

	out, err := NewMarotoPnLGenerator().GeneratePnLPDF(context.Background(), rep)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "-1.500", formatMoney("-1500"))
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "Rp12.346", rupiah(decimal.RequireFromString("12345.5")))
	assert.Equal(t, "Rp-12.346", rupiah(decimal.RequireFromString("-12345.5")), "empate negativo se aleja del cero")
	assert.Equal(t, "-", nullRupiah(decimal.NullDecimal{}))
}
