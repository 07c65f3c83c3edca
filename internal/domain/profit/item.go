package profit

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// ItemMetrics métricas de una línea de pedido.
// Cost, GrossProfit y Margin están definidos si y solo si HPP está definido
// (Margin además requiere Revenue > 0).
type ItemMetrics struct {
	OrderSn     string
	SKU         string
	ItemName    string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Revenue     decimal.Decimal // Quantity × UnitPrice, siempre definido
	HPP         decimal.NullDecimal
	Cost        decimal.NullDecimal // Quantity × HPP
	GrossProfit decimal.NullDecimal // Revenue − Cost
	Margin      decimal.NullDecimal // GrossProfit / Revenue × 100
}

// HasHPP indica si la línea tiene HPP resuelto.
func (m ItemMetrics) HasHPP() bool { return m.HPP.Valid }

// ComputeItemMetrics calcula ingreso, costo, utilidad y margen de una línea.
func ComputeItemMetrics(item entity.OrderItem) ItemMetrics {
	qty := decimal.NewFromInt(item.Quantity)
	m := ItemMetrics{
		OrderSn:   item.OrderSn,
		SKU:       item.SKU,
		ItemName:  item.ItemName,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		Revenue:   qty.Mul(item.UnitPrice),
		HPP:       item.HPP,
	}
	if !item.HPP.Valid {
		return m
	}
	m.Cost = decimal.NewNullDecimal(qty.Mul(item.HPP.Decimal))
	m.GrossProfit = decimal.NewNullDecimal(m.Revenue.Sub(m.Cost.Decimal))
	m.Margin = Margin(m.GrossProfit, m.Revenue)
	return m
}
