package profit

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// OrderCostSummary costos y rentabilidad de un pedido. Se recalcula en cada reporte.
//
// Política todo-o-nada: TotalProductCost solo está definido si todas las líneas tienen HPP.
// Si falta alguno, TotalProductCost, GrossProfit, NetProfit y ambos márgenes son nulos y
// HasAllHPP=false. No se suman costos parciales.
type OrderCostSummary struct {
	Order            entity.Order
	Items            []ItemMetrics
	TotalRevenue     decimal.Decimal
	TotalProductCost decimal.NullDecimal
	Fees             entity.PlatformFees
	TotalFees        decimal.Decimal
	GrossProfit      decimal.NullDecimal // TotalRevenue − TotalProductCost
	NetProfit        decimal.NullDecimal // GrossProfit − TotalFees
	GrossMargin      decimal.NullDecimal
	NetMargin        decimal.NullDecimal
	HasAllHPP        bool
	ItemsWithoutHPP  int
}

// ComputeOrderSummary agrega las líneas y comisiones de un pedido.
func ComputeOrderSummary(order entity.Order, items []entity.OrderItem, fees entity.PlatformFees) OrderCostSummary {
	s := OrderCostSummary{
		Order:     order,
		Items:     make([]ItemMetrics, 0, len(items)),
		Fees:      fees,
		TotalFees: fees.Total(),
	}

	cost := decimal.Zero
	for _, it := range items {
		m := ComputeItemMetrics(it)
		s.Items = append(s.Items, m)
		s.TotalRevenue = s.TotalRevenue.Add(m.Revenue)
		if m.Cost.Valid {
			cost = cost.Add(m.Cost.Decimal)
		} else {
			s.ItemsWithoutHPP++
		}
	}

	s.HasAllHPP = s.ItemsWithoutHPP == 0
	if !s.HasAllHPP {
		return s
	}
	s.TotalProductCost = decimal.NewNullDecimal(cost)
	s.GrossProfit = decimal.NewNullDecimal(s.TotalRevenue.Sub(cost))
	s.NetProfit = nullSub(s.GrossProfit, s.TotalFees)
	s.GrossMargin = Margin(s.GrossProfit, s.TotalRevenue)
	s.NetMargin = Margin(s.NetProfit, s.TotalRevenue)
	return s
}

// ComputeOrderSummaries aplica ComputeOrderSummary a cada pedido.
func ComputeOrderSummaries(bundles []entity.OrderBundle) []OrderCostSummary {
	out := make([]OrderCostSummary, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, ComputeOrderSummary(b.Order, b.Items, b.Fees))
	}
	return out
}
