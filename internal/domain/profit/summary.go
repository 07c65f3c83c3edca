package profit

import "github.com/shopspring/decimal"

// PnLSummary totales del reporte de pérdidas y ganancias.
// TotalCost, TotalGrossProfit y TotalNetProfit suman solo pedidos con HPP completo;
// los márgenes globales se calculan sobre el ingreso de esos mismos pedidos.
type PnLSummary struct {
	TotalOrders        int
	TotalRevenue       decimal.Decimal
	CostedRevenue      decimal.Decimal
	TotalCost          decimal.Decimal
	TotalGrossProfit   decimal.Decimal
	TotalNetProfit     decimal.Decimal
	TotalFees          decimal.Decimal
	OverallGrossMargin decimal.NullDecimal
	OverallNetMargin   decimal.NullDecimal
	OrdersWithoutHPP   int
	CompletedOrders    int
	PendingOrders      int
	CompletedRevenue   decimal.Decimal
	PendingRevenue     decimal.Decimal
}

// SummarizeOrders totaliza los pedidos, incluidos los que no tienen fecha.
func SummarizeOrders(orders []OrderCostSummary) PnLSummary {
	var s PnLSummary
	for _, o := range orders {
		s.TotalOrders++
		s.TotalRevenue = s.TotalRevenue.Add(o.TotalRevenue)
		s.TotalFees = s.TotalFees.Add(o.TotalFees)
		if o.Order.IsCompleted() {
			s.CompletedOrders++
			s.CompletedRevenue = s.CompletedRevenue.Add(o.TotalRevenue)
		} else {
			s.PendingOrders++
			s.PendingRevenue = s.PendingRevenue.Add(o.TotalRevenue)
		}
		if !o.HasAllHPP {
			s.OrdersWithoutHPP++
			continue
		}
		s.CostedRevenue = s.CostedRevenue.Add(o.TotalRevenue)
		s.TotalCost = s.TotalCost.Add(o.TotalProductCost.Decimal)
		s.TotalGrossProfit = s.TotalGrossProfit.Add(o.GrossProfit.Decimal)
		s.TotalNetProfit = s.TotalNetProfit.Add(o.NetProfit.Decimal)
	}
	if s.TotalOrders > s.OrdersWithoutHPP {
		s.OverallGrossMargin = Margin(decimal.NewNullDecimal(s.TotalGrossProfit), s.CostedRevenue)
		s.OverallNetMargin = Margin(decimal.NewNullDecimal(s.TotalNetProfit), s.CostedRevenue)
	}
	return s
}

// ProductSummary totales del reporte de desempeño por producto.
// Costo y utilidad suman solo los SKUs con HPP completo.
type ProductSummary struct {
	TotalSkus        int
	TotalRevenue     decimal.Decimal
	CostedRevenue    decimal.Decimal
	TotalCost        decimal.Decimal
	TotalGrossProfit decimal.Decimal
	OverallMargin    decimal.NullDecimal
	SkusWithoutHPP   int
}

// SummarizeProducts totaliza el rollup por SKU.
func SummarizeProducts(products []ProductRollup) ProductSummary {
	var s ProductSummary
	for _, p := range products {
		s.TotalSkus++
		s.TotalRevenue = s.TotalRevenue.Add(p.TotalRevenue)
		if !p.HasHPP() {
			s.SkusWithoutHPP++
			continue
		}
		s.CostedRevenue = s.CostedRevenue.Add(p.TotalRevenue)
		s.TotalCost = s.TotalCost.Add(p.TotalCost.Decimal)
		s.TotalGrossProfit = s.TotalGrossProfit.Add(p.GrossProfit.Decimal)
	}
	if s.TotalSkus > s.SkusWithoutHPP {
		s.OverallMargin = Margin(decimal.NewNullDecimal(s.TotalGrossProfit), s.CostedRevenue)
	}
	return s
}
