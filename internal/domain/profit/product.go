package profit

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// ProductRollup rentabilidad acumulada de un SKU.
//
// AvgHPP promedia únicamente los HPP conocidos; las líneas sin HPP no cuentan como cero.
// TotalCost (y con él GrossProfit y GrossMargin) es nulo solo si AvgHPP es nulo. Si el SKU
// tiene líneas sin HPP, sus unidades se costean a AvgHPP (ver ItemsWithoutHPP).
type ProductRollup struct {
	SKU             string
	ItemName        string
	TotalQuantity   int64
	TotalRevenue    decimal.Decimal
	TotalCost       decimal.NullDecimal
	GrossProfit     decimal.NullDecimal
	GrossMargin     decimal.NullDecimal
	AvgSellingPrice decimal.Decimal // TotalRevenue / TotalQuantity
	AvgHPP          decimal.NullDecimal
	TotalOrders     int
	FirstSaleDate   time.Time
	LastSaleDate    time.Time
	ItemsWithoutHPP int
}

// HasHPP indica si el costo total del SKU es conocido.
func (p ProductRollup) HasHPP() bool { return p.TotalCost.Valid }

type productAcc struct {
	rollup     ProductRollup
	cost       decimal.Decimal
	hppSum     decimal.Decimal
	hppCount   int64
	unknownQty int64
	orderSeen  map[string]struct{}
}

// ComputeProductRollup agrupa las líneas de los pedidos por SKU.
// El resultado se ordena por ingreso descendente y luego por SKU.
func ComputeProductRollup(orders []entity.OrderBundle) []ProductRollup {
	accs := make(map[string]*productAcc)
	for _, b := range orders {
		for _, it := range b.Items {
			acc, ok := accs[it.SKU]
			if !ok {
				acc = &productAcc{
					rollup:    ProductRollup{SKU: it.SKU},
					orderSeen: make(map[string]struct{}),
				}
				accs[it.SKU] = acc
			}
			m := ComputeItemMetrics(it)
			r := &acc.rollup
			if r.ItemName == "" {
				r.ItemName = it.ItemName
			}
			r.TotalQuantity += it.Quantity
			r.TotalRevenue = r.TotalRevenue.Add(m.Revenue)
			if m.Cost.Valid {
				acc.cost = acc.cost.Add(m.Cost.Decimal)
				acc.hppSum = acc.hppSum.Add(it.HPP.Decimal)
				acc.hppCount++
			} else {
				r.ItemsWithoutHPP++
				acc.unknownQty += it.Quantity
			}

			orderKey := it.OrderSn
			if orderKey == "" {
				orderKey = b.Order.OrderSn
			}
			if _, seen := acc.orderSeen[orderKey]; !seen {
				acc.orderSeen[orderKey] = struct{}{}
				r.TotalOrders++
			}
			if d := b.Order.OrderDate; !d.IsZero() {
				if r.FirstSaleDate.IsZero() || d.Before(r.FirstSaleDate) {
					r.FirstSaleDate = d
				}
				if r.LastSaleDate.IsZero() || d.After(r.LastSaleDate) {
					r.LastSaleDate = d
				}
			}
		}
	}

	out := make([]ProductRollup, 0, len(accs))
	for _, acc := range accs {
		r := acc.rollup
		if r.TotalQuantity > 0 {
			r.AvgSellingPrice = r.TotalRevenue.Div(decimal.NewFromInt(r.TotalQuantity))
		}
		if acc.hppCount > 0 {
			avg := acc.hppSum.Div(decimal.NewFromInt(acc.hppCount))
			cost := acc.cost.Add(avg.Mul(decimal.NewFromInt(acc.unknownQty)))
			r.AvgHPP = decimal.NewNullDecimal(avg)
			r.TotalCost = decimal.NewNullDecimal(cost)
			r.GrossProfit = decimal.NewNullDecimal(r.TotalRevenue.Sub(cost))
			r.GrossMargin = Margin(r.GrossProfit, r.TotalRevenue)
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalRevenue.Cmp(out[j].TotalRevenue); c != 0 {
			return c > 0
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

// TopByRevenue primeros n productos por ingreso (la entrada ya viene ordenada).
func TopByRevenue(products []ProductRollup, n int) []ProductRollup {
	if n <= 0 || len(products) <= n {
		return products
	}
	return products[:n]
}
