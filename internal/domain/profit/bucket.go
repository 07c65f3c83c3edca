package profit

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Granularity agrupación temporal de los pedidos.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

// DefaultTrendBuckets cantidad de buckets diarios que muestra la tendencia.
const DefaultTrendBuckets = 30

// TimeBucketSummary totales de un día o mes.
// Cost, GrossProfit y NetProfit suman solo pedidos con HPP completo (ver OrdersWithoutHPP);
// Revenue y Fees suman todos los pedidos del bucket.
type TimeBucketSummary struct {
	Key              string // 2006-01-02 | 2006-01
	Start            time.Time
	Revenue          decimal.Decimal
	Cost             decimal.Decimal
	GrossProfit      decimal.Decimal
	NetProfit        decimal.Decimal
	Fees             decimal.Decimal
	OrderCount       int
	OrdersWithoutHPP int
}

// BucketOptions parámetros de BucketByTime.
type BucketOptions struct {
	Granularity Granularity
	WindowEnd   time.Time      // cero = sin límite superior
	MaxBuckets  int            // <= 0 = sin truncar
	Location    *time.Location // nil = UTC
}

// BucketByTime agrupa pedidos por día o mes, en orden cronológico ascendente, y conserva
// los MaxBuckets más recientes. Los pedidos sin fecha quedan fuera.
func BucketByTime(orders []OrderCostSummary, opts BucketOptions) []TimeBucketSummary {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	var windowEnd time.Time
	if !opts.WindowEnd.IsZero() {
		windowEnd = bucketStart(opts.WindowEnd.In(loc), opts.Granularity)
	}

	buckets := make(map[string]*TimeBucketSummary)
	for _, o := range orders {
		if o.Order.OrderDate.IsZero() {
			continue
		}
		start := bucketStart(o.Order.OrderDate.In(loc), opts.Granularity)
		if !windowEnd.IsZero() && start.After(windowEnd) {
			continue
		}
		key := bucketKey(start, opts.Granularity)
		b, ok := buckets[key]
		if !ok {
			b = &TimeBucketSummary{Key: key, Start: start}
			buckets[key] = b
		}
		b.OrderCount++
		b.Revenue = b.Revenue.Add(o.TotalRevenue)
		b.Fees = b.Fees.Add(o.TotalFees)
		if !o.HasAllHPP {
			b.OrdersWithoutHPP++
			continue
		}
		b.Cost = b.Cost.Add(o.TotalProductCost.Decimal)
		b.GrossProfit = b.GrossProfit.Add(o.GrossProfit.Decimal)
		b.NetProfit = b.NetProfit.Add(o.NetProfit.Decimal)
	}

	out := make([]TimeBucketSummary, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })

	if opts.MaxBuckets > 0 && len(out) > opts.MaxBuckets {
		out = out[len(out)-opts.MaxBuckets:]
	}
	return out
}

func bucketStart(t time.Time, g Granularity) time.Time {
	if g == GranularityMonthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func bucketKey(start time.Time, g Granularity) string {
	if g == GranularityMonthly {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}
