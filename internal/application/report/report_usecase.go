// Package report orquesta los reportes de rentabilidad: lee pedidos y catálogo,
// resuelve el HPP de cada línea y agrega con el paquete profit.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/hpp-api/internal/application/dto"
	"github.com/jhoicas/hpp-api/internal/domain"
	"github.com/jhoicas/hpp-api/internal/domain/catalog"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/profit"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
	"github.com/jhoicas/hpp-api/pkg/logger"
)

const (
	topProductsN = 10

	GroupByOrder = "order"

	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"

	contentTypeCSV = "text/csv; charset=utf-8"
	contentTypePDF = "application/pdf"
)

// Options parámetros del caso de uso tomados de la configuración.
type Options struct {
	Location     *time.Location
	TrendBuckets int
	Clock        func() time.Time // nil = time.Now
}

// ProductReport resultado del reporte por producto.
type ProductReport struct {
	Filter       entity.OrderFilter
	Products     []profit.ProductRollup
	Summary      profit.ProductSummary
	Distribution profit.MarginDistribution
	Top          []profit.ProductRollup
}

// PnLReport resultado del reporte de pérdidas y ganancias.
type PnLReport struct {
	ShopID      string
	Filter      entity.OrderFilter
	GroupBy     string
	Location    *time.Location
	GeneratedAt time.Time
	Orders      []profit.OrderCostSummary // más reciente primero
	Buckets     []profit.TimeBucketSummary
	Summary     profit.PnLSummary
	Trend       []profit.TimeBucketSummary
	Completed   profit.PnLSummary
	Pending     profit.PnLSummary
}

// OrderCostDetail desglose de costos de un pedido.
type OrderCostDetail struct {
	Summary profit.OrderCostSummary
	Escrow  *entity.EscrowDetail
}

// Download archivo exportado listo para enviar.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportUseCase casos de uso de reportes.
type ReportUseCase struct {
	orders  repository.OrderReportRepository
	catalog repository.CatalogRepository
	csv     CSVExporter
	pdf     PnLPDFGenerator
	opts    Options
	log     *logger.Logger
	now     func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	orders repository.OrderReportRepository,
	catalogRepo repository.CatalogRepository,
	csv CSVExporter,
	pdf PnLPDFGenerator,
	opts Options,
	log *logger.Logger,
) *ReportUseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.TrendBuckets <= 0 {
		opts.TrendBuckets = profit.DefaultTrendBuckets
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		orders:  orders,
		catalog: catalogRepo,
		csv:     csv,
		pdf:     pdf,
		opts:    opts,
		log:     log.Component("report"),
		now:     opts.Clock,
	}
}

// ProductPerformance reporte de rentabilidad por SKU.
func (uc *ReportUseCase) ProductPerformance(ctx context.Context, shopID string, q dto.ReportQuery) (*ProductReport, error) {
	filter, err := uc.parseFilter(q)
	if err != nil {
		return nil, err
	}
	bundles, err := uc.loadResolved(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}
	products := profit.ComputeProductRollup(bundles)
	return &ProductReport{
		Filter:       filter,
		Products:     products,
		Summary:      profit.SummarizeProducts(products),
		Distribution: profit.BucketByMarginBand(products),
		Top:          profit.TopByRevenue(products, topProductsN),
	}, nil
}

// ProfitAndLoss reporte de pérdidas y ganancias por pedido, día o mes.
func (uc *ReportUseCase) ProfitAndLoss(ctx context.Context, shopID string, q dto.ReportQuery) (*PnLReport, error) {
	filter, err := uc.parseFilter(q)
	if err != nil {
		return nil, err
	}
	// el P&L no filtra por SKU: pedidos completos
	filter.SKU = ""

	bundles, err := uc.loadResolved(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}
	summaries := profit.ComputeOrderSummaries(bundles)
	sortOrdersRecentFirst(summaries)

	now := uc.now().In(uc.opts.Location)
	rep := &PnLReport{
		ShopID:      shopID,
		Filter:      filter,
		GroupBy:     q.GroupBy,
		Location:    uc.opts.Location,
		GeneratedAt: now,
		Summary:     profit.SummarizeOrders(summaries),
	}
	if rep.GroupBy == "" {
		rep.GroupBy = GroupByOrder
	}

	switch rep.GroupBy {
	case string(profit.GranularityDaily), string(profit.GranularityMonthly):
		rep.Buckets = profit.BucketByTime(summaries, profit.BucketOptions{
			Granularity: profit.Granularity(rep.GroupBy),
			Location:    uc.opts.Location,
		})
	default:
		rep.Orders = summaries
	}

	windowEnd := now
	if filter.End != nil {
		windowEnd = *filter.End
	}
	rep.Trend = profit.BucketByTime(summaries, profit.BucketOptions{
		Granularity: profit.GranularityDaily,
		WindowEnd:   windowEnd,
		MaxBuckets:  uc.opts.TrendBuckets,
		Location:    uc.opts.Location,
	})

	var completed, pending []profit.OrderCostSummary
	for _, s := range summaries {
		if s.Order.IsCompleted() {
			completed = append(completed, s)
		} else {
			pending = append(pending, s)
		}
	}
	rep.Completed = profit.SummarizeOrders(completed)
	rep.Pending = profit.SummarizeOrders(pending)
	return rep, nil
}

// OrderCosts desglose de costos de un pedido. domain.ErrNotFound si no existe.
func (uc *ReportUseCase) OrderCosts(ctx context.Context, shopID, orderSn string) (*OrderCostDetail, error) {
	orderSn = strings.TrimSpace(orderSn)
	if orderSn == "" {
		return nil, fmt.Errorf("%w: orderSn requerido", domain.ErrInvalidInput)
	}

	var (
		bundle *entity.OrderBundle
		idx    *catalog.Index
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := uc.orders.GetOrder(gctx, shopID, orderSn)
		if err != nil {
			return fmt.Errorf("reporte: obtener pedido: %w", err)
		}
		bundle = b
		return nil
	})
	g.Go(func() error {
		var err error
		idx, err = uc.loadCatalog(gctx, shopID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, domain.ErrNotFound
	}

	resolved := profit.ResolveCostBasis([]entity.OrderBundle{*bundle}, idx)[0]
	return &OrderCostDetail{
		Summary: profit.ComputeOrderSummary(resolved.Order, resolved.Items, resolved.Fees),
		Escrow:  resolved.Escrow,
	}, nil
}

// ExportProducts CSV del reporte por producto.
func (uc *ReportUseCase) ExportProducts(ctx context.Context, shopID string, q dto.ReportQuery) (*Download, error) {
	rep, err := uc.ProductPerformance(ctx, shopID, q)
	if err != nil {
		return nil, err
	}
	return &Download{
		Filename:    "product-performance-report.csv",
		ContentType: contentTypeCSV,
		Body:        uc.csv.ProductsCSV(rep.Products),
	}, nil
}

// ExportPnL CSV o PDF del P&L por pedido (q.Format decide; por defecto CSV).
func (uc *ReportUseCase) ExportPnL(ctx context.Context, shopID string, q dto.ReportQuery) (*Download, error) {
	q.GroupBy = GroupByOrder
	rep, err := uc.ProfitAndLoss(ctx, shopID, q)
	if err != nil {
		return nil, err
	}
	if q.Format == FormatPDF {
		body, err := uc.pdf.GeneratePnLPDF(ctx, rep)
		if err != nil {
			return nil, fmt.Errorf("reporte: pdf: %w", err)
		}
		return &Download{Filename: "laporan-laba-rugi.pdf", ContentType: contentTypePDF, Body: body}, nil
	}
	return &Download{
		Filename:    "laporan-laba-rugi.csv",
		ContentType: contentTypeCSV,
		Body:        uc.csv.PnLCSV(rep.Orders, uc.opts.Location),
	}, nil
}

// ExportOrderCosts CSV del desglose de un pedido.
func (uc *ReportUseCase) ExportOrderCosts(ctx context.Context, shopID, orderSn string) (*Download, error) {
	detail, err := uc.OrderCosts(ctx, shopID, orderSn)
	if err != nil {
		return nil, err
	}
	return &Download{
		Filename:    fmt.Sprintf("order-cost-detail-%s.csv", detail.Summary.Order.OrderSn),
		ContentType: contentTypeCSV,
		Body:        uc.csv.OrderCostsCSV(detail, uc.opts.Location),
	}, nil
}

// loadResolved lee pedidos y catálogo en paralelo, aplica el filtro y resuelve el HPP.
func (uc *ReportUseCase) loadResolved(ctx context.Context, shopID string, filter entity.OrderFilter) ([]entity.OrderBundle, error) {
	var (
		bundles []entity.OrderBundle
		idx     *catalog.Index
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := uc.orders.ListOrders(gctx, shopID, filter)
		if err != nil {
			return fmt.Errorf("reporte: listar pedidos: %w", err)
		}
		bundles = b
		return nil
	})
	g.Go(func() error {
		var err error
		idx, err = uc.loadCatalog(gctx, shopID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundles = applyFilter(bundles, filter)
	uc.log.Debug().Str("shop_id", shopID).Int("orders", len(bundles)).Int("skus", idx.Len()).Msg("datos de reporte cargados")
	return profit.ResolveCostBasis(bundles, idx), nil
}

func (uc *ReportUseCase) loadCatalog(ctx context.Context, shopID string) (*catalog.Index, error) {
	records, err := uc.catalog.ListSkus(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("reporte: listar skus: %w", err)
	}
	return catalog.NewIndex(records), nil
}

// parseFilter convierte la query en filtro. Las fechas se interpretan en la zona del reporte;
// endDate es inclusive hasta el final del día.
func (uc *ReportUseCase) parseFilter(q dto.ReportQuery) (entity.OrderFilter, error) {
	f := entity.OrderFilter{Status: q.OrderStatus, SKU: strings.TrimSpace(q.SKU)}
	if f.Status == "" {
		f.Status = entity.OrderStatusAll
	}
	loc := uc.opts.Location
	if q.StartDate != "" {
		t, err := time.ParseInLocation("2006-01-02", q.StartDate, loc)
		if err != nil {
			return f, fmt.Errorf("%w: startDate debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.Start = &t
	}
	if q.EndDate != "" {
		t, err := time.ParseInLocation("2006-01-02", q.EndDate, loc)
		if err != nil {
			return f, fmt.Errorf("%w: endDate debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.End = &end
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return f, fmt.Errorf("%w: endDate anterior a startDate", domain.ErrInvalidInput)
	}
	return f, nil
}

// applyFilter descarta pedidos fuera del filtro y, con filtro de SKU, las líneas de otros SKUs.
// Los adaptadores pueden filtrar en origen; aplicarlo aquí deja el resultado igual en ambos drivers.
func applyFilter(bundles []entity.OrderBundle, f entity.OrderFilter) []entity.OrderBundle {
	out := make([]entity.OrderBundle, 0, len(bundles))
	for _, b := range bundles {
		if !f.MatchesOrder(b.Order) {
			continue
		}
		if f.SKU != "" {
			items := make([]entity.OrderItem, 0, len(b.Items))
			for _, it := range b.Items {
				if f.MatchesSKU(it.SKU) {
					items = append(items, it)
				}
			}
			if len(items) == 0 {
				continue
			}
			b.Items = items
		}
		out = append(out, b)
	}
	return out
}

func sortOrdersRecentFirst(s []profit.OrderCostSummary) {
	sort.SliceStable(s, func(i, j int) bool {
		a, b := s[i].Order.OrderDate, s[j].Order.OrderDate
		switch {
		case a.IsZero() != b.IsZero():
			return !a.IsZero()
		case !a.Equal(b):
			return a.After(b)
		default:
			return s[i].Order.OrderSn < s[j].Order.OrderSn
		}
	})
}
