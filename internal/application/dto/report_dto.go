package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/profit"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportQuery parámetros comunes de /api/reports/*.
type ReportQuery struct {
	OrderStatus string `query:"orderStatus" validate:"omitempty,oneof=COMPLETED PENDING all"`
	StartDate   string `query:"startDate" validate:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD, en la zona del reporte
	EndDate     string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`   // inclusive
	SKU         string `query:"sku" validate:"max=100"`
	GroupBy     string `query:"groupBy" validate:"omitempty,oneof=order daily monthly"`
	Format      string `query:"format" validate:"omitempty,oneof=json csv pdf"`
}

// ── Producto ──────────────────────────────────────────────────────────────────

// ProductPerformanceDTO rentabilidad por SKU. Campos de costo null = HPP incompleto.
type ProductPerformanceDTO struct {
	SKU             string           `json:"sku"`
	ItemName        string           `json:"itemName"`
	TotalQuantity   int64            `json:"totalQuantity"`
	TotalRevenue    decimal.Decimal  `json:"totalRevenue"`
	TotalCost       *decimal.Decimal `json:"totalCost"`
	GrossProfit     *decimal.Decimal `json:"grossProfit"`
	GrossMargin     *decimal.Decimal `json:"grossMargin"`
	AvgSellingPrice decimal.Decimal  `json:"avgSellingPrice"`
	AvgHPP          *decimal.Decimal `json:"avgHpp"`
	HasHPP          bool             `json:"hasHpp"`
	TotalOrders     int              `json:"totalOrders"`
	FirstSaleDate   *time.Time       `json:"firstSaleDate"`
	LastSaleDate    *time.Time       `json:"lastSaleDate"`
	MarginBand      string           `json:"marginBand"`
}

// ProductSummaryDTO totales del reporte por producto.
type ProductSummaryDTO struct {
	TotalSkus        int              `json:"totalSkus"`
	TotalRevenue     decimal.Decimal  `json:"totalRevenue"`
	TotalCost        decimal.Decimal  `json:"totalCost"`
	TotalGrossProfit decimal.Decimal  `json:"totalGrossProfit"`
	OverallMargin    *decimal.Decimal `json:"overallMargin"`
	SkusWithoutHpp   int              `json:"skusWithoutHpp"`
}

// MarginDistributionDTO conteo de productos por banda de margen.
type MarginDistributionDTO struct {
	High  int `json:"high"`
	Good  int `json:"good"`
	Low   int `json:"low"`
	Poor  int `json:"poor"`
	NoHpp int `json:"noHpp"`
}

// ProductReportResponse respuesta de GET /api/reports/products.
type ProductReportResponse struct {
	Data               []ProductPerformanceDTO `json:"data"`
	Summary            ProductSummaryDTO       `json:"summary"`
	MarginDistribution MarginDistributionDTO   `json:"marginDistribution"`
	TopByRevenue       []ProductPerformanceDTO `json:"topByRevenue"`
}

// NewProductPerformanceDTO mapea un rollup de SKU.
func NewProductPerformanceDTO(p profit.ProductRollup) ProductPerformanceDTO {
	return ProductPerformanceDTO{
		SKU:             p.SKU,
		ItemName:        p.ItemName,
		TotalQuantity:   p.TotalQuantity,
		TotalRevenue:    p.TotalRevenue,
		TotalCost:       nullable(p.TotalCost),
		GrossProfit:     nullable(p.GrossProfit),
		GrossMargin:     nullable(p.GrossMargin),
		AvgSellingPrice: p.AvgSellingPrice,
		AvgHPP:          nullable(p.AvgHPP),
		HasHPP:          p.HasHPP(),
		TotalOrders:     p.TotalOrders,
		FirstSaleDate:   timePtr(p.FirstSaleDate),
		LastSaleDate:    timePtr(p.LastSaleDate),
		MarginBand:      string(profit.ClassifyMargin(p)),
	}
}

// NewProductReportResponse arma la respuesta completa.
func NewProductReportResponse(
	products []profit.ProductRollup,
	summary profit.ProductSummary,
	dist profit.MarginDistribution,
	top []profit.ProductRollup,
) ProductReportResponse {
	out := ProductReportResponse{
		Data: make([]ProductPerformanceDTO, 0, len(products)),
		Summary: ProductSummaryDTO{
			TotalSkus:        summary.TotalSkus,
			TotalRevenue:     summary.TotalRevenue,
			TotalCost:        summary.TotalCost,
			TotalGrossProfit: summary.TotalGrossProfit,
			OverallMargin:    nullable(summary.OverallMargin),
			SkusWithoutHpp:   summary.SkusWithoutHPP,
		},
		MarginDistribution: MarginDistributionDTO{
			High: dist.High, Good: dist.Good, Low: dist.Low, Poor: dist.Poor, NoHpp: dist.NoHPP,
		},
		TopByRevenue: make([]ProductPerformanceDTO, 0, len(top)),
	}
	for _, p := range products {
		out.Data = append(out.Data, NewProductPerformanceDTO(p))
	}
	for _, p := range top {
		out.TopByRevenue = append(out.TopByRevenue, NewProductPerformanceDTO(p))
	}
	return out
}

// ── P&L ───────────────────────────────────────────────────────────────────────

// ItemCostDTO costo de una línea. hpp/cost/grossProfit/margin null = HPP no definido.
type ItemCostDTO struct {
	SKU         string           `json:"sku"`
	ItemName    string           `json:"itemName"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	Revenue     decimal.Decimal  `json:"revenue"`
	HPP         *decimal.Decimal `json:"hpp"`
	Cost        *decimal.Decimal `json:"cost"`
	GrossProfit *decimal.Decimal `json:"grossProfit"`
	Margin      *decimal.Decimal `json:"margin"`
	HasHPP      bool             `json:"hasHpp"`
}

// PlatformFeesDTO desglose de comisiones.
type PlatformFeesDTO struct {
	Commission     decimal.Decimal `json:"commissionFee"`
	Service        decimal.Decimal `json:"serviceFee"`
	Transaction    decimal.Decimal `json:"transactionFee"`
	Shipping       decimal.Decimal `json:"shippingFee"`
	PaymentChannel decimal.Decimal `json:"paymentChannelFee"`
	Total          decimal.Decimal `json:"totalFees"`
}

// OrderPnLDTO fila del P&L agrupado por pedido.
type OrderPnLDTO struct {
	OrderSn          string           `json:"orderSn"`
	Status           string           `json:"status"`
	OrderDate        *time.Time       `json:"orderDate"`
	PaymentDate      *time.Time       `json:"paymentDate"`
	TotalRevenue     decimal.Decimal  `json:"totalRevenue"`
	TotalProductCost *decimal.Decimal `json:"totalProductCost"`
	GrossProfit      *decimal.Decimal `json:"grossProfit"`
	TotalFees        decimal.Decimal  `json:"totalFees"`
	NetProfit        *decimal.Decimal `json:"netProfit"`
	GrossMargin      *decimal.Decimal `json:"grossMargin"`
	NetMargin        *decimal.Decimal `json:"netMargin"`
	ItemCount        int              `json:"itemCount"`
	HasAllHpp        bool             `json:"hasAllHpp"`
	ItemsWithoutHpp  int              `json:"itemsWithoutHpp"`
	Items            []ItemCostDTO    `json:"items"`
}

// TimeBucketDTO totales por día o mes.
type TimeBucketDTO struct {
	Period           string          `json:"period"`
	Revenue          decimal.Decimal `json:"revenue"`
	Cost             decimal.Decimal `json:"cost"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	Fees             decimal.Decimal `json:"fees"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	OrderCount       int             `json:"orderCount"`
	OrdersWithoutHpp int             `json:"ordersWithoutHpp"`
}

// PnLSummaryDTO totales del P&L.
type PnLSummaryDTO struct {
	TotalOrders        int              `json:"totalOrders"`
	TotalRevenue       decimal.Decimal  `json:"totalRevenue"`
	TotalCost          decimal.Decimal  `json:"totalCost"`
	TotalGrossProfit   decimal.Decimal  `json:"totalGrossProfit"`
	TotalFees          decimal.Decimal  `json:"totalFees"`
	TotalNetProfit     decimal.Decimal  `json:"totalNetProfit"`
	OverallGrossMargin *decimal.Decimal `json:"overallGrossMargin"`
	OverallNetMargin   *decimal.Decimal `json:"overallNetMargin"`
	OrdersWithoutHpp   int              `json:"ordersWithoutHpp"`
	CompletedOrders    int              `json:"completedOrders"`
	PendingOrders      int              `json:"pendingOrders"`
}

// StatusTotalsDTO totales de un grupo de estado.
type StatusTotalsDTO struct {
	Orders    int              `json:"orders"`
	Revenue   decimal.Decimal  `json:"revenue"`
	NetProfit decimal.Decimal  `json:"netProfit"`
	NetMargin *decimal.Decimal `json:"netMargin"`
}

// StatusComparisonDTO completados vs pendientes.
type StatusComparisonDTO struct {
	Completed StatusTotalsDTO `json:"completed"`
	Pending   StatusTotalsDTO `json:"pending"`
}

// PnLReportResponse respuesta de GET /api/reports/pnl.
// Orders se llena con groupBy=order; Buckets con daily/monthly.
type PnLReportResponse struct {
	GroupBy          string              `json:"groupBy"`
	Orders           []OrderPnLDTO       `json:"orders,omitempty"`
	Buckets          []TimeBucketDTO     `json:"buckets,omitempty"`
	Summary          PnLSummaryDTO       `json:"summary"`
	Trend            []TimeBucketDTO     `json:"trend"`
	StatusComparison StatusComparisonDTO `json:"statusComparison"`
}

// NewItemCostDTO mapea las métricas de una línea.
func NewItemCostDTO(m profit.ItemMetrics) ItemCostDTO {
	return ItemCostDTO{
		SKU:         m.SKU,
		ItemName:    m.ItemName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Revenue:     m.Revenue,
		HPP:         nullable(m.HPP),
		Cost:        nullable(m.Cost),
		GrossProfit: nullable(m.GrossProfit),
		Margin:      nullable(m.Margin),
		HasHPP:      m.HasHPP(),
	}
}

// NewPlatformFeesDTO mapea el desglose de comisiones.
func NewPlatformFeesDTO(f entity.PlatformFees) PlatformFeesDTO {
	return PlatformFeesDTO{
		Commission:     f.Commission,
		Service:        f.Service,
		Transaction:    f.Transaction,
		Shipping:       f.Shipping,
		PaymentChannel: f.PaymentChannel,
		Total:          f.Total(),
	}
}

// NewOrderPnLDTO mapea el resumen de un pedido.
func NewOrderPnLDTO(s profit.OrderCostSummary) OrderPnLDTO {
	out := OrderPnLDTO{
		OrderSn:          s.Order.OrderSn,
		Status:           s.Order.Status,
		OrderDate:        timePtr(s.Order.OrderDate),
		PaymentDate:      s.Order.PaymentDate,
		TotalRevenue:     s.TotalRevenue,
		TotalProductCost: nullable(s.TotalProductCost),
		GrossProfit:      nullable(s.GrossProfit),
		TotalFees:        s.TotalFees,
		NetProfit:        nullable(s.NetProfit),
		GrossMargin:      nullable(s.GrossMargin),
		NetMargin:        nullable(s.NetMargin),
		ItemCount:        len(s.Items),
		HasAllHpp:        s.HasAllHPP,
		ItemsWithoutHpp:  s.ItemsWithoutHPP,
		Items:            make([]ItemCostDTO, 0, len(s.Items)),
	}
	for _, m := range s.Items {
		out.Items = append(out.Items, NewItemCostDTO(m))
	}
	return out
}

// NewTimeBucketDTOs mapea buckets de tiempo.
func NewTimeBucketDTOs(buckets []profit.TimeBucketSummary) []TimeBucketDTO {
	out := make([]TimeBucketDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TimeBucketDTO{
			Period:           b.Key,
			Revenue:          b.Revenue,
			Cost:             b.Cost,
			GrossProfit:      b.GrossProfit,
			Fees:             b.Fees,
			NetProfit:        b.NetProfit,
			OrderCount:       b.OrderCount,
			OrdersWithoutHpp: b.OrdersWithoutHPP,
		})
	}
	return out
}

// NewPnLSummaryDTO mapea el resumen global.
func NewPnLSummaryDTO(s profit.PnLSummary) PnLSummaryDTO {
	return PnLSummaryDTO{
		TotalOrders:        s.TotalOrders,
		TotalRevenue:       s.TotalRevenue,
		TotalCost:          s.TotalCost,
		TotalGrossProfit:   s.TotalGrossProfit,
		TotalFees:          s.TotalFees,
		TotalNetProfit:     s.TotalNetProfit,
		OverallGrossMargin: nullable(s.OverallGrossMargin),
		OverallNetMargin:   nullable(s.OverallNetMargin),
		OrdersWithoutHpp:   s.OrdersWithoutHPP,
		CompletedOrders:    s.CompletedOrders,
		PendingOrders:      s.PendingOrders,
	}
}

// NewStatusTotalsDTO mapea el resumen de un grupo de estado.
func NewStatusTotalsDTO(s profit.PnLSummary) StatusTotalsDTO {
	return StatusTotalsDTO{
		Orders:    s.TotalOrders,
		Revenue:   s.TotalRevenue,
		NetProfit: s.TotalNetProfit,
		NetMargin: nullable(s.OverallNetMargin),
	}
}

// ── Detalle de costos de un pedido ────────────────────────────────────────────

// EscrowDTO datos de liquidación del marketplace.
type EscrowDTO struct {
	PayoutAmount       decimal.Decimal `json:"payoutAmount"`
	EscrowReleaseTime  *time.Time      `json:"escrowReleaseTime"`
	BuyerPaymentMethod string          `json:"buyerPaymentMethod"`
}

// OrderCostsDTO costos agregados del pedido.
type OrderCostsDTO struct {
	TotalRevenue     decimal.Decimal  `json:"totalRevenue"`
	TotalProductCost *decimal.Decimal `json:"totalProductCost"`
	GrossProfit      *decimal.Decimal `json:"grossProfit"`
	Fees             PlatformFeesDTO  `json:"fees"`
	NetProfit        *decimal.Decimal `json:"netProfit"`
	GrossMargin      *decimal.Decimal `json:"grossMargin"`
	NetMargin        *decimal.Decimal `json:"netMargin"`
}

// OrderInfoDTO cabecera del pedido.
type OrderInfoDTO struct {
	OrderSn     string          `json:"orderSn"`
	Status      string          `json:"status"`
	ShopName    string          `json:"shopName,omitempty"`
	OrderDate   *time.Time      `json:"orderDate"`
	PaymentDate *time.Time      `json:"paymentDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// OrderCostDetailResponse respuesta de GET /api/reports/order/:orderSn/costs.
type OrderCostDetailResponse struct {
	Order           OrderInfoDTO  `json:"order"`
	Items           []ItemCostDTO `json:"items"`
	Costs           OrderCostsDTO `json:"costs"`
	HasAllHpp       bool          `json:"hasAllHpp"`
	ItemsWithoutHpp int           `json:"itemsWithoutHpp"`
	Escrow          *EscrowDTO    `json:"escrow,omitempty"`
}

// NewOrderCostDetailResponse mapea el detalle de un pedido.
func NewOrderCostDetailResponse(s profit.OrderCostSummary, escrow *entity.EscrowDetail) OrderCostDetailResponse {
	out := OrderCostDetailResponse{
		Order: OrderInfoDTO{
			OrderSn:     s.Order.OrderSn,
			Status:      s.Order.Status,
			ShopName:    s.Order.ShopName,
			OrderDate:   timePtr(s.Order.OrderDate),
			PaymentDate: s.Order.PaymentDate,
			TotalAmount: s.Order.TotalAmount,
		},
		Items: make([]ItemCostDTO, 0, len(s.Items)),
		Costs: OrderCostsDTO{
			TotalRevenue:     s.TotalRevenue,
			TotalProductCost: nullable(s.TotalProductCost),
			GrossProfit:      nullable(s.GrossProfit),
			Fees:             NewPlatformFeesDTO(s.Fees),
			NetProfit:        nullable(s.NetProfit),
			GrossMargin:      nullable(s.GrossMargin),
			NetMargin:        nullable(s.NetMargin),
		},
		HasAllHpp:       s.HasAllHPP,
		ItemsWithoutHpp: s.ItemsWithoutHPP,
	}
	for _, m := range s.Items {
		out.Items = append(out.Items, NewItemCostDTO(m))
	}
	if escrow != nil {
		out.Escrow = &EscrowDTO{
			PayoutAmount:       escrow.PayoutAmount,
			EscrowReleaseTime:  escrow.EscrowReleaseTime,
			BuyerPaymentMethod: escrow.BuyerPaymentMethod,
		}
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
