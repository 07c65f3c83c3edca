package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hpp-api/internal/application/dto"
	"github.com/jhoicas/hpp-api/internal/application/report"
	"github.com/jhoicas/hpp-api/internal/domain"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/profit"
	"github.com/jhoicas/hpp-api/pkg/logger"
)

// ========== Mocks ==========

type mockOrders struct{ mock.Mock }

func (m *mockOrders) ListOrders(ctx context.Context, shopID string, f entity.OrderFilter) ([]entity.OrderBundle, error) {
	args := m.Called(ctx, shopID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OrderBundle), args.Error(1)
}

func (m *mockOrders) GetOrder(ctx context.Context, shopID, orderSn string) (*entity.OrderBundle, error) {
	args := m.Called(ctx, shopID, orderSn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OrderBundle), args.Error(1)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListSkus(ctx context.Context, shopID string) ([]entity.SkuRecord, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SkuRecord), args.Error(1)
}

type mockCSV struct{ mock.Mock }

func (m *mockCSV) ProductsCSV(p []profit.ProductRollup) []byte {
	return m.Called(p).Get(0).([]byte)
}

func (m *mockCSV) PnLCSV(o []profit.OrderCostSummary, loc *time.Location) []byte {
	return m.Called(o, loc).Get(0).([]byte)
}

func (m *mockCSV) OrderCostsCSV(d *report.OrderCostDetail, loc *time.Location) []byte {
	return m.Called(d, loc).Get(0).([]byte)
}

type mockPDF struct{ mock.Mock }

func (m *mockPDF) GeneratePnLPDF(ctx context.Context, rep *report.PnLReport) ([]byte, error) {
	args := m.Called(ctx, rep)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ========== Fixtures ==========

const shop = "shop-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(m time.Month, day int) time.Time { return time.Date(2024, m, day, 9, 0, 0, 0, time.UTC) }

func fixtureOrders() []entity.OrderBundle {
	return []entity.OrderBundle{
		{
			Order: entity.Order{OrderSn: "SN-1", Status: entity.OrderStatusCompleted, OrderDate: at(3, 1)},
			Items: []entity.OrderItem{
				{OrderSn: "SN-1", SKU: "A1", Quantity: 2, UnitPrice: d("50000")},
				{OrderSn: "SN-1", SKU: "B2", Quantity: 1, UnitPrice: d("20000"), HPP: decimal.NewNullDecimal(d("8000"))},
			},
			Fees: entity.PlatformFees{Commission: d("5000")},
		},
		{
			Order: entity.Order{OrderSn: "SN-2", Status: "SHIPPED", OrderDate: at(3, 3)},
			Items: []entity.OrderItem{{OrderSn: "SN-2", SKU: "C3", Quantity: 1, UnitPrice: d("10000")}},
		},
	}
}

func fixtureCatalog() []entity.SkuRecord {
	return []entity.SkuRecord{
		{SKU: "A1", ItemName: "Kaos", CurrentHPP: decimal.NewNullDecimal(d("30000"))},
		{SKU: "B2", ItemName: "Topi"},
		{SKU: "C3", ItemName: "Kaus Kaki"},
	}
}

type fixture struct {
	orders  *mockOrders
	catalog *mockCatalog
	csv     *mockCSV
	pdf     *mockPDF
	uc      *report.ReportUseCase
}

func newFixture() *fixture {
	f := &fixture{orders: new(mockOrders), catalog: new(mockCatalog), csv: new(mockCSV), pdf: new(mockPDF)}
	f.catalog.On("ListSkus", mock.Anything, shop).Return(fixtureCatalog(), nil)
	f.uc = report.NewReportUseCase(f.orders, f.catalog, f.csv, f.pdf, report.Options{
		Location:     time.UTC,
		TrendBuckets: 30,
		Clock:        func() time.Time { return at(3, 31) },
	}, logger.Nop())
	return f
}

// ========== P&L ==========

func TestProfitAndLoss_ResolvesCatalogHPPAndSummarizes(t *testing.T) {
	f := newFixture()
	f.orders.On("ListOrders", mock.Anything, shop, mock.Anything).Return(fixtureOrders(), nil)

	rep, err := f.uc.ProfitAndLoss(context.Background(), shop, dto.ReportQuery{})
	require.NoError(t, err)

	assert.Equal(t, report.GroupByOrder, rep.GroupBy)
	require.Len(t, rep.Orders, 2)
	assert.Equal(t, "SN-2", rep.Orders[0].Order.OrderSn, "más reciente primero")

	sn1 := rep.Orders[1]
	assert.True(t, sn1.HasAllHPP, "A1 toma el HPP vigente del catálogo")
	assert.True(t, sn1.TotalProductCost.Decimal.Equal(d("68000")))
	assert.True(t, sn1.NetProfit.Decimal.Equal(d("47000")))

	assert.False(t, rep.Orders[0].HasAllHPP, "C3 no tiene HPP en ningún lado")
	assert.Equal(t, 2, rep.Summary.TotalOrders)
	assert.Equal(t, 1, rep.Summary.OrdersWithoutHPP)
	assert.Equal(t, 1, rep.Completed.TotalOrders)
	assert.Equal(t, 1, rep.Pending.TotalOrders)
	require.Len(t, rep.Trend, 2)
	assert.Equal(t, "2024-03-01", rep.Trend[0].Key)
}

func TestProfitAndLoss_MonthlyBuckets(t *testing.T) {
	f := newFixture()
	f.orders.On("ListOrders", mock.Anything, shop, mock.Anything).Return(fixtureOrders(), nil)

	rep, err := f.uc.ProfitAndLoss(context.Background(), shop, dto.ReportQuery{GroupBy: "monthly"})
	require.NoError(t, err)

	assert.Nil(t, rep.Orders)
	require.Len(t, rep.Buckets, 1)
	assert.Equal(t, "2024-03", rep.Buckets[0].Key)
	assert.Equal(t, 2, rep.Buckets[0].OrderCount)
}

func TestProfitAndLoss_StatusAndDateFilter(t *testing.T) {
	f := newFixture()
	f.orders.On("ListOrders", mock.Anything, shop, mock.MatchedBy(func(fl entity.OrderFilter) bool {
		return fl.Status == entity.OrderStatusPending && fl.Start != nil && fl.End != nil &&
			fl.End.Equal(time.Date(2024, 3, 3, 23, 59, 59, 999999999, time.UTC))
	})).Return(fixtureOrders(), nil)

	rep, err := f.uc.ProfitAndLoss(context.Background(), shop, dto.ReportQuery{
		OrderStatus: "PENDING", StartDate: "2024-03-01", EndDate: "2024-03-03",
	})
	require.NoError(t, err)

	require.Len(t, rep.Orders, 1, "PENDING excluye los completados aunque el almacén los devuelva")
	assert.Equal(t, "SN-2", rep.Orders[0].Order.OrderSn)
}

func TestProfitAndLoss_InvalidDates(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ProfitAndLoss(context.Background(), shop, dto.ReportQuery{StartDate: "2024-03-05", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.ProfitAndLoss(context.Background(), shop, dto.ReportQuery{StartDate: "01/03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProfitAndLoss_StoreErrorPropagates(t *testing.T) {
	f := newFixture()
	boom := errors.New("timeout")
	f.orders.On("ListOrders", mock.Anything, shop, mock.Anything).Return(nil, boom)

	_, err := f.uc.ProfitAndLoss(context.Background(), shop, dto.ReportQuery{})
	assert.ErrorIs(t, err, boom)
}

// ========== Producto ==========

func TestProductPerformance_SKUFilterKeepsMatchingLines(t *testing.T) {
	f := newFixture()
	f.orders.On("ListOrders", mock.Anything, shop, mock.Anything).Return(fixtureOrders(), nil)

	rep, err := f.uc.ProductPerformance(context.Background(), shop, dto.ReportQuery{SKU: "b2"})
	require.NoError(t, err)

	require.Len(t, rep.Products, 1)
	assert.Equal(t, "B2", rep.Products[0].SKU)
	assert.Equal(t, profit.BandHigh, profit.ClassifyMargin(rep.Products[0]), "margen 60%")
	assert.Equal(t, 1, rep.Products[0].TotalOrders)
}

func TestProductPerformance_Distribution(t *testing.T) {
	f := newFixture()
	f.orders.On("ListOrders", mock.Anything, shop, mock.Anything).Return(fixtureOrders(), nil)

	rep, err := f.uc.ProductPerformance(context.Background(), shop, dto.ReportQuery{})
	require.NoError(t, err)

	require.Len(t, rep.Products, 3)
	assert.Equal(t, "A1", rep.Top[0].SKU)
	assert.Equal(t, 1, rep.Summary.SkusWithoutHPP)
	assert.Equal(t, profit.MarginDistribution{High: 2, NoHPP: 1}, rep.Distribution)
}

// ========== Detalle de pedido y exportación ==========

func TestOrderCosts_NotFound(t *testing.T) {
	f := newFixture()
	f.orders.On("GetOrder", mock.Anything, shop, "NOPE").Return(nil, nil)

	_, err := f.uc.OrderCosts(context.Background(), shop, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportOrderCosts_Filename(t *testing.T) {
	f := newFixture()
	b := fixtureOrders()[0]
	b.Escrow = &entity.EscrowDetail{PayoutAmount: d("100000"), BuyerPaymentMethod: "ShopeePay"}
	f.orders.On("GetOrder", mock.Anything, shop, "SN-1").Return(&b, nil)
	f.csv.On("OrderCostsCSV", mock.MatchedBy(func(det *report.OrderCostDetail) bool {
		return det.Summary.HasAllHPP && det.Escrow != nil
	}), time.UTC).Return([]byte("csv")).Once()

	dl, err := f.uc.ExportOrderCosts(context.Background(), shop, "SN-1")
	require.NoError(t, err)
	assert.Equal(t, "order-cost-detail-SN-1.csv", dl.Filename)
	assert.Equal(t, []byte("csv"), dl.Body)
}

func TestExportPnL_PDF(t *testing.T) {
	f := newFixture()
	f.orders.On("ListOrders", mock.Anything, shop, mock.Anything).Return(fixtureOrders(), nil)
	f.pdf.On("GeneratePnLPDF", mock.Anything, mock.MatchedBy(func(r *report.PnLReport) bool {
		return len(r.Orders) == 2
	})).Return([]byte("%PDF"), nil).Once()

	dl, err := f.uc.ExportPnL(context.Background(), shop, dto.ReportQuery{Format: "pdf", GroupBy: "daily"})
	require.NoError(t, err)
	assert.Equal(t, "laporan-laba-rugi.pdf", dl.Filename)
	assert.Equal(t, "application/pdf", dl.ContentType)
	f.csv.AssertNotCalled(t, "PnLCSV", mock.Anything, mock.Anything)
}
