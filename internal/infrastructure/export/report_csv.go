package export

import (
	"strconv"
	"time"

	"github.com/jhoicas/hpp-api/internal/application/report"
	"github.com/jhoicas/hpp-api/internal/domain/profit"
)

// ReportCSV implementa report.CSVExporter.
type ReportCSV struct{}

var _ report.CSVExporter = ReportCSV{}

// NewReportCSV construye el exportador.
func NewReportCSV() ReportCSV { return ReportCSV{} }

// ProductColumns columnas del reporte de desempeño por producto.
var ProductColumns = []Column[profit.ProductRollup]{
	{"SKU", func(p profit.ProductRollup) string { return p.SKU }},
	{"Product Name", func(p profit.ProductRollup) string { return p.ItemName }},
	{"Quantity Sold", func(p profit.ProductRollup) string { return strconv.FormatInt(p.TotalQuantity, 10) }},
	{"Revenue", func(p profit.ProductRollup) string { return Money(p.TotalRevenue) }},
	{"Cost", func(p profit.ProductRollup) string { return NullMoney(p.TotalCost) }},
	{"Gross Profit", func(p profit.ProductRollup) string { return NullMoney(p.GrossProfit) }},
	{"Margin %", func(p profit.ProductRollup) string { return Percent(p.GrossMargin) }},
	{"Avg Price", func(p profit.ProductRollup) string { return Money(p.AvgSellingPrice) }},
	{"Avg HPP", func(p profit.ProductRollup) string { return NullMoney(p.AvgHPP) }},
	{"Orders", func(p profit.ProductRollup) string { return strconv.Itoa(p.TotalOrders) }},
}

// ProductsCSV product-performance-report.csv.
func (ReportCSV) ProductsCSV(products []profit.ProductRollup) []byte {
	return []byte(ToDelimitedText(products, ProductColumns))
}

// pnlColumns columnas del P&L por pedido (encabezados del reporte "laporan laba rugi").
func pnlColumns(loc *time.Location) []Column[profit.OrderCostSummary] {
	return []Column[profit.OrderCostSummary]{
		{"No. Pesanan", func(s profit.OrderCostSummary) string { return s.Order.OrderSn }},
		{"Status", func(s profit.OrderCostSummary) string { return s.Order.Status }},
		{"Tanggal Pesanan", func(s profit.OrderCostSummary) string { return Date(s.Order.OrderDate, loc) }},
		{"Tanggal Pembayaran", func(s profit.OrderCostSummary) string {
			if s.Order.PaymentDate == nil {
				return ""
			}
			return Date(*s.Order.PaymentDate, loc)
		}},
		{"Pendapatan", func(s profit.OrderCostSummary) string { return Money(s.TotalRevenue) }},
		{"Biaya", func(s profit.OrderCostSummary) string { return NullMoney(s.TotalProductCost) }},
		{"Laba Kotor", func(s profit.OrderCostSummary) string { return NullMoney(s.GrossProfit) }},
		{"Total Fee", func(s profit.OrderCostSummary) string { return Money(s.TotalFees) }},
		{"Laba Bersih", func(s profit.OrderCostSummary) string { return NullMoney(s.NetProfit) }},
		{"Margin Kotor %", func(s profit.OrderCostSummary) string { return Percent(s.GrossMargin) }},
		{"Margin Bersih %", func(s profit.OrderCostSummary) string { return Percent(s.NetMargin) }},
		{"Item", func(s profit.OrderCostSummary) string { return strconv.Itoa(len(s.Items)) }},
	}
}

// PnLCSV laporan-laba-rugi.csv.
func (ReportCSV) PnLCSV(orders []profit.OrderCostSummary, loc *time.Location) []byte {
	return []byte(ToDelimitedText(orders, pnlColumns(loc)))
}

// ItemColumns tabla de líneas del desglose de un pedido.
var ItemColumns = []Column[profit.ItemMetrics]{
	{"SKU", func(m profit.ItemMetrics) string { return m.SKU }},
	{"Product Name", func(m profit.ItemMetrics) string { return m.ItemName }},
	{"Quantity", func(m profit.ItemMetrics) string { return strconv.FormatInt(m.Quantity, 10) }},
	{"Unit Price", func(m profit.ItemMetrics) string { return Money(m.UnitPrice) }},
	{"Revenue", func(m profit.ItemMetrics) string { return Money(m.Revenue) }},
	{"HPP", func(m profit.ItemMetrics) string { return NullMoney(m.HPP) }},
	{"Cost", func(m profit.ItemMetrics) string { return NullMoney(m.Cost) }},
	{"Profit", func(m profit.ItemMetrics) string { return NullMoney(m.GrossProfit) }},
	{"Margin %", func(m profit.ItemMetrics) string { return Percent(m.Margin) }},
}

// OrderCostsCSV order-cost-detail-<orderSn>.csv: líneas de título y etiqueta,
// la tabla de líneas y luego los costos a nivel de pedido.
func (ReportCSV) OrderCostsCSV(detail *report.OrderCostDetail, loc *time.Location) []byte {
	s := detail.Summary
	head := [][]string{
		{"Order Cost Breakdown Report"},
		{"Order SN", s.Order.OrderSn},
		{"Order Status", s.Order.Status},
		{"Order Date", Date(s.Order.OrderDate, loc)},
		{"Shop", s.Order.ShopName},
		{""},
		{"Item Details"},
	}
	tail := [][]string{
		{""},
		{"Order Level Costs"},
		{"Total Revenue", Money(s.TotalRevenue)},
		{"Product Cost", NullMoney(s.TotalProductCost)},
		{"Commission Fee", Money(s.Fees.Commission)},
		{"Service Fee", Money(s.Fees.Service)},
		{"Transaction Fee", Money(s.Fees.Transaction)},
		{"Shipping Fee", Money(s.Fees.Shipping)},
		{"Payment Channel Fee", Money(s.Fees.PaymentChannel)},
		{"Gross Profit", NullMoney(s.GrossProfit)},
		{"Net Profit", NullMoney(s.NetProfit)},
		{"Gross Margin %", Percent(s.GrossMargin)},
		{"Net Margin %", Percent(s.NetMargin)},
	}
	if e := detail.Escrow; e != nil {
		release := ""
		if e.EscrowReleaseTime != nil {
			release = Date(*e.EscrowReleaseTime, loc)
		}
		tail = append(tail,
			[]string{""},
			[]string{"Escrow Details"},
			[]string{"Payout Amount", Money(e.PayoutAmount)},
			[]string{"Escrow Release", release},
			[]string{"Buyer Payment Method", e.BuyerPaymentMethod},
		)
	}
	return []byte(JoinLines(head) + "\n" + ToDelimitedText(s.Items, ItemColumns) + "\n" + JoinLines(tail))
}
