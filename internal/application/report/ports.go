package report

import (
	"context"
	"time"

	"github.com/jhoicas/hpp-api/internal/domain/profit"
)

// CSVExporter genera los archivos de texto delimitado de cada reporte.
type CSVExporter interface {
	ProductsCSV(products []profit.ProductRollup) []byte
	PnLCSV(orders []profit.OrderCostSummary, loc *time.Location) []byte
	OrderCostsCSV(detail *OrderCostDetail, loc *time.Location) []byte
}

// PnLPDFGenerator genera la versión PDF del reporte de pérdidas y ganancias.
type PnLPDFGenerator interface {
	GeneratePnLPDF(ctx context.Context, rep *PnLReport) ([]byte, error)
}
