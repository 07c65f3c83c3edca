package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hpp-api/internal/application/dto"
	"github.com/jhoicas/hpp-api/internal/application/report"
)

// ReportService contrato que el handler necesita de *report.ReportUseCase.
type ReportService interface {
	ProductPerformance(ctx context.Context, shopID string, q dto.ReportQuery) (*report.ProductReport, error)
	ProfitAndLoss(ctx context.Context, shopID string, q dto.ReportQuery) (*report.PnLReport, error)
	OrderCosts(ctx context.Context, shopID, orderSn string) (*report.OrderCostDetail, error)
	ExportProducts(ctx context.Context, shopID string, q dto.ReportQuery) (*report.Download, error)
	ExportPnL(ctx context.Context, shopID string, q dto.ReportQuery) (*report.Download, error)
	ExportOrderCosts(ctx context.Context, shopID, orderSn string) (*report.Download, error)
}

// ReportHandler endpoints de reportes de rentabilidad.
type ReportHandler struct {
	uc ReportService
}

// NewReportHandler construye el handler.
func NewReportHandler(uc ReportService) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Products godoc
// @Summary      Rentabilidad por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json,text/csv
// @Param        sku          query  string  false  "Coincidencia parcial de SKU"
// @Param        startDate    query  string  false  "YYYY-MM-DD"
// @Param        endDate      query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        orderStatus  query  string  false  "COMPLETED | PENDING | all"
// @Param        format       query  string  false  "json | csv"
// @Success      200  {object}  dto.ProductReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/products [get]
func (h *ReportHandler) Products(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	switch q.Format {
	case report.FormatCSV:
		dl, err := h.uc.ExportProducts(c.Context(), GetShopID(c), q)
		if err != nil {
			return writeError(c, err)
		}
		return sendDownload(c, dl)
	case report.FormatPDF:
		return unsupportedFormat(c, q.Format)
	}

	rep, err := h.uc.ProductPerformance(c.Context(), GetShopID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductReportResponse(rep.Products, rep.Summary, rep.Distribution, rep.Top))
}

// PnL godoc
// @Summary      Pérdidas y ganancias
// @Tags         reports
// @Security     Bearer
// @Produce      json,text/csv,application/pdf
// @Param        orderStatus  query  string  false  "COMPLETED | PENDING | all"
// @Param        startDate    query  string  false  "YYYY-MM-DD"
// @Param        endDate      query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        groupBy      query  string  false  "order | daily | monthly"
// @Param        format       query  string  false  "json | csv | pdf"
// @Success      200  {object}  dto.PnLReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/pnl [get]
func (h *ReportHandler) PnL(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	if q.Format == report.FormatCSV || q.Format == report.FormatPDF {
		dl, err := h.uc.ExportPnL(c.Context(), GetShopID(c), q)
		if err != nil {
			return writeError(c, err)
		}
		return sendDownload(c, dl)
	}

	rep, err := h.uc.ProfitAndLoss(c.Context(), GetShopID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newPnLResponse(rep))
}

// OrderCosts godoc
// @Summary      Desglose de costos de un pedido
// @Tags         reports
// @Security     Bearer
// @Produce      json,text/csv
// @Param        orderSn  path   string  true   "Número de pedido"
// @Param        format   query  string  false  "json | csv"
// @Success      200  {object}  dto.OrderCostDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/order/{orderSn}/costs [get]
func (h *ReportHandler) OrderCosts(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	orderSn := c.Params("orderSn")
	switch q.Format {
	case report.FormatCSV:
		dl, err := h.uc.ExportOrderCosts(c.Context(), GetShopID(c), orderSn)
		if err != nil {
			return writeError(c, err)
		}
		return sendDownload(c, dl)
	case report.FormatPDF:
		return unsupportedFormat(c, q.Format)
	}

	detail, err := h.uc.OrderCosts(c.Context(), GetShopID(c), orderSn)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderCostDetailResponse(detail.Summary, detail.Escrow))
}

func newPnLResponse(rep *report.PnLReport) dto.PnLReportResponse {
	out := dto.PnLReportResponse{
		GroupBy: rep.GroupBy,
		Summary: dto.NewPnLSummaryDTO(rep.Summary),
		Trend:   dto.NewTimeBucketDTOs(rep.Trend),
		StatusComparison: dto.StatusComparisonDTO{
			Completed: dto.NewStatusTotalsDTO(rep.Completed),
			Pending:   dto.NewStatusTotalsDTO(rep.Pending),
		},
	}
	if rep.GroupBy == report.GroupByOrder {
		out.Orders = make([]dto.OrderPnLDTO, 0, len(rep.Orders))
		for _, s := range rep.Orders {
			out.Orders = append(out.Orders, dto.NewOrderPnLDTO(s))
		}
	} else {
		out.Buckets = dto.NewTimeBucketDTOs(rep.Buckets)
	}
	return out
}

func sendDownload(c *fiber.Ctx, dl *report.Download) error {
	c.Attachment(dl.Filename)
	c.Set(fiber.HeaderContentType, dl.ContentType)
	return c.Send(dl.Body)
}

func unsupportedFormat(c *fiber.Ctx, format string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "UNSUPPORTED_FORMAT", Message: "formato no disponible para este reporte: " + format,
	})
}
