package http

import (
	"bytes"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hpp-api/internal/application/dto"
)

const (
	templateFilename    = "hpp-input-template.xlsx"
	contentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultUploadMaxLen = 10 << 20
)

// HPPService contrato que el handler necesita de *costbasis.IngestionUseCase.
type HPPService interface {
	ListSkus(ctx context.Context, shopID string, req dto.SkuListRequest) (*dto.SkuListResponse, error)
	WriteTemplate(ctx context.Context, shopID string, req dto.SkuListRequest, w io.Writer) error
	Upload(ctx context.Context, shopID, filename string, r io.Reader, req dto.HPPUploadRequest) (*dto.HPPUploadResponse, error)
	BulkUpdate(ctx context.Context, shopID string, req dto.BulkUpdateHPPRequest) (*dto.BulkUpdateHPPResponse, error)
}

// HPPHandler endpoints de catálogo de SKUs y carga de HPP.
type HPPHandler struct {
	uc        HPPService
	maxUpload int64
}

// NewHPPHandler construye el handler. maxUpload <= 0 usa 10 MiB.
func NewHPPHandler(uc HPPService, maxUpload int) *HPPHandler {
	n := int64(maxUpload)
	if n <= 0 {
		n = defaultUploadMaxLen
	}
	return &HPPHandler{uc: uc, maxUpload: n}
}

// ListSkus godoc
// @Summary      Catálogo de SKUs con HPP vigente
// @Tags         hpp
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Búsqueda por SKU o nombre"
// @Success      200  {object}  dto.SkuListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/order-items/skus [get]
func (h *HPPHandler) ListSkus(c *fiber.Ctx) error {
	var req dto.SkuListRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}
	resp, err := h.uc.ListSkus(c.Context(), GetShopID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Template godoc
// @Summary      Plantilla .xlsx para cargar HPP
// @Tags         hpp
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        q  query  string  false  "Búsqueda por SKU o nombre"
// @Router       /api/order-items/hpp/template [get]
func (h *HPPHandler) Template(c *fiber.Ctx) error {
	var req dto.SkuListRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}
	var buf bytes.Buffer
	if err := h.uc.WriteTemplate(c.Context(), GetShopID(c), req, &buf); err != nil {
		return writeError(c, err)
	}
	c.Attachment(templateFilename)
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	return c.Send(buf.Bytes())
}

// Upload godoc
// @Summary      Carga de HPP desde .xlsx o .csv
// @Description  Devuelve la vista previa del conjunto pendiente. Con submit=true lo envía en un solo lote.
// @Tags         hpp
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "Hoja con columnas SKU y HPP"
// @Param        submit  query     bool    false  "Enviar tras la carga"
// @Param        notes   query     string  false  "Notas del lote"
// @Success      200  {object}  dto.HPPUploadResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/order-items/hpp/upload [post]
func (h *HPPHandler) Upload(c *fiber.Ctx) error {
	var req dto.HPPUploadRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'file' requerido"})
	}
	if fh.Size > h.maxUpload {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo excede el tamaño máximo"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	resp, err := h.uc.Upload(c.Context(), GetShopID(c), fh.Filename, f, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// BulkUpdate godoc
// @Summary      Actualización masiva de HPP
// @Description  Cada ítem se valida como edición manual; los inválidos se descartan y el resto se envía como un lote atómico.
// @Tags         hpp
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateHPPRequest  true  "Ítems y notas"
// @Success      200  {object}  dto.BulkUpdateHPPResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/order-items/hpp/bulk-update [post]
func (h *HPPHandler) BulkUpdate(c *fiber.Ctx) error {
	var req dto.BulkUpdateHPPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "JSON inválido"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationResponse(c, err)
	}
	resp, err := h.uc.BulkUpdate(c.Context(), GetShopID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
