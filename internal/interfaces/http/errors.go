package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hpp-api/internal/application/dto"
	"github.com/jhoicas/hpp-api/internal/domain"
)

// writeError traduce los errores de dominio a respuesta HTTP.
//
//	ValidationError / ErrInvalidInput → 400
//	ParseError                        → 422
//	PreconditionError                → 409
//	SubmissionError                   → 502
//	ErrNotFound                       → 404
//	otros                             → 500
func writeError(c *fiber.Ctx, err error) error {
	var (
		verr *domain.ValidationError
		perr *domain.ParseError
		pre  *domain.PreconditionError
		sub  *domain.SubmissionError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_HPP", Message: err.Error(),
			Details: []dto.ErrorDetail{{SKU: verr.SKU, Message: verr.Err.Error()}},
		})
	case errors.As(err, &perr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNREADABLE_FILE", Message: err.Error()})
	case errors.As(err, &pre):
		resp := dto.ErrorResponse{Code: "NOTHING_TO_SUBMIT", Message: err.Error()}
		if errors.Is(pre.Err, domain.ErrUnknownSKU) {
			resp.Code = "UNKNOWN_SKU"
			for _, sku := range pre.SKUs {
				resp.Details = append(resp.Details, dto.ErrorDetail{SKU: sku, Message: domain.ErrUnknownSKU.Error()})
			}
		}
		return c.Status(fiber.StatusConflict).JSON(resp)
	case errors.As(err, &sub):
		resp := dto.ErrorResponse{Code: "SUBMISSION_REJECTED", Message: err.Error()}
		for _, r := range sub.Rejected {
			resp.Details = append(resp.Details, dto.ErrorDetail{SKU: r.SKU, Message: r.Reason})
		}
		return c.Status(fiber.StatusBadGateway).JSON(resp)
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// ErrorHandler manejador global de Fiber: errores de Fiber conservan su código, el resto pasa por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
