package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hpp-api/internal/application/dto"
)

var validate = newValidator()

// newValidator usa los nombres de los tags json/query en los mensajes.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// validationResponse 400 con el detalle por campo.
func validationResponse(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "parámetros inválidos"}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			resp.Details = append(resp.Details, dto.ErrorDetail{Field: fieldPath(e), Message: validationMessage(e)})
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}

// fieldPath quita el nombre del struct raíz: "items[0].sku".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "campo requerido"
	case "max":
		return "máximo " + e.Param() + " caracteres"
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "datetime":
		return "fecha inválida, formato " + e.Param()
	default:
		return "valor inválido"
	}
}

// parseQuery llena dst desde la query string y lo valida. Devuelve false si ya respondió.
func parseQuery(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.QueryParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	if err := validate.Struct(dst); err != nil {
		return false, validationResponse(c, err)
	}
	return true, nil
}
