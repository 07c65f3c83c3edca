package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrNothingToSubmit = errors.New("no hay actualizaciones de HPP pendientes")
	ErrUnknownSKU      = errors.New("SKU desconocido en el catálogo")
	ErrNegativeHPP     = errors.New("el HPP no puede ser negativo")
	ErrNotNumeric      = errors.New("el HPP no es numérico")
	ErrUnreadableSheet = errors.New("el archivo no se puede leer como tabla")
	ErrStoreRejected   = errors.New("el almacén rechazó el lote")
)

// ValidationError entrada manual inválida (no numérica o negativa) para un SKU.
// Se recupera localmente descartando la entrada; nunca aborta la operación completa.
type ValidationError struct {
	SKU string
	Raw string
	Err error // ErrNotNumeric | ErrNegativeHPP | ErrInvalidInput
}

func (e *ValidationError) Error() string {
	if e.SKU == "" {
		return fmt.Sprintf("valor %q inválido: %v", e.Raw, e.Err)
	}
	return fmt.Sprintf("SKU %s: valor %q inválido: %v", e.SKU, e.Raw, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseError el archivo subido no se puede interpretar como datos tabulares.
// Falla toda la carga, a diferencia de las filas omitidas.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%v: %v", ErrUnreadableSheet, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Filename, ErrUnreadableSheet, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnreadableSheet}
	}
	return []error{ErrUnreadableSheet, e.Err}
}

// SubmissionError el almacén externo rechazó el lote. Message se propaga tal cual.
// Si Rejected está vacío el rechazo es agregado: el lote completo debe reintentarse.
type SubmissionError struct {
	Message  string
	Rejected []entity.RejectedItem
	Err      error
}

func (e *SubmissionError) Error() string {
	var b strings.Builder
	b.WriteString(ErrStoreRejected.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Rejected) > 0 {
		fmt.Fprintf(&b, " (%d SKU rechazados)", len(e.Rejected))
	}
	return b.String()
}

func (e *SubmissionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStoreRejected}
	}
	return []error{ErrStoreRejected, e.Err}
}

// Partial indica si el almacén informó rechazos por SKU.
func (e *SubmissionError) Partial() bool { return len(e.Rejected) > 0 }

// PreconditionError el envío no puede iniciarse (lote vacío o SKU desconocido).
type PreconditionError struct {
	Err  error // ErrNothingToSubmit | ErrUnknownSKU
	SKUs []string
}

func (e *PreconditionError) Error() string {
	if len(e.SKUs) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, strings.Join(e.SKUs, ", "))
}

func (e *PreconditionError) Unwrap() error { return e.Err }
