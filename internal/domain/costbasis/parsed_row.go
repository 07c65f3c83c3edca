package costbasis

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// SkipReason motivo por el que una fila de la hoja no entra al conjunto pendiente.
type SkipReason string

const (
	SkipMissingSKU   SkipReason = "missing_sku"
	SkipMissingValue SkipReason = "missing_value"
	SkipNotNumeric   SkipReason = "not_numeric"
	SkipNegative     SkipReason = "negative"
)

// ParsedRow resultado de resolver una fila: ValidRow o SkippedRow.
type ParsedRow interface {
	SheetRow() int
}

// ValidRow fila con SKU y HPP válido.
type ValidRow struct {
	Row      int
	SKU      string
	HPP      decimal.Decimal
	ItemName string
}

// SkippedRow fila omitida en silencio (solo se refleja en el conteo).
type SkippedRow struct {
	Row    int
	SKU    string
	Reason SkipReason
}

func (r ValidRow) SheetRow() int   { return r.Row }
func (r SkippedRow) SheetRow() int { return r.Row }

// ResolveRow aplica la tabla de alias a una fila de hoja.
func ResolveRow(row entity.SheetRow) ParsedRow {
	sku := row.Value(SKUColumnAliases...)
	if sku == "" {
		return SkippedRow{Row: row.Index, Reason: SkipMissingSKU}
	}
	raw := row.Value(HPPColumnAliases...)
	if raw == "" {
		return SkippedRow{Row: row.Index, SKU: sku, Reason: SkipMissingValue}
	}
	hpp, err := ParseHPP(raw)
	if err != nil {
		reason := SkipNotNumeric
		if errors.Is(err, domain.ErrNegativeHPP) {
			reason = SkipNegative
		}
		return SkippedRow{Row: row.Index, SKU: sku, Reason: reason}
	}
	return ValidRow{
		Row:      row.Index,
		SKU:      sku,
		HPP:      hpp,
		ItemName: row.Value(ItemNameColumnAliases...),
	}
}

// ParseHPP interpreta un valor de HPP como decimal no negativo.
// Devuelve ErrNotNumeric o ErrNegativeHPP.
func ParseHPP(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, domain.ErrNotNumeric
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.ErrNotNumeric
	}
	if d.IsNegative() {
		return decimal.Zero, domain.ErrNegativeHPP
	}
	return d, nil
}
