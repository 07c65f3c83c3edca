// Package costbasis implementa la ingesta de HPP: ediciones manuales y cargas de hoja
// de cálculo que se combinan en un conjunto pendiente por SKU (gana la última escritura).
package costbasis

import (
	"strings"

	"github.com/jhoicas/hpp-api/internal/domain"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// Session conjunto pendiente de una sesión de ingesta (un diálogo / un flujo).
// No es seguro para uso concurrente: cada flujo crea la suya.
type Session struct {
	pending map[string]entity.CostBasisUpdate
}

// IngestionReport resultado de una carga tabular.
// Ingested = SKUs distintos combinados desde esta carga; las filas omitidas no son errores.
type IngestionReport struct {
	Ingested int
	Accepted int
	Skipped  map[SkipReason]int
}

// SkippedTotal filas omitidas por cualquier motivo.
func (r IngestionReport) SkippedTotal() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// NewSession crea una sesión vacía.
func NewSession() *Session {
	return &Session{pending: make(map[string]entity.CostBasisUpdate)}
}

// ApplyManualEdit interpreta rawValue como HPP no negativo. Si es inválido elimina la
// entrada pendiente del SKU (si existía) y devuelve *domain.ValidationError; si es válido
// inserta o reemplaza la entrada.
func (s *Session) ApplyManualEdit(sku, rawValue string) error {
	return s.applyEdit(sku, rawValue, "")
}

// ApplyManualEditWithName igual que ApplyManualEdit con sugerencia de nombre del producto.
func (s *Session) ApplyManualEditWithName(sku, rawValue, itemName string) error {
	return s.applyEdit(sku, rawValue, itemName)
}

func (s *Session) applyEdit(sku, rawValue, itemName string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return &domain.ValidationError{Raw: rawValue, Err: domain.ErrInvalidInput}
	}
	hpp, err := ParseHPP(rawValue)
	if err != nil {
		delete(s.pending, sku)
		return &domain.ValidationError{SKU: sku, Raw: rawValue, Err: err}
	}
	s.pending[sku] = entity.CostBasisUpdate{
		SKU:          sku,
		HPP:          hpp,
		ItemNameHint: strings.TrimSpace(itemName),
		Provenance:   entity.ManualProvenance(),
	}
	return nil
}

// IngestTabularUpload combina las filas válidas en el conjunto pendiente.
// Filas sin SKU o con valor no numérico/negativo se omiten en silencio.
// SKUs ausentes del catálogo se aceptan igual; la autoridad final es el envío.
func (s *Session) IngestTabularUpload(rows []entity.SheetRow) IngestionReport {
	report := IngestionReport{Skipped: make(map[SkipReason]int)}
	merged := make(map[string]struct{})
	for _, row := range rows {
		switch r := ResolveRow(row).(type) {
		case ValidRow:
			s.pending[r.SKU] = entity.CostBasisUpdate{
				SKU:          r.SKU,
				HPP:          r.HPP,
				ItemNameHint: r.ItemName,
				Provenance:   entity.SpreadsheetProvenance(r.Row),
			}
			merged[r.SKU] = struct{}{}
			report.Accepted++
		case SkippedRow:
			report.Skipped[r.Reason]++
		}
	}
	report.Ingested = len(merged)
	return report
}

// CurrentPending copia de solo lectura del conjunto pendiente.
func (s *Session) CurrentPending() map[string]entity.CostBasisUpdate {
	out := make(map[string]entity.CostBasisUpdate, len(s.pending))
	for k, v := range s.pending {
		out[k] = v
	}
	return out
}

// Len cantidad de SKUs pendientes.
func (s *Session) Len() int { return len(s.pending) }

// Discard elimina la entrada pendiente de un SKU.
func (s *Session) Discard(sku string) {
	delete(s.pending, sku)
}

// Clear vacía el conjunto pendiente (tras envío exitoso o cancelación).
func (s *Session) Clear() {
	s.pending = make(map[string]entity.CostBasisUpdate)
}
