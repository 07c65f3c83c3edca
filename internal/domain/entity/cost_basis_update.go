package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProvenanceKind origen de una actualización de HPP.
type ProvenanceKind string

const (
	ProvenanceManual      ProvenanceKind = "manual"
	ProvenanceSpreadsheet ProvenanceKind = "spreadsheet"
)

// Provenance origen de la actualización; Row es la fila de la hoja (1 = encabezado) si aplica.
type Provenance struct {
	Kind ProvenanceKind
	Row  int
}

// String devuelve "manual" o "spreadsheet-row N".
func (p Provenance) String() string {
	if p.Kind == ProvenanceSpreadsheet {
		return fmt.Sprintf("spreadsheet-row %d", p.Row)
	}
	return string(ProvenanceManual)
}

// ManualProvenance origen para ediciones de una celda.
func ManualProvenance() Provenance {
	return Provenance{Kind: ProvenanceManual}
}

// SpreadsheetProvenance origen para filas de una hoja subida.
func SpreadsheetProvenance(row int) Provenance {
	return Provenance{Kind: ProvenanceSpreadsheet, Row: row}
}

// CostBasisUpdate HPP propuesto (>= 0) para un SKU, pendiente de envío.
type CostBasisUpdate struct {
	SKU          string
	HPP          decimal.Decimal
	ItemNameHint string
	Provenance   Provenance
}

// CostBasisBatchItem ítem del lote atómico enviado al almacén externo.
type CostBasisBatchItem struct {
	SKU      string
	HPP      decimal.Decimal
	ItemName string // vacío = sin sugerencia de nombre
}

// CostBasisBatch lote atómico de actualizaciones de HPP con notas libres.
type CostBasisBatch struct {
	ID    string
	Items []CostBasisBatchItem
	Notes string
}

// BatchResult respuesta del almacén externo. Rejected solo se llena si el almacén
// devuelve detalle por SKU; el contrato observado solo devuelve éxito agregado.
type BatchResult struct {
	BatchID  string
	Success  bool
	Message  string
	Updated  int
	Rejected []RejectedItem
}

// RejectedItem SKU rechazado por el almacén con su motivo.
type RejectedItem struct {
	SKU    string
	Reason string
}
