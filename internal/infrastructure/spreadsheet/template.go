package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	appcost "github.com/jhoicas/hpp-api/internal/application/costbasis"
	"github.com/jhoicas/hpp-api/internal/domain/costbasis"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// TemplateSheet nombre de la hoja de la plantilla.
const TemplateSheet = "HPP Input Template"

// TemplateFilename nombre sugerido para la descarga.
const TemplateFilename = "hpp-input-template.xlsx"

var templateWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 20},
	{"B", "B", 40},
	{"C", "G", 15},
}

// TemplateWriter implementa costbasis.TemplateWriter con excelize.
type TemplateWriter struct{}

var _ appcost.TemplateWriter = TemplateWriter{}

// NewTemplateWriter construye el generador de plantilla.
func NewTemplateWriter() TemplateWriter { return TemplateWriter{} }

// WriteTemplate una fila por SKU. "Current HPP" vacío si no está definido; "New HPP" siempre vacío.
func (TemplateWriter) WriteTemplate(w io.Writer, records []entity.SkuRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TemplateSheet); err != nil {
		return fmt.Errorf("plantilla: nombre de hoja: %w", err)
	}

	header := make([]interface{}, len(costbasis.TemplateHeader))
	for i, h := range costbasis.TemplateHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &header); err != nil {
		return fmt.Errorf("plantilla: encabezado: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("plantilla: estilo: %w", err)
	}
	if err := f.SetRowStyle(TemplateSheet, 1, 1, style); err != nil {
		return fmt.Errorf("plantilla: estilo de encabezado: %w", err)
	}

	for i, r := range records {
		var current interface{} = ""
		if r.CurrentHPP.Valid {
			current = r.CurrentHPP.Decimal.InexactFloat64()
		}
		row := []interface{}{
			r.SKU,
			r.ItemName,
			current,
			"",
			r.TotalOrders,
			r.TotalQuantity,
			r.TotalRevenue.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("plantilla: celda: %w", err)
		}
		if err := f.SetSheetRow(TemplateSheet, cell, &row); err != nil {
			return fmt.Errorf("plantilla: fila %d: %w", i+2, err)
		}
	}

	for _, cw := range templateWidths {
		if err := f.SetColWidth(TemplateSheet, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("plantilla: ancho %s:%s: %w", cw.from, cw.to, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("plantilla: escribir: %w", err)
	}
	return nil
}
