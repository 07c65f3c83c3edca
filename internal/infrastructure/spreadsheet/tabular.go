// Package spreadsheet decodifica las hojas de HPP subidas (.xlsx / .csv) y genera la plantilla.
package spreadsheet

import (
	"strings"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// FromTabular convierte filas crudas (la primera es el encabezado) en filas indexadas por
// encabezado normalizado. Index es el número de fila en la hoja (encabezado = 1).
// Las filas completamente vacías se descartan; las celdas sin encabezado se ignoran.
func FromTabular(raw [][]string) []entity.SheetRow {
	if len(raw) == 0 {
		return nil
	}
	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = entity.NormalizeHeader(h)
	}

	rows := make([]entity.SheetRow, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		row := entity.SheetRow{Index: i + 2, Cells: make(map[string]string, len(header))}
		empty := true
		for j, v := range cells {
			if j >= len(header) || header[j] == "" {
				continue
			}
			v = strings.TrimSpace(v)
			if v != "" {
				empty = false
			}
			// encabezado repetido: gana la primera celda no vacía
			if prev, ok := row.Cells[header[j]]; ok && prev != "" {
				continue
			}
			row.Cells[header[j]] = v
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
