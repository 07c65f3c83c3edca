package entity

import "strings"

// SheetRow fila débilmente tipada de una hoja de cálculo: celdas indexadas por encabezado.
// Index es el número de fila en la hoja (el encabezado es la fila 1).
type SheetRow struct {
	Index int
	Cells map[string]string
}

// NormalizeHeader normaliza un encabezado para comparación sin distinguir mayúsculas.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Value devuelve la primera celda no vacía entre los alias dados (comparación sin mayúsculas).
func (r SheetRow) Value(aliases ...string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(r.Cells[NormalizeHeader(a)]); v != "" {
			return v
		}
	}
	return ""
}
