// Package export genera los archivos de texto delimitado de los reportes.
//
// Las celdas se unen con coma y las filas con salto de línea, sin comillas ni escape.
// Un SKU o nombre con coma desplaza las columnas siguientes. Los consumidores actuales son
// personas que abren el archivo; no cambiar el formato sin confirmar que nadie depende de él.
package export

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/profit"
)

// Column columna de una tabla exportada.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// ToDelimitedText encabezado más una fila por elemento, en el orden de cols.
func ToDelimitedText[T any](rows []T, cols []Column[T]) string {
	lines := make([][]string, 0, len(rows)+1)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}
	lines = append(lines, header)
	for _, r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.Value(r)
		}
		lines = append(lines, cells)
	}
	return JoinLines(lines)
}

// JoinLines une celdas con coma y líneas con "\n". Sin escape.
func JoinLines(lines [][]string) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(l, ","))
	}
	return b.String()
}

// Money texto decimal plano: sin símbolo ni separador de miles.
func Money(d decimal.Decimal) string { return d.String() }

// NullMoney celda vacía si el valor no está definido.
func NullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// Percent dos decimales con redondeo half-up; vacío si no está definido.
func Percent(d decimal.NullDecimal) string { return profit.FormatPercent(d) }

// Date dd/mm/yyyy en loc; vacío para fecha cero.
func Date(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006")
}
