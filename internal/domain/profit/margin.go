// Package profit agrega ingresos, HPP y comisiones en métricas de rentabilidad
// (utilidad bruta/neta y márgenes) a nivel de línea, pedido, SKU y período.
//
// Todas las funciones son puras. Un HPP desconocido se propaga como valor nulo
// (decimal.NullDecimal con Valid=false); nunca se reemplaza por cero.
package profit

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Margin = profit / revenue * 100. Nulo si profit es nulo o revenue <= 0.
// Se conserva la precisión completa; el redondeo ocurre solo al formatear.
func Margin(profit decimal.NullDecimal, revenue decimal.Decimal) decimal.NullDecimal {
	if !profit.Valid || !revenue.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(profit.Decimal.Div(revenue).Mul(hundred))
}

// FormatPercent texto con dos decimales para un porcentaje; "" si es nulo.
// Los empates se alejan del cero en ambos signos (2.345 → 2.35, -2.345 → -2.35).
func FormatPercent(p decimal.NullDecimal) string {
	if !p.Valid {
		return ""
	}
	return p.Decimal.Round(2).StringFixed(2)
}

func nullSub(a decimal.NullDecimal, b decimal.Decimal) decimal.NullDecimal {
	if !a.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(a.Decimal.Sub(b))
}
