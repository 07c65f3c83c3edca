package entity

import "github.com/shopspring/decimal"

// SkuRecord snapshot de solo lectura de un SKU con sus agregados de venta y el HPP vigente.
// Lo produce el backend; este servicio no es dueño del dato.
type SkuRecord struct {
	SKU           string
	ItemName      string
	TotalOrders   int
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
	CurrentHPP    decimal.NullDecimal // Valid=false: HPP aún no definido (distinto de 0)
}

// HasCostBasis indica si el SKU tiene HPP definido.
func (s SkuRecord) HasCostBasis() bool {
	return s.CurrentHPP.Valid
}

// AvgPrice precio promedio de venta (= TotalRevenue / TotalQuantity); 0 si no hay unidades.
func (s SkuRecord) AvgPrice() decimal.Decimal {
	if s.TotalQuantity <= 0 {
		return decimal.Zero
	}
	return s.TotalRevenue.Div(decimal.NewFromInt(s.TotalQuantity))
}
