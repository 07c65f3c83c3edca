package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido relevantes para los reportes.
const (
	OrderStatusCompleted = "COMPLETED"
	OrderStatusPending   = "PENDING"
	OrderStatusAll       = "all"
)

// Order cabecera de pedido del marketplace. OrderDate en cero = fecha no interpretable.
type Order struct {
	OrderSn     string
	Status      string
	OrderDate   time.Time
	PaymentDate *time.Time
	ShopName    string
	TotalAmount decimal.Decimal
}

// IsCompleted indica si el pedido está en estado COMPLETED.
func (o Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// OrderItem línea de pedido. HPP es el costo registrado en la línea (si existe);
// se resuelve contra el catálogo al momento de evaluar.
type OrderItem struct {
	OrderSn   string
	SKU       string
	ItemName  string
	Quantity  int64
	UnitPrice decimal.Decimal
	HPP       decimal.NullDecimal
}

// PlatformFees comisiones del marketplace por pedido. Cada una se informa por separado; no se derivan.
type PlatformFees struct {
	Commission     decimal.Decimal
	Service        decimal.Decimal
	Transaction    decimal.Decimal
	Shipping       decimal.Decimal
	PaymentChannel decimal.Decimal
}

// Total suma de todas las comisiones.
func (f PlatformFees) Total() decimal.Decimal {
	return f.Commission.Add(f.Service).Add(f.Transaction).Add(f.Shipping).Add(f.PaymentChannel)
}

// Add suma dos desgloses campo a campo.
func (f PlatformFees) Add(o PlatformFees) PlatformFees {
	return PlatformFees{
		Commission:     f.Commission.Add(o.Commission),
		Service:        f.Service.Add(o.Service),
		Transaction:    f.Transaction.Add(o.Transaction),
		Shipping:       f.Shipping.Add(o.Shipping),
		PaymentChannel: f.PaymentChannel.Add(o.PaymentChannel),
	}
}

// EscrowDetail registro de liquidación del marketplace asociado al pedido.
type EscrowDetail struct {
	PayoutAmount       decimal.Decimal
	EscrowReleaseTime  *time.Time
	BuyerPaymentMethod string
}

// OrderBundle pedido con sus líneas, comisiones y liquidación, tal como lo entrega el almacén.
type OrderBundle struct {
	Order  Order
	Items  []OrderItem
	Fees   PlatformFees
	Escrow *EscrowDetail
}

// OrderFilter filtros de lectura de pedidos para los reportes.
type OrderFilter struct {
	Status string     // COMPLETED | PENDING (todo lo no completado) | all
	Start  *time.Time // inclusive
	End    *time.Time // inclusive
	SKU    string     // coincidencia parcial, sin distinguir mayúsculas
}

// MatchesOrder indica si la cabecera cumple estado y rango de fechas del filtro.
// Un pedido sin fecha solo coincide cuando el filtro no tiene rango.
func (f OrderFilter) MatchesOrder(o Order) bool {
	switch f.Status {
	case "", OrderStatusAll:
	case OrderStatusPending:
		if o.IsCompleted() {
			return false
		}
	default:
		if o.Status != f.Status {
			return false
		}
	}
	if f.Start == nil && f.End == nil {
		return true
	}
	if o.OrderDate.IsZero() {
		return false
	}
	if f.Start != nil && o.OrderDate.Before(*f.Start) {
		return false
	}
	if f.End != nil && o.OrderDate.After(*f.End) {
		return false
	}
	return true
}

// MatchesSKU coincidencia parcial del SKU sin distinguir mayúsculas; vacío = todos.
func (f OrderFilter) MatchesSKU(sku string) bool {
	if f.SKU == "" {
		return true
	}
	return strings.Contains(strings.ToLower(sku), strings.ToLower(f.SKU))
}
