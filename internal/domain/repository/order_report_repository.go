package repository

import (
	"context"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// OrderReportRepository lectura de pedidos, líneas y comisiones para los reportes de rentabilidad.
type OrderReportRepository interface {
	// ListOrders devuelve los pedidos que cumplen el filtro con sus líneas y comisiones.
	// Si filter.SKU no está vacío solo se incluyen las líneas de ese SKU.
	ListOrders(ctx context.Context, shopID string, filter entity.OrderFilter) ([]entity.OrderBundle, error)

	// GetOrder devuelve un pedido por número; (nil, nil) si no existe.
	GetOrder(ctx context.Context, shopID, orderSn string) (*entity.OrderBundle, error)
}
