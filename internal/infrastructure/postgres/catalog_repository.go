package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo agregados de venta por SKU con el HPP vigente (solo lectura).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// ListSkus devuelve un registro por SKU vendido o con HPP cargado.
// current_hpp es NULL cuando el SKU aún no tiene costo definido.
func (r *CatalogRepo) ListSkus(ctx context.Context, shopID string) ([]entity.SkuRecord, error) {
	const query = `
	WITH sales AS (
	    SELECT
	        oi.item_sku                          AS sku,
	        MAX(oi.item_name)                    AS item_name,
	        COUNT(DISTINCT oi.order_sn)          AS total_orders,
	        SUM(oi.quantity)                     AS total_quantity,
	        SUM(oi.quantity * oi.unit_price)     AS total_revenue
	    FROM order_items oi
	    WHERE oi.shop_id = $1
	    GROUP BY oi.item_sku
	)
	SELECT
	    COALESCE(s.sku, ph.sku)                                       AS sku,
	    COALESCE(NULLIF(ph.item_name, ''), s.item_name, '')           AS item_name,
	    COALESCE(s.total_orders, 0)                                   AS total_orders,
	    COALESCE(s.total_quantity, 0)                                 AS total_quantity,
	    COALESCE(s.total_revenue, 0)                                  AS total_revenue,
	    ph.hpp                                                        AS current_hpp
	FROM sales s
	FULL OUTER JOIN (SELECT * FROM product_hpp WHERE shop_id = $1) ph ON ph.sku = s.sku
	ORDER BY total_revenue DESC, sku`

	rows, err := r.q.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()

	var out []entity.SkuRecord
	for rows.Next() {
		var s entity.SkuRecord
		if err := rows.Scan(&s.SKU, &s.ItemName, &s.TotalOrders, &s.TotalQuantity, &s.TotalRevenue, &s.CurrentHPP); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	return out, nil
}
