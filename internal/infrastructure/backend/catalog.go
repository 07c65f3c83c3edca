package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura del catálogo vía GET /order-items/skus.
type CatalogRepo struct {
	c *Client
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(c *Client) *CatalogRepo {
	return &CatalogRepo{c: c}
}

type skuJSON struct {
	SKU           string              `json:"sku"`
	ItemName      string              `json:"itemName"`
	TotalOrders   int                 `json:"totalOrders"`
	TotalQuantity int64               `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal     `json:"totalRevenue"`
	CurrentHPP    decimal.NullDecimal `json:"currentHpp"`
}

type skuListJSON struct {
	Skus []skuJSON `json:"skus"`
}

// ListSkus devuelve el catálogo de la tienda.
func (r *CatalogRepo) ListSkus(ctx context.Context, shopID string) ([]entity.SkuRecord, error) {
	var resp skuListJSON
	if _, err := r.c.do(ctx, http.MethodGet, "/order-items/skus", shopQuery(shopID), nil, &resp); err != nil {
		return nil, err
	}
	out := make([]entity.SkuRecord, 0, len(resp.Skus))
	for _, s := range resp.Skus {
		if s.SKU == "" {
			continue
		}
		out = append(out, entity.SkuRecord{
			SKU:           s.SKU,
			ItemName:      s.ItemName,
			TotalOrders:   s.TotalOrders,
			TotalQuantity: s.TotalQuantity,
			TotalRevenue:  s.TotalRevenue,
			CurrentHPP:    s.CurrentHPP,
		})
	}
	return out, nil
}

func shopQuery(shopID string) url.Values {
	q := url.Values{}
	if shopID != "" {
		q.Set("shopId", shopID)
	}
	return q
}
