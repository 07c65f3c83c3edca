package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// ── Catálogo ──────────────────────────────────────────────────────────────────

// SkuListRequest parámetros de GET /api/order-items/skus y de la plantilla.
type SkuListRequest struct {
	Q string `query:"q" validate:"max=100"`
}

// SkuDTO un SKU del catálogo con su HPP vigente (null = no definido).
type SkuDTO struct {
	SKU           string           `json:"sku"`
	ItemName      string           `json:"itemName"`
	TotalOrders   int              `json:"totalOrders"`
	TotalQuantity int64            `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	CurrentHPP    *decimal.Decimal `json:"currentHpp"`
	HasHPP        bool             `json:"hasHpp"`
	AvgPrice      decimal.Decimal  `json:"avgPrice"`
}

// SkuListResponse listado (posiblemente filtrado) del catálogo.
type SkuListResponse struct {
	Data           []SkuDTO `json:"data"`
	Total          int      `json:"total"`
	SkusWithoutHpp int      `json:"skusWithoutHpp"`
}

// NewSkuDTO mapea un registro del catálogo.
func NewSkuDTO(r entity.SkuRecord) SkuDTO {
	return SkuDTO{
		SKU:           r.SKU,
		ItemName:      r.ItemName,
		TotalOrders:   r.TotalOrders,
		TotalQuantity: r.TotalQuantity,
		TotalRevenue:  r.TotalRevenue,
		CurrentHPP:    nullable(r.CurrentHPP),
		HasHPP:        r.HasCostBasis(),
		AvgPrice:      r.AvgPrice(),
	}
}

// ── Carga y envío ─────────────────────────────────────────────────────────────

// HPPUploadRequest parámetros de query de POST /api/order-items/hpp/upload.
type HPPUploadRequest struct {
	Submit bool   `query:"submit"`
	Notes  string `query:"notes" validate:"max=500"`
}

// PendingHPPDTO entrada del conjunto pendiente tras la carga.
type PendingHPPDTO struct {
	SKU        string           `json:"sku"`
	HPP        decimal.Decimal  `json:"hpp"`
	ItemName   string           `json:"itemName,omitempty"`
	CurrentHPP *decimal.Decimal `json:"currentHpp"`
	Known      bool             `json:"known"` // SKU presente en el catálogo
	Source     string           `json:"source"`
}

// HPPUploadResponse vista previa de la carga (y resultado del envío si submit=true).
type HPPUploadResponse struct {
	Ingested int                    `json:"ingested"`
	Accepted int                    `json:"accepted"`
	Skipped  map[string]int         `json:"skipped"`
	Pending  []PendingHPPDTO        `json:"pending"`
	Result   *BulkUpdateHPPResponse `json:"result,omitempty"`
}

// BulkUpdateHPPItem un HPP a actualizar. HPP se recibe como texto libre.
type BulkUpdateHPPItem struct {
	SKU      string   `json:"sku" validate:"required,max=100"`
	HPP      RawValue `json:"hpp"`
	ItemName string   `json:"itemName,omitempty" validate:"max=255"`
}

// BulkUpdateHPPRequest cuerpo de POST /api/order-items/hpp/bulk-update.
type BulkUpdateHPPRequest struct {
	Items []BulkUpdateHPPItem `json:"items" validate:"dive"`
	Notes string              `json:"notes,omitempty" validate:"max=500"`
}

// DiscardedHPPDTO entrada descartada por valor inválido antes del envío.
type DiscardedHPPDTO struct {
	SKU    string `json:"sku"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// BulkUpdateHPPResponse resultado de un envío aceptado.
type BulkUpdateHPPResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	BatchID   string            `json:"batchId"`
	Updated   int               `json:"updated"`
	Discarded []DiscardedHPPDTO `json:"discarded,omitempty"`
}
