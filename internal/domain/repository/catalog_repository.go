package repository

import (
	"context"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// CatalogRepository lectura del catálogo de SKUs con sus agregados de venta y HPP vigente.
// Las implementaciones son read-only.
type CatalogRepository interface {
	ListSkus(ctx context.Context, shopID string) ([]entity.SkuRecord, error)
}

// CatalogInvalidator lo implementan las cachés de catálogo; tras un envío exitoso
// el llamador invalida para forzar la recarga.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context, shopID string) error
}
