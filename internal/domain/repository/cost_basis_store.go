package repository

import (
	"context"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// CostBasisStore puerto de escritura masiva de HPP. Se espera aceptación atómica del lote.
// Un error devuelto significa que no hubo respuesta interpretable (transporte, 5xx);
// un rechazo del almacén se informa con BatchResult.Success=false.
type CostBasisStore interface {
	BulkUpdateHPP(ctx context.Context, shopID string, batch entity.CostBasisBatch) (*entity.BatchResult, error)
}
