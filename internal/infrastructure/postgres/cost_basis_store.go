package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
)

var _ repository.CostBasisStore = (*CostBasisStore)(nil)

// errBatchRejected aborta la tx cuando el lote no se acepta; nunca sale del paquete.
var errBatchRejected = errors.New("lote rechazado")

// CostBasisStore escritura atómica de lotes de HPP: registro del lote más upsert por SKU.
type CostBasisStore struct {
	tx *TxRunner
}

// NewCostBasisStore construye el adaptador de escritura sobre el runner de transacciones.
func NewCostBasisStore(tx *TxRunner) *CostBasisStore {
	return &CostBasisStore{tx: tx}
}

// BulkUpdateHPP persiste el lote completo o nada.
// Ítems inválidos o un ID de lote repetido se informan como rechazo (Success=false), no como error.
func (s *CostBasisStore) BulkUpdateHPP(ctx context.Context, shopID string, batch entity.CostBasisBatch) (*entity.BatchResult, error) {
	if rejected := rejectInvalid(batch.Items); len(rejected) > 0 {
		return &entity.BatchResult{
			Success:  false,
			Message:  fmt.Sprintf("%d ítems inválidos en el lote", len(rejected)),
			Rejected: rejected,
		}, nil
	}

	err := s.tx.Run(ctx, func(q Querier) error {
		const insertBatch = `
			INSERT INTO hpp_batches (id, shop_id, notes, item_count, created_at)
			VALUES ($1, $2, $3, $4, NOW())`
		if _, err := q.Exec(ctx, insertBatch, batch.ID, shopID, batch.Notes, len(batch.Items)); err != nil {
			if isUniqueViolation(err) {
				return errBatchRejected
			}
			return fmt.Errorf("insert hpp batch: %w", err)
		}

		const upsert = `
			INSERT INTO product_hpp (shop_id, sku, item_name, hpp, batch_id, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			ON CONFLICT (shop_id, sku) DO UPDATE
			SET hpp        = EXCLUDED.hpp,
			    item_name  = COALESCE(NULLIF(EXCLUDED.item_name, ''), product_hpp.item_name),
			    batch_id   = EXCLUDED.batch_id,
			    updated_at = EXCLUDED.updated_at`
		b := &pgx.Batch{}
		for _, it := range batch.Items {
			b.Queue(upsert, shopID, it.SKU, it.ItemName, it.HPP, batch.ID)
		}
		br := q.SendBatch(ctx, b)
		for _, it := range batch.Items {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("upsert hpp %s: %w", it.SKU, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("upsert hpp: %w", err)
		}
		return nil
	})
	if errors.Is(err, errBatchRejected) {
		return &entity.BatchResult{Success: false, Message: fmt.Sprintf("el lote %s ya fue registrado", batch.ID)}, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity.BatchResult{
		Success: true,
		Message: fmt.Sprintf("%d SKU actualizados", len(batch.Items)),
		Updated: len(batch.Items),
	}, nil
}

// rejectInvalid valida el lote antes de abrir la transacción.
func rejectInvalid(items []entity.CostBasisBatchItem) []entity.RejectedItem {
	var out []entity.RejectedItem
	for _, it := range items {
		switch {
		case it.SKU == "":
			out = append(out, entity.RejectedItem{SKU: it.SKU, Reason: "SKU vacío"})
		case it.HPP.IsNegative():
			out = append(out, entity.RejectedItem{SKU: it.SKU, Reason: "HPP negativo"})
		}
	}
	return out
}
