// Package costbasis orquesta la ingesta de HPP y su envío al almacén externo.
package costbasis

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/hpp-api/internal/domain"
	"github.com/jhoicas/hpp-api/internal/domain/catalog"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
	"github.com/jhoicas/hpp-api/pkg/logger"
)

// SubmitUseCase convierte el conjunto pendiente en un lote y lo envía al almacén.
// No limpia la sesión ni invalida cachés: eso le corresponde al llamador tras el éxito.
type SubmitUseCase struct {
	store repository.CostBasisStore
	log   *logger.Logger
	newID func() string
}

// NewSubmitUseCase construye el caso de uso.
func NewSubmitUseCase(store repository.CostBasisStore, log *logger.Logger) *SubmitUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SubmitUseCase{
		store: store,
		log:   log.Component("hpp_submit"),
		newID: uuid.NewString,
	}
}

// Submit envía pending como un único lote.
//
// Retorna:
//   - *domain.PreconditionError (ErrNothingToSubmit) si pending está vacío.
//   - *domain.PreconditionError (ErrUnknownSKU) si algún SKU no está en idx; no se envía nada.
//   - *domain.SubmissionError si el almacén rechaza el lote o no responde.
func (uc *SubmitUseCase) Submit(
	ctx context.Context,
	shopID string,
	idx *catalog.Index,
	pending map[string]entity.CostBasisUpdate,
	notes string,
) (*entity.BatchResult, error) {
	if len(pending) == 0 {
		return nil, &domain.PreconditionError{Err: domain.ErrNothingToSubmit}
	}

	skus := make([]string, 0, len(pending))
	for sku := range pending {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	var unknown []string
	for _, sku := range skus {
		if !idx.Contains(sku) {
			unknown = append(unknown, sku)
		}
	}
	if len(unknown) > 0 {
		return nil, &domain.PreconditionError{Err: domain.ErrUnknownSKU, SKUs: unknown}
	}

	batch := entity.CostBasisBatch{
		ID:    uc.newID(),
		Notes: notes,
		Items: make([]entity.CostBasisBatchItem, 0, len(skus)),
	}
	for _, sku := range skus {
		u := pending[sku]
		name := u.ItemNameHint
		if rec, ok := idx.Lookup(sku); ok && rec.ItemName != "" {
			name = rec.ItemName
		}
		batch.Items = append(batch.Items, entity.CostBasisBatchItem{SKU: sku, HPP: u.HPP, ItemName: name})
	}

	res, err := uc.store.BulkUpdateHPP(ctx, shopID, batch)
	if err != nil {
		uc.log.Error().Err(err).Str("batch_id", batch.ID).Int("items", len(batch.Items)).Msg("envío de HPP fallido")
		var subErr *domain.SubmissionError
		if errors.As(err, &subErr) {
			return nil, subErr
		}
		return nil, &domain.SubmissionError{Message: err.Error(), Err: err}
	}
	if res == nil {
		return nil, &domain.SubmissionError{Message: "respuesta vacía del almacén"}
	}
	if !res.Success {
		uc.log.Warn().Str("batch_id", batch.ID).Str("message", res.Message).
			Int("rejected", len(res.Rejected)).Msg("lote de HPP rechazado")
		return nil, &domain.SubmissionError{Message: res.Message, Rejected: res.Rejected}
	}
	res.BatchID = batch.ID
	if res.Updated == 0 {
		res.Updated = len(batch.Items)
	}

	uc.log.Info().Str("shop_id", shopID).Str("batch_id", batch.ID).
		Int("items", len(batch.Items)).Int("updated", res.Updated).Msg("lote de HPP aceptado")
	return res, nil
}
