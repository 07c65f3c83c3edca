package costbasis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/jhoicas/hpp-api/internal/application/dto"
	"github.com/jhoicas/hpp-api/internal/domain"
	"github.com/jhoicas/hpp-api/internal/domain/catalog"
	domcost "github.com/jhoicas/hpp-api/internal/domain/costbasis"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
	"github.com/jhoicas/hpp-api/pkg/logger"
)

// IngestionUseCase flujo completo de HPP: catálogo, plantilla, carga de hoja y envío.
// Cada llamada trabaja con una sesión nueva; no hay estado compartido entre peticiones.
type IngestionUseCase struct {
	catalogRepo repository.CatalogRepository
	invalidator repository.CatalogInvalidator // opcional
	decoder     SheetDecoder
	template    TemplateWriter
	submitter   *SubmitUseCase
	log         *logger.Logger
}

// NewIngestionUseCase construye el caso de uso. invalidator puede ser nil (sin caché).
func NewIngestionUseCase(
	catalogRepo repository.CatalogRepository,
	invalidator repository.CatalogInvalidator,
	decoder SheetDecoder,
	template TemplateWriter,
	submitter *SubmitUseCase,
	log *logger.Logger,
) *IngestionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &IngestionUseCase{
		catalogRepo: catalogRepo,
		invalidator: invalidator,
		decoder:     decoder,
		template:    template,
		submitter:   submitter,
		log:         log.Component("hpp_ingestion"),
	}
}

// LoadCatalog lee el catálogo de la tienda y construye el índice.
func (uc *IngestionUseCase) LoadCatalog(ctx context.Context, shopID string) (*catalog.Index, error) {
	records, err := uc.catalogRepo.ListSkus(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("catalogo: listar skus: %w", err)
	}
	return catalog.NewIndex(records), nil
}

// ListSkus catálogo filtrado por q (SKU o nombre, sin distinguir mayúsculas).
func (uc *IngestionUseCase) ListSkus(ctx context.Context, shopID string, req dto.SkuListRequest) (*dto.SkuListResponse, error) {
	idx, err := uc.LoadCatalog(ctx, shopID)
	if err != nil {
		return nil, err
	}
	view := idx.Filter(req.Q)
	out := &dto.SkuListResponse{
		Data:           make([]dto.SkuDTO, 0, len(view)),
		Total:          len(view),
		SkusWithoutHpp: idx.WithoutCostBasis(),
	}
	for _, r := range view {
		out.Data = append(out.Data, dto.NewSkuDTO(r))
	}
	return out, nil
}

// WriteTemplate escribe la plantilla .xlsx con los SKUs que coinciden con q.
func (uc *IngestionUseCase) WriteTemplate(ctx context.Context, shopID string, req dto.SkuListRequest, w io.Writer) error {
	idx, err := uc.LoadCatalog(ctx, shopID)
	if err != nil {
		return err
	}
	if err := uc.template.WriteTemplate(w, idx.Filter(req.Q)); err != nil {
		return fmt.Errorf("plantilla: %w", err)
	}
	return nil
}

// Upload decodifica el archivo, lo combina en una sesión nueva y devuelve la vista previa.
// Con req.Submit envía además el conjunto pendiente en un solo lote.
func (uc *IngestionUseCase) Upload(
	ctx context.Context,
	shopID, filename string,
	r io.Reader,
	req dto.HPPUploadRequest,
) (*dto.HPPUploadResponse, error) {
	rows, err := uc.decoder.Decode(filename, r)
	if err != nil {
		var perr *domain.ParseError
		if errors.As(err, &perr) {
			return nil, perr
		}
		return nil, &domain.ParseError{Filename: filename, Err: err}
	}

	idx, err := uc.LoadCatalog(ctx, shopID)
	if err != nil {
		return nil, err
	}

	session := domcost.NewSession()
	rep := session.IngestTabularUpload(rows)
	uc.log.Info().Str("shop_id", shopID).Str("file", filename).
		Int("rows", len(rows)).Int("ingested", rep.Ingested).Int("skipped", rep.SkippedTotal()).
		Msg("carga de HPP procesada")

	pending := session.CurrentPending()
	out := &dto.HPPUploadResponse{
		Ingested: rep.Ingested,
		Accepted: rep.Accepted,
		Skipped:  make(map[string]int, len(rep.Skipped)),
		Pending:  pendingDTOs(pending, idx),
	}
	for reason, n := range rep.Skipped {
		out.Skipped[string(reason)] = n
	}

	if !req.Submit {
		return out, nil
	}
	res, err := uc.submit(ctx, shopID, idx, session, req.Notes)
	if err != nil {
		return nil, err
	}
	out.Result = res
	return out, nil
}

// BulkUpdate aplica cada ítem como edición manual y envía el lote.
// Los valores inválidos se descartan y se informan en la respuesta; no abortan el envío.
func (uc *IngestionUseCase) BulkUpdate(ctx context.Context, shopID string, req dto.BulkUpdateHPPRequest) (*dto.BulkUpdateHPPResponse, error) {
	session := domcost.NewSession()
	var discarded []dto.DiscardedHPPDTO
	for _, it := range req.Items {
		if err := session.ApplyManualEditWithName(it.SKU, string(it.HPP), it.ItemName); err != nil {
			var verr *domain.ValidationError
			reason := err.Error()
			if errors.As(err, &verr) {
				reason = verr.Err.Error()
			}
			discarded = append(discarded, dto.DiscardedHPPDTO{SKU: it.SKU, Value: string(it.HPP), Reason: reason})
		}
	}

	idx, err := uc.LoadCatalog(ctx, shopID)
	if err != nil {
		return nil, err
	}
	res, err := uc.submit(ctx, shopID, idx, session, req.Notes)
	if err != nil {
		return nil, err
	}
	res.Discarded = discarded
	return res, nil
}

// submit envía la sesión; tras el éxito la vacía e invalida la caché del catálogo.
func (uc *IngestionUseCase) submit(
	ctx context.Context,
	shopID string,
	idx *catalog.Index,
	session *domcost.Session,
	notes string,
) (*dto.BulkUpdateHPPResponse, error) {
	res, err := uc.submitter.Submit(ctx, shopID, idx, session.CurrentPending(), notes)
	if err != nil {
		return nil, err
	}
	session.Clear()
	if uc.invalidator != nil {
		if err := uc.invalidator.Invalidate(ctx, shopID); err != nil {
			// El lote ya fue aceptado; la caché expira sola por TTL.
			uc.log.Warn().Err(err).Str("shop_id", shopID).Msg("no se pudo invalidar caché de catálogo")
		}
	}
	return &dto.BulkUpdateHPPResponse{
		Success: res.Success,
		Message: res.Message,
		BatchID: res.BatchID,
		Updated: res.Updated,
	}, nil
}

func pendingDTOs(pending map[string]entity.CostBasisUpdate, idx *catalog.Index) []dto.PendingHPPDTO {
	out := make([]dto.PendingHPPDTO, 0, len(pending))
	for _, u := range pending {
		p := dto.PendingHPPDTO{
			SKU:      u.SKU,
			HPP:      u.HPP,
			ItemName: u.ItemNameHint,
			Source:   u.Provenance.String(),
		}
		if rec, ok := idx.Lookup(u.SKU); ok {
			p.Known = true
			if rec.ItemName != "" {
				p.ItemName = rec.ItemName
			}
			if rec.CurrentHPP.Valid {
				cur := rec.CurrentHPP.Decimal
				p.CurrentHPP = &cur
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}
