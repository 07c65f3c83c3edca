package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
)

var _ repository.CostBasisStore = (*CostBasisStore)(nil)

// CostBasisStore escritura masiva vía POST /order-items/hpp/bulk-update.
type CostBasisStore struct {
	c *Client
}

// NewCostBasisStore construye el adaptador.
func NewCostBasisStore(c *Client) *CostBasisStore {
	return &CostBasisStore{c: c}
}

type bulkItemJSON struct {
	SKU      string          `json:"sku"`
	HPP      decimal.Decimal `json:"hpp"`
	ItemName string          `json:"itemName,omitempty"`
}

type bulkRequestJSON struct {
	Items   []bulkItemJSON `json:"items"`
	Notes   string         `json:"notes,omitempty"`
	BatchID string         `json:"batchId"`
}

type bulkResponseJSON struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Updated  int    `json:"updated"`
	Rejected []struct {
		SKU    string `json:"sku"`
		Reason string `json:"reason"`
	} `json:"rejected"`
}

// BulkUpdateHPP envía el lote. Un 4xx con cuerpo JSON es un rechazo (Success=false);
// un 5xx o un cuerpo no interpretable se devuelve como error.
func (s *CostBasisStore) BulkUpdateHPP(ctx context.Context, shopID string, batch entity.CostBasisBatch) (*entity.BatchResult, error) {
	req := bulkRequestJSON{
		Items:   make([]bulkItemJSON, len(batch.Items)),
		Notes:   batch.Notes,
		BatchID: batch.ID,
	}
	for i, it := range batch.Items {
		req.Items[i] = bulkItemJSON{SKU: it.SKU, HPP: it.HPP, ItemName: it.ItemName}
	}

	var resp bulkResponseJSON
	raw, err := s.c.do(ctx, http.MethodPost, "/order-items/hpp/bulk-update", shopQuery(shopID), req, &resp)
	if err != nil {
		var se *StatusError
		if !errors.As(err, &se) || se.Status >= 500 {
			return nil, err
		}
		resp = bulkResponseJSON{}
		if json.Unmarshal(raw, &resp) != nil {
			return nil, err
		}
		resp.Success = false
		if resp.Message == "" {
			resp.Message = se.Message
		}
	}

	res := &entity.BatchResult{Success: resp.Success, Message: resp.Message, Updated: resp.Updated}
	for _, r := range resp.Rejected {
		res.Rejected = append(res.Rejected, entity.RejectedItem{SKU: r.SKU, Reason: r.Reason})
	}
	return res, nil
}
