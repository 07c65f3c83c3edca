// Package catalog contiene el índice en memoria del catálogo de SKUs.
package catalog

import (
	"strings"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// Index snapshot inmutable del catálogo: orden original + búsqueda por SKU.
// No tiene operaciones de mutación; se reconstruye tras cada recarga.
type Index struct {
	records []entity.SkuRecord
	bySKU   map[string]int
}

// NewIndex construye el índice. Si un SKU aparece repetido gana la última aparición.
func NewIndex(records []entity.SkuRecord) *Index {
	idx := &Index{
		records: make([]entity.SkuRecord, 0, len(records)),
		bySKU:   make(map[string]int, len(records)),
	}
	for _, r := range records {
		if pos, ok := idx.bySKU[r.SKU]; ok {
			idx.records[pos] = r
			continue
		}
		idx.bySKU[r.SKU] = len(idx.records)
		idx.records = append(idx.records, r)
	}
	return idx
}

// ListSkus devuelve una copia de los registros en el orden recibido.
func (i *Index) ListSkus() []entity.SkuRecord {
	if i == nil {
		return nil
	}
	out := make([]entity.SkuRecord, len(i.records))
	copy(out, i.records)
	return out
}

// Lookup busca un SKU exacto.
func (i *Index) Lookup(sku string) (entity.SkuRecord, bool) {
	if i == nil {
		return entity.SkuRecord{}, false
	}
	pos, ok := i.bySKU[sku]
	if !ok {
		return entity.SkuRecord{}, false
	}
	return i.records[pos], true
}

// Contains indica si el SKU existe en el catálogo.
func (i *Index) Contains(sku string) bool {
	_, ok := i.Lookup(sku)
	return ok
}

// Len cantidad de SKUs.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.records)
}

// Filter vista de los SKUs cuyo SKU o nombre contiene term (sin distinguir mayúsculas).
// term vacío devuelve todo. Nunca modifica el índice.
func (i *Index) Filter(term string) []entity.SkuRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return i.ListSkus()
	}
	var out []entity.SkuRecord
	for _, r := range i.ListSkus() {
		if strings.Contains(strings.ToLower(r.SKU), term) ||
			strings.Contains(strings.ToLower(r.ItemName), term) {
			out = append(out, r)
		}
	}
	return out
}

// WithoutCostBasis cantidad de SKUs sin HPP definido.
func (i *Index) WithoutCostBasis() int {
	n := 0
	for _, r := range i.ListSkus() {
		if !r.HasCostBasis() {
			n++
		}
	}
	return n
}
