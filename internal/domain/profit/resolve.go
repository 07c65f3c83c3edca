package profit

import (
	"github.com/jhoicas/hpp-api/internal/domain/catalog"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

// ResolveCostBasis completa el HPP de cada línea al momento de evaluar: el HPP registrado
// en la línea si existe; si no, el HPP vigente del SKU en el catálogo; si no, queda nulo.
// Devuelve copias; no modifica la entrada.
func ResolveCostBasis(orders []entity.OrderBundle, idx *catalog.Index) []entity.OrderBundle {
	out := make([]entity.OrderBundle, len(orders))
	for i, b := range orders {
		items := make([]entity.OrderItem, len(b.Items))
		for j, it := range b.Items {
			if !it.HPP.Valid {
				if rec, ok := idx.Lookup(it.SKU); ok && rec.HasCostBasis() {
					it.HPP = rec.CurrentHPP
				}
			}
			if it.ItemName == "" {
				if rec, ok := idx.Lookup(it.SKU); ok {
					it.ItemName = rec.ItemName
				}
			}
			items[j] = it
		}
		b.Items = items
		out[i] = b
	}
	return out
}
