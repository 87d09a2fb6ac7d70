package memory

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo proyecciones de inventario sobre el estado confirmado en memoria.
type InventoryLevelRepo struct{ ref stateRef }

// levels une productos activos de la tienda con su snapshot (cantidad 0 si no existe).
func levels(st *state, shopID string) []*entity.InventoryLevel {
	var out []*entity.InventoryLevel
	for k, p := range st.products {
		if k.shop != shopID || !p.IsActive() {
			continue
		}
		l := &entity.InventoryLevel{
			ShopID:       p.ShopID,
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			CostPrice:    p.CostPrice,
			SellingPrice: p.SellingPrice,
		}
		if s, ok := st.stocks[k]; ok {
			l.QuantityAvailable = s.QuantityAvailable
			l.ReorderLevel = s.ReorderLevel
			last := s.LastUpdated
			l.LastUpdated = &last
		}
		out = append(out, l)
	}
	return out
}

func (r *InventoryLevelRepo) List(ctx context.Context, shopID, search string) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	err := r.ref.read(func(st *state) error {
		fold := cases.Fold()
		term := fold.String(strings.TrimSpace(search))
		for _, l := range levels(st, shopID) {
			if term != "" &&
				!strings.Contains(fold.String(l.Name), term) &&
				!strings.Contains(fold.String(l.SKU), term) {
				continue
			}
			out = append(out, l)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Más recientemente movidos primero; los nunca tocados al final, por nombre.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.LastUpdated != nil && b.LastUpdated != nil && !a.LastUpdated.Equal(*b.LastUpdated):
			return a.LastUpdated.After(*b.LastUpdated)
		case a.LastUpdated != nil && b.LastUpdated == nil:
			return true
		case a.LastUpdated == nil && b.LastUpdated != nil:
			return false
		}
		return a.Name < b.Name
	})
	return out, nil
}

func (r *InventoryLevelRepo) Get(ctx context.Context, shopID, productID string) (*entity.InventoryLevel, error) {
	var out *entity.InventoryLevel
	err := r.ref.read(func(st *state) error {
		for _, l := range levels(st, shopID) {
			if l.ProductID == productID {
				out = l
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *InventoryLevelRepo) LowStock(ctx context.Context, shopID string, threshold int64) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	err := r.ref.read(func(st *state) error {
		for _, l := range levels(st, shopID) {
			if l.LastUpdated != nil && l.QuantityAvailable > 0 && l.QuantityAvailable <= threshold {
				out = append(out, l)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].QuantityAvailable != out[j].QuantityAvailable {
			return out[i].QuantityAvailable < out[j].QuantityAvailable
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

func (r *InventoryLevelRepo) BelowReorderLevel(ctx context.Context, shopID string) ([]repository.ReplenishmentItem, error) {
	var out []repository.ReplenishmentItem
	err := r.ref.read(func(st *state) error {
		for _, l := range levels(st, shopID) {
			if l.LastUpdated == nil || l.ReorderLevel <= 0 || l.QuantityAvailable > l.ReorderLevel {
				continue
			}
			out = append(out, repository.ReplenishmentItem{
				ProductID:         l.ProductID,
				SKU:               l.SKU,
				Name:              l.Name,
				QuantityAvailable: l.QuantityAvailable,
				ReorderLevel:      l.ReorderLevel,
				CostPrice:         l.CostPrice,
			})
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].ReorderLevel - out[i].QuantityAvailable
		dj := out[j].ReorderLevel - out[j].QuantityAvailable
		if di != dj {
			return di > dj
		}
		return out[i].SKU < out[j].SKU
	})
	return out, err
}
