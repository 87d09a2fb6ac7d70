package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/dto"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de una tienda a partir de los niveles de reorden.
type ReplenishmentUseCase struct {
	levelRepo repository.InventoryLevelRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(levelRepo repository.InventoryLevelRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{levelRepo: levelRepo}
}

// GenerateReplenishmentList devuelve los productos en o bajo su nivel de reorden con la cantidad
// sugerida de pedido (hasta 1.5 veces el nivel) y un ranking de prioridad por déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, shopID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	rawItems, err := uc.levelRepo.BelowReorderLevel(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rawItems))
	for _, item := range rawItems {
		ideal := IdealStock(item.ReorderLevel)
		suggestedQty := ideal - item.QuantityAvailable
		if suggestedQty < 0 {
			suggestedQty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          item.ProductID,
			SKU:                item.SKU,
			Name:               item.Name,
			CurrentStock:       item.QuantityAvailable,
			ReorderLevel:       item.ReorderLevel,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           item.CostPrice,
			EstimatedOrderCost: decimal.NewFromInt(suggestedQty).Mul(item.CostPrice),
		})
	}

	// Mayor déficit primero; a igual déficit, el más caro de reponer; luego SKU para orden estable.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.ReorderLevel - a.CurrentStock
		defB := b.ReorderLevel - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		if !a.EstimatedOrderCost.Equal(b.EstimatedOrderCost) {
			return a.EstimatedOrderCost.GreaterThan(b.EstimatedOrderCost)
		}
		return a.SKU < b.SKU
	})

	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// IdealStock devuelve ceil(reorderLevel * 1.5).
func IdealStock(reorderLevel int64) int64 {
	return (reorderLevel*3 + 1) / 2
}
