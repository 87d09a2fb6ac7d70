package inventory

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/dto"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

// QueryConfig límites de las proyecciones de lectura.
type QueryConfig struct {
	HistoryDefaultLimit int
	HistoryMaxLimit     int
	LowStockThreshold   int64
}

// InventoryQueryUseCase sirve las vistas de inventario sobre estado confirmado. Nunca escribe.
type InventoryQueryUseCase struct {
	levels    repository.InventoryLevelRepository
	movements repository.InventoryMovementRepository
	cfg       QueryConfig
}

// NewInventoryQueryUseCase construye el caso de uso de lecturas.
func NewInventoryQueryUseCase(
	levels repository.InventoryLevelRepository,
	movements repository.InventoryMovementRepository,
	cfg QueryConfig,
) *InventoryQueryUseCase {
	if cfg.HistoryDefaultLimit <= 0 {
		cfg.HistoryDefaultLimit = 50
	}
	if cfg.HistoryMaxLimit < cfg.HistoryDefaultLimit {
		cfg.HistoryMaxLimit = cfg.HistoryDefaultLimit
	}
	if cfg.LowStockThreshold < 0 {
		cfg.LowStockThreshold = 0
	}
	return &InventoryQueryUseCase{levels: levels, movements: movements, cfg: cfg}
}

// ListItems devuelve los productos activos con su existencia, los más recientemente movidos primero.
func (uc *InventoryQueryUseCase) ListItems(ctx context.Context, shopID, search string) ([]dto.InventoryItemResponse, error) {
	levels, err := uc.levels.List(ctx, shopID, search)
	if err != nil {
		return nil, err
	}
	return toItems(levels), nil
}

// GetItemByID devuelve un producto activo con su existencia.
func (uc *InventoryQueryUseCase) GetItemByID(ctx context.Context, shopID, productID string) (*dto.InventoryItemResponse, error) {
	if err := validateUUID("productId", productID); err != nil {
		return nil, err
	}
	level, err := uc.levels.Get(ctx, shopID, productID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.NewNotFound("product", productID)
	}
	item := toItem(level)
	return &item, nil
}

// GetStockHistory devuelve los últimos movimientos del producto con delta con signo.
// limit <= 0 usa el límite por defecto; se recorta al máximo configurado.
func (uc *InventoryQueryUseCase) GetStockHistory(ctx context.Context, shopID, productID string, limit int) ([]dto.StockHistoryEntry, error) {
	if err := validateUUID("productId", productID); err != nil {
		return nil, err
	}
	level, err := uc.levels.Get(ctx, shopID, productID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.NewNotFound("product", productID)
	}

	switch {
	case limit <= 0:
		limit = uc.cfg.HistoryDefaultLimit
	case limit > uc.cfg.HistoryMaxLimit:
		limit = uc.cfg.HistoryMaxLimit
	}

	movs, err := uc.movements.ListByProduct(ctx, shopID, productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockHistoryEntry, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.StockHistoryEntry{
			Reason:    string(m.Source),
			CreatedAt: m.CreatedAt,
			Delta:     m.SignedDelta(),
		})
	}
	return out, nil
}

// LowStock devuelve productos activos con 0 < cantidad <= threshold.
// threshold nil usa el umbral configurado.
func (uc *InventoryQueryUseCase) LowStock(ctx context.Context, shopID string, threshold *int64) ([]dto.InventoryItemResponse, error) {
	t := uc.cfg.LowStockThreshold
	if threshold != nil {
		if *threshold < 0 {
			return nil, domain.NewValidation("threshold", "no puede ser negativo")
		}
		t = *threshold
	}
	levels, err := uc.levels.LowStock(ctx, shopID, t)
	if err != nil {
		return nil, err
	}
	return toItems(levels), nil
}

func toItems(levels []*entity.InventoryLevel) []dto.InventoryItemResponse {
	out := make([]dto.InventoryItemResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, toItem(l))
	}
	return out
}

func toItem(l *entity.InventoryLevel) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ProductID:         l.ProductID,
		SKU:               l.SKU,
		Name:              l.Name,
		CostPrice:         l.CostPrice,
		SellingPrice:      l.SellingPrice,
		QuantityAvailable: l.QuantityAvailable,
		ReorderLevel:      l.ReorderLevel,
		LastUpdated:       l.LastUpdated,
	}
}
