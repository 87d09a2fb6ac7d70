package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// ReplenishmentItem resultado crudo del repositorio para un producto en o bajo su nivel de reorden.
type ReplenishmentItem struct {
	ProductID         string          `db:"product_id"`
	SKU               string          `db:"sku"`
	Name              string          `db:"name"`
	QuantityAvailable int64           `db:"quantity_available"`
	ReorderLevel      int64           `db:"reorder_level"`
	CostPrice         decimal.Decimal `db:"cost_price"`
}

// InventoryLevelRepository define el puerto de lecturas (proyecciones) sobre snapshot + productos.
// Solo lee estado confirmado; nunca escribe.
type InventoryLevelRepository interface {
	// List devuelve productos activos unidos con su snapshot; search filtra por nombre o SKU (sin distinguir mayúsculas).
	List(ctx context.Context, shopID, search string) ([]*entity.InventoryLevel, error)
	// Get devuelve nil, nil si el producto no existe o está inactivo.
	Get(ctx context.Context, shopID, productID string) (*entity.InventoryLevel, error)
	// LowStock devuelve snapshots con 0 < cantidad <= threshold.
	LowStock(ctx context.Context, shopID string, threshold int64) ([]*entity.InventoryLevel, error)
	// BelowReorderLevel devuelve productos con reorder_level > 0 y cantidad <= reorder_level, mayor déficit primero.
	BelowReorderLevel(ctx context.Context, shopID string) ([]ReplenishmentItem, error)
}
