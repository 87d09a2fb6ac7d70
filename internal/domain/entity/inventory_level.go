package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLevel vista de lectura: producto activo unido con su snapshot de stock.
// Derivado de los movimientos; LastUpdated es nil si el producto nunca tuvo movimientos.
type InventoryLevel struct {
	ShopID            string          `db:"shop_id"`
	ProductID         string          `db:"product_id"`
	SKU               string          `db:"sku"`
	Name              string          `db:"name"`
	CostPrice         decimal.Decimal `db:"cost_price"`
	SellingPrice      decimal.Decimal `db:"selling_price"`
	QuantityAvailable int64           `db:"quantity_available"`
	ReorderLevel      int64           `db:"reorder_level"`
	LastUpdated       *time.Time      `db:"last_updated"`
}
