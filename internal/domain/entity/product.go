package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado explícito del producto; los productos INACTIVE no se exponen en lecturas.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// Product representa un producto o SKU de una tienda.
// CostPrice es promedio ponderado actualizado por las compras; la existencia vive en StockSnapshot.
type Product struct {
	ID           string
	ShopID       string
	SKU          string // código único por tienda
	Name         string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Status       ProductStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el producto puede participar en movimientos y lecturas.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
