package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa la cabecera de una recepción de compra.
type Purchase struct {
	ID         string
	ShopID     string
	SupplierID *string
	TotalCost  decimal.Decimal
	CreatedBy  string
	CreatedAt  time.Time
}

// PurchaseItem representa una línea de la compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int64
	CostPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}
