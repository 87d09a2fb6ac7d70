package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjust.
type AdjustStockRequest struct {
	ProductID   string  `json:"productId"`
	Quantity    int64   `json:"quantity"`
	Type        string  `json:"type"`   // IN | OUT | ADJUSTMENT
	Source      string  `json:"source"` // PURCHASE | SALE | DAMAGE | EXPIRED | MANUAL
	ReferenceID *string `json:"referenceId,omitempty"`
}

// AdjustStockResponse cantidades antes y después del ajuste.
type AdjustStockResponse struct {
	ProductID   string `json:"productId"`
	PreviousQty int64  `json:"previousQty"`
	CurrentQty  int64  `json:"currentQty"`
}

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	CostPrice decimal.Decimal `json:"costPrice"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID *string               `json:"supplierId,omitempty"`
	Items      []PurchaseItemRequest `json:"items"`
}

// PurchaseResponse resultado de la recepción de compra.
type PurchaseResponse struct {
	PurchaseID string          `json:"purchaseId"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	ItemCount  int             `json:"itemCount"`
}

// SaleItemRequest línea de venta.
type SaleItemRequest struct {
	ProductID    string          `json:"productId"`
	Quantity     int64           `json:"quantity"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID    *string           `json:"customerId,omitempty"`
	PaymentMethod string            `json:"paymentMethod"` // CASH | UPI | CARD | BANK
	Items         []SaleItemRequest `json:"items"`
}

// SaleResponse resultado del registro de venta.
type SaleResponse struct {
	SaleID      string          `json:"saleId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
}

// SetReorderLevelRequest body para PUT /api/inventory/:productId/reorder-level.
type SetReorderLevelRequest struct {
	ReorderLevel int64 `json:"reorderLevel"`
}

// StockHistoryEntry movimiento proyectado para mostrar; Delta tiene signo (negativo en OUT).
type StockHistoryEntry struct {
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	Delta     int64     `json:"delta"`
}

// InventoryItemResponse producto activo con su existencia actual.
type InventoryItemResponse struct {
	ProductID         string          `json:"productId"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	QuantityAvailable int64           `json:"quantityAvailable"`
	ReorderLevel      int64           `json:"reorderLevel"`
	LastUpdated       *time.Time      `json:"lastUpdated,omitempty"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un SKU
// que se encuentra en o por debajo de su nivel de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"productId"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	CurrentStock       int64           `json:"currentStock"`
	ReorderLevel       int64           `json:"reorderLevel"`
	IdealStock         int64           `json:"idealStock"`         // ceil(ReorderLevel * 1.5)
	SuggestedOrderQty  int64           `json:"suggestedOrderQty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unitCost"`           // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimatedOrderCost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`           // 1 = más urgente
}
