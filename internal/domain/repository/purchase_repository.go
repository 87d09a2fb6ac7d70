package repository

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras y sus líneas.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
}

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
}
