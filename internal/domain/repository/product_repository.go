package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de Product que necesita el ledger (DIP).
// El CRUD de productos vive fuera de este servicio.
type ProductRepository interface {
	// GetByID devuelve nil, nil si el producto no existe en la tienda.
	GetByID(ctx context.Context, shopID, id string) (*entity.Product, error)
	UpdateCostPrice(ctx context.Context, shopID, productID string, cost decimal.Decimal) error
}
