package repository

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia del log de movimientos (solo anexar).
type InventoryMovementRepository interface {
	Append(ctx context.Context, movement *entity.InventoryMovement) error
	// ListByProduct devuelve los últimos limit movimientos, más recientes primero.
	ListByProduct(ctx context.Context, shopID, productID string, limit int) ([]*entity.InventoryMovement, error)
	// ListByReference devuelve los movimientos generados por una compra, venta o ajuste.
	ListByReference(ctx context.Context, shopID, referenceID string) ([]*entity.InventoryMovement, error)
}
