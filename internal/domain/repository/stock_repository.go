package repository

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el snapshot de stock por tienda+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get lee el snapshot sin bloquear. Si no existe devuelve uno en cero con Version 0.
	Get(ctx context.Context, shopID, productID string) (*entity.StockSnapshot, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si no existe devuelve uno en cero con Version 0.
	GetForUpdate(ctx context.Context, shopID, productID string) (*entity.StockSnapshot, error)
	// Save inserta (Version 0) o actualiza verificando Version; incrementa Version en el snapshot.
	// Devuelve domain.ErrRaceConditionDetected si otra transacción escribió la fila primero.
	Save(ctx context.Context, stock *entity.StockSnapshot) error
}
