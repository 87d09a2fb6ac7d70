package inventory

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Stock     repository.StockRepository
	Movements repository.InventoryMovementRepository
	Products  repository.ProductRepository
	Suppliers repository.SupplierRepository
	Customers repository.CustomerRepository
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error se hace Rollback y nada se persiste.
// Si no se obtiene conexión/transacción dentro del plazo devuelve domain.ErrTimeout.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
