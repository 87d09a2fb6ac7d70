package repository

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// CustomerRepository define el puerto de lectura de Customer (ventas).
type CustomerRepository interface {
	// GetByID devuelve nil, nil si el cliente no existe en la tienda.
	GetByID(ctx context.Context, shopID, id string) (*entity.Customer, error)
}

// SupplierRepository define el puerto de lectura de Supplier (compras).
type SupplierRepository interface {
	// GetByID devuelve nil, nil si el proveedor no existe en la tienda.
	GetByID(ctx context.Context, shopID, id string) (*entity.Supplier, error)
}
