package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// GetByID obtiene un cliente de la tienda por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, shopID, id string) (*entity.Customer, error) {
	query := `SELECT id, shop_id, name, phone, created_at FROM customers WHERE shop_id = $1 AND id = $2`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, shopID, id).Scan(&c.ID, &c.ShopID, &c.Name, &c.Phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(ctx, "get customer", err)
	}
	return &c, nil
}

// SupplierRepo implementación de SupplierRepository (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// GetByID obtiene un proveedor de la tienda por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, shopID, id string) (*entity.Supplier, error) {
	query := `SELECT id, shop_id, name, phone, created_at FROM suppliers WHERE shop_id = $1 AND id = $2`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, shopID, id).Scan(&s.ID, &s.ShopID, &s.Name, &s.Phone, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(ctx, "get supplier", err)
	}
	return &s, nil
}
