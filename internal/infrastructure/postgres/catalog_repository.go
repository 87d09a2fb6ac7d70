package postgres

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// CatalogRepo upserts del catálogo para la siembra inicial (usable con pool o tx).
// No toca stock_snapshots ni el costo de un producto existente: ambos los mantiene el ledger.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// SeedProduct inserta o actualiza un producto por (shop_id, sku).
func (r *CatalogRepo) SeedProduct(ctx context.Context, p entity.Product) error {
	query := `
		INSERT INTO products (id, shop_id, sku, name, cost_price, selling_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (shop_id, sku) DO UPDATE
		SET name = EXCLUDED.name, selling_price = EXCLUDED.selling_price,
		    status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, p.ID, p.ShopID, p.SKU, p.Name, p.CostPrice, p.SellingPrice, string(p.Status), p.UpdatedAt)
	if err != nil {
		return classify(ctx, "seed product", err)
	}
	return nil
}

// SeedSupplier inserta o actualiza un proveedor por ID.
func (r *CatalogRepo) SeedSupplier(ctx context.Context, s entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, shop_id, name, phone, created_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone`
	if _, err := r.q.Exec(ctx, query, s.ID, s.ShopID, s.Name, s.Phone, s.CreatedAt); err != nil {
		return classify(ctx, "seed supplier", err)
	}
	return nil
}

// SeedCustomer inserta o actualiza un cliente por ID.
func (r *CatalogRepo) SeedCustomer(ctx context.Context, c entity.Customer) error {
	query := `
		INSERT INTO customers (id, shop_id, name, phone, created_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone`
	if _, err := r.q.Exec(ctx, query, c.ID, c.ShopID, c.Name, c.Phone, c.CreatedAt); err != nil {
		return classify(ctx, "seed customer", err)
	}
	return nil
}
