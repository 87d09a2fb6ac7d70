package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto de la tienda por ID (incluye inactivos; el llamador decide).
func (r *ProductRepo) GetByID(ctx context.Context, shopID, id string) (*entity.Product, error) {
	query := `
		SELECT id, shop_id, sku, name, cost_price, selling_price, status, created_at, updated_at
		FROM products WHERE shop_id = $1 AND id = $2`
	var p entity.Product
	var status string
	err := r.q.QueryRow(ctx, query, shopID, id).Scan(
		&p.ID, &p.ShopID, &p.SKU, &p.Name, &p.CostPrice, &p.SellingPrice, &status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(ctx, "get product", err)
	}
	p.Status = entity.ProductStatus(status)
	return &p, nil
}

// UpdateCostPrice actualiza el costo promedio ponderado del producto.
func (r *ProductRepo) UpdateCostPrice(ctx context.Context, shopID, productID string, cost decimal.Decimal) error {
	query := `UPDATE products SET cost_price = $3, updated_at = now() WHERE shop_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, shopID, productID, cost)
	if err != nil {
		return classify(ctx, "update product cost", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product cost: %w", domain.NewNotFound("product", productID))
	}
	return nil
}
