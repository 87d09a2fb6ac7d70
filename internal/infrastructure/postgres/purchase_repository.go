package postgres

import (
	"context"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
)

// PurchaseRepo persiste compras y sus líneas (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, shop_id, supplier_id, total_cost, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, p.ID, p.ShopID, p.SupplierID, p.TotalCost, p.CreatedBy, p.CreatedAt); err != nil {
		return classify(ctx, "insert purchase", err)
	}
	return nil
}

func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, cost_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, it.ID, it.PurchaseID, it.ProductID, it.Quantity, it.CostPrice, it.LineTotal); err != nil {
		return classify(ctx, "insert purchase item", err)
	}
	return nil
}

// SaleRepo persiste ventas y sus líneas (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, shop_id, customer_id, payment_method, total_amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query,
		s.ID, s.ShopID, s.CustomerID, string(s.PaymentMethod), s.TotalAmount, s.CreatedBy, s.CreatedAt,
	); err != nil {
		return classify(ctx, "insert sale", err)
	}
	return nil
}

func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, selling_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, it.ID, it.SaleID, it.ProductID, it.Quantity, it.SellingPrice, it.LineTotal); err != nil {
		return classify(ctx, "insert sale item", err)
	}
	return nil
}
