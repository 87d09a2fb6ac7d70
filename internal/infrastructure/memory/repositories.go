package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

var (
	_ repository.StockRepository             = (*StockRepo)(nil)
	_ repository.InventoryMovementRepository = (*MovementRepo)(nil)
	_ repository.ProductRepository           = (*ProductRepo)(nil)
	_ repository.SupplierRepository          = (*SupplierRepo)(nil)
	_ repository.CustomerRepository          = (*CustomerRepo)(nil)
	_ repository.PurchaseRepository          = (*PurchaseRepo)(nil)
	_ repository.SaleRepository              = (*SaleRepo)(nil)
)

// StockRepo snapshot de stock en memoria con la misma verificación de versión que PostgreSQL.
type StockRepo struct{ ref stateRef }

func (r *StockRepo) Get(ctx context.Context, shopID, productID string) (*entity.StockSnapshot, error) {
	var out *entity.StockSnapshot
	err := r.ref.read(func(st *state) error {
		if s, ok := st.stocks[key{shopID, productID}]; ok {
			out = &s
			return nil
		}
		out = &entity.StockSnapshot{ShopID: shopID, ProductID: productID}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a Get: la transacción ya tiene acceso exclusivo.
func (r *StockRepo) GetForUpdate(ctx context.Context, shopID, productID string) (*entity.StockSnapshot, error) {
	return r.Get(ctx, shopID, productID)
}

func (r *StockRepo) Save(ctx context.Context, stock *entity.StockSnapshot) error {
	return r.ref.write(func(st *state) error {
		if stock.QuantityAvailable < 0 || stock.ReorderLevel < 0 {
			// Equivale al CHECK de la tabla.
			return fmt.Errorf("save stock %s: %w: cantidad negativa", stock.ProductID, domain.ErrInfrastructure)
		}
		k := key{stock.ShopID, stock.ProductID}
		current, exists := st.stocks[k]
		switch {
		case stock.Version == 0 && exists:
			return fmt.Errorf("insert stock %s: %w", stock.ProductID, domain.ErrRaceConditionDetected)
		case stock.Version > 0 && (!exists || current.Version != stock.Version):
			return fmt.Errorf("update stock %s version %d: %w", stock.ProductID, stock.Version, domain.ErrRaceConditionDetected)
		}
		stock.Version++
		st.stocks[k] = *stock
		return nil
	})
}

// MovementRepo log de movimientos en memoria; el índice del slice hace de seq.
type MovementRepo struct{ ref stateRef }

func (r *MovementRepo) Append(ctx context.Context, m *entity.InventoryMovement) error {
	return r.ref.write(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *MovementRepo) ListByProduct(ctx context.Context, shopID, productID string, limit int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.ref.read(func(st *state) error {
		type indexed struct {
			seq int
			m   entity.InventoryMovement
		}
		var found []indexed
		for i, m := range st.movements {
			if m.ShopID == shopID && m.ProductID == productID {
				found = append(found, indexed{seq: i, m: m})
			}
		}
		sort.SliceStable(found, func(i, j int) bool {
			if !found[i].m.CreatedAt.Equal(found[j].m.CreatedAt) {
				return found[i].m.CreatedAt.After(found[j].m.CreatedAt)
			}
			return found[i].seq > found[j].seq
		})
		if limit > 0 && len(found) > limit {
			found = found[:limit]
		}
		out = make([]*entity.InventoryMovement, 0, len(found))
		for _, f := range found {
			m := f.m
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) ListByReference(ctx context.Context, shopID, referenceID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.ref.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ShopID == shopID && m.ReferenceID != nil && *m.ReferenceID == referenceID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct{ ref stateRef }

func (r *ProductRepo) GetByID(ctx context.Context, shopID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.ref.read(func(st *state) error {
		if p, ok := st.products[key{shopID, id}]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) UpdateCostPrice(ctx context.Context, shopID, productID string, cost decimal.Decimal) error {
	return r.ref.write(func(st *state) error {
		k := key{shopID, productID}
		p, ok := st.products[k]
		if !ok {
			return fmt.Errorf("update product cost: %w", domain.NewNotFound("product", productID))
		}
		p.CostPrice = cost
		st.products[k] = p
		return nil
	})
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ ref stateRef }

func (r *SupplierRepo) GetByID(ctx context.Context, shopID, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.ref.read(func(st *state) error {
		if v, ok := st.suppliers[key{shopID, id}]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ ref stateRef }

func (r *CustomerRepo) GetByID(ctx context.Context, shopID, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.ref.read(func(st *state) error {
		if v, ok := st.customers[key{shopID, id}]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

// PurchaseRepo compras en memoria.
type PurchaseRepo struct{ ref stateRef }

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	return r.ref.write(func(st *state) error {
		st.purchases = append(st.purchases, *p)
		return nil
	})
}

func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	return r.ref.write(func(st *state) error {
		st.purchaseItems = append(st.purchaseItems, *it)
		return nil
	})
}

// SaleRepo ventas en memoria.
type SaleRepo struct{ ref stateRef }

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.ref.write(func(st *state) error {
		st.sales = append(st.sales, *s)
		return nil
	})
}

func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	return r.ref.write(func(st *state) error {
		st.saleItems = append(st.saleItems, *it)
		return nil
	})
}
