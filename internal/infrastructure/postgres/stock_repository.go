package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `shop_id, product_id, quantity_available, reorder_level, last_updated, version`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el snapshot actual de un producto en la tienda.
func (r *StockRepo) Get(ctx context.Context, shopID, productID string) (*entity.StockSnapshot, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_snapshots WHERE shop_id = $1 AND product_id = $2`
	return r.scanOne(ctx, "get stock", query, shopID, productID)
}

// GetForUpdate obtiene el snapshot y bloquea la fila para update (SELECT FOR UPDATE).
// Si la fila no existe inserta antes un marcador en cero (version 0) con ON CONFLICT DO NOTHING,
// así un segundo escritor concurrente espera el lock en lugar de chocar en el INSERT.
// El marcador solo se confirma si la transacción llega a Save; si no, el Rollback lo descarta.
func (r *StockRepo) GetForUpdate(ctx context.Context, shopID, productID string) (*entity.StockSnapshot, error) {
	placeholder := `
		INSERT INTO stock_snapshots (` + stockColumns + `)
		VALUES ($1, $2, 0, 0, now(), 0)
		ON CONFLICT (shop_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, placeholder, shopID, productID); err != nil {
		return nil, classify(ctx, "lock stock", err)
	}
	query := `SELECT ` + stockColumns + ` FROM stock_snapshots WHERE shop_id = $1 AND product_id = $2 FOR UPDATE`
	return r.scanOne(ctx, "get stock for update", query, shopID, productID)
}

func (r *StockRepo) scanOne(ctx context.Context, op, query, shopID, productID string) (*entity.StockSnapshot, error) {
	var s entity.StockSnapshot
	err := r.q.QueryRow(ctx, query, shopID, productID).Scan(
		&s.ShopID, &s.ProductID, &s.QuantityAvailable, &s.ReorderLevel, &s.LastUpdated, &s.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockSnapshot{ShopID: shopID, ProductID: productID}, nil
		}
		return nil, classify(ctx, op, err)
	}
	return &s, nil
}

// Save actualiza la fila si Version coincide (incluido el marcador version 0 de GetForUpdate)
// y luego incrementa Version. Sin fila previa y con Version 0 la inserta.
func (r *StockRepo) Save(ctx context.Context, stock *entity.StockSnapshot) error {
	query := `
		UPDATE stock_snapshots
		SET quantity_available = $3, reorder_level = $4, last_updated = $5, version = version + 1
		WHERE shop_id = $1 AND product_id = $2 AND version = $6`
	tag, err := r.q.Exec(ctx, query,
		stock.ShopID, stock.ProductID, stock.QuantityAvailable, stock.ReorderLevel, stock.LastUpdated, stock.Version,
	)
	if err != nil {
		return classify(ctx, "update stock", err)
	}
	if tag.RowsAffected() == 1 {
		stock.Version++
		return nil
	}
	if stock.Version != 0 {
		return fmt.Errorf("update stock %s version %d: %w", stock.ProductID, stock.Version, domain.ErrRaceConditionDetected)
	}

	insert := `
		INSERT INTO stock_snapshots (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, 1)`
	_, err = r.q.Exec(ctx, insert,
		stock.ShopID, stock.ProductID, stock.QuantityAvailable, stock.ReorderLevel, stock.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Otra transacción creó la fila sin que la bloqueáramos antes.
			return fmt.Errorf("insert stock %s: %w", stock.ProductID, domain.ErrRaceConditionDetected)
		}
		return classify(ctx, "insert stock", err)
	}
	stock.Version = 1
	return nil
}
