package postgres

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación de las proyecciones de inventario sobre PostgreSQL.
// Se usa con el pool: lee estado confirmado sin bloquear filas.
type InventoryLevelRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewInventoryLevelRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// levelSelect une productos activos con su snapshot; sin snapshot la cantidad es 0.
func (r *InventoryLevelRepo) levelSelect(shopID string) squirrel.SelectBuilder {
	return r.builder.Select(
		"p.shop_id",
		"p.id AS product_id",
		"p.sku",
		"p.name",
		"p.cost_price",
		"p.selling_price",
		"COALESCE(s.quantity_available, 0) AS quantity_available",
		"COALESCE(s.reorder_level, 0) AS reorder_level",
		"s.last_updated",
	).
		From("products p").
		LeftJoin("stock_snapshots s ON s.shop_id = p.shop_id AND s.product_id = p.id").
		Where(squirrel.Eq{"p.shop_id": shopID, "p.status": string(entity.ProductStatusActive)})
}

func (r *InventoryLevelRepo) List(ctx context.Context, shopID, search string) ([]*entity.InventoryLevel, error) {
	q := r.levelSelect(shopID)
	if term := strings.TrimSpace(search); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.sku": pattern},
		})
	}
	q = q.OrderBy("s.last_updated DESC NULLS LAST", "p.name")
	return r.selectLevels(ctx, "list inventory", q)
}

func (r *InventoryLevelRepo) Get(ctx context.Context, shopID, productID string) (*entity.InventoryLevel, error) {
	levels, err := r.selectLevels(ctx, "get inventory item", r.levelSelect(shopID).Where(squirrel.Eq{"p.id": productID}))
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, nil
	}
	return levels[0], nil
}

func (r *InventoryLevelRepo) LowStock(ctx context.Context, shopID string, threshold int64) ([]*entity.InventoryLevel, error) {
	q := r.levelSelect(shopID).
		Where(squirrel.Gt{"s.quantity_available": 0}).
		Where(squirrel.LtOrEq{"s.quantity_available": threshold}).
		OrderBy("s.quantity_available", "p.name")
	return r.selectLevels(ctx, "list low stock", q)
}

// BelowReorderLevel devuelve los productos con nivel de reorden configurado y cantidad en o bajo ese nivel.
// Ordena por déficit descendente (mayor quiebre primero).
func (r *InventoryLevelRepo) BelowReorderLevel(ctx context.Context, shopID string) ([]repository.ReplenishmentItem, error) {
	sql, args, err := r.builder.Select(
		"p.id AS product_id",
		"p.sku",
		"p.name",
		"s.quantity_available",
		"s.reorder_level",
		"p.cost_price",
	).
		From("stock_snapshots s").
		Join("products p ON p.shop_id = s.shop_id AND p.id = s.product_id").
		Where(squirrel.Eq{"s.shop_id": shopID, "p.status": string(entity.ProductStatusActive)}).
		Where("s.reorder_level > 0 AND s.quantity_available <= s.reorder_level").
		OrderBy("(s.reorder_level - s.quantity_available) DESC", "p.sku").
		ToSql()
	if err != nil {
		return nil, classify(ctx, "build below reorder level", err)
	}
	var items []repository.ReplenishmentItem
	if err := pgxscan.Select(ctx, r.q, &items, sql, args...); err != nil {
		return nil, classify(ctx, "list below reorder level", err)
	}
	return items, nil
}

func (r *InventoryLevelRepo) selectLevels(ctx context.Context, op string, q squirrel.SelectBuilder) ([]*entity.InventoryLevel, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, classify(ctx, "build "+op, err)
	}
	var levels []*entity.InventoryLevel
	if err := pgxscan.Select(ctx, r.q, &levels, sql, args...); err != nil {
		return nil, classify(ctx, op, err)
	}
	return levels, nil
}

// escapeLike escapa los comodines de LIKE para que la búsqueda sea de subcadena literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
