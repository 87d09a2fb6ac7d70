package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementsTable = "inventory_movements"

// InventoryMovementRepo implementación del log de movimientos sobre PostgreSQL.
// Solo inserta y lee: no existe UPDATE ni DELETE sobre inventory_movements.
type InventoryMovementRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

type movementRow struct {
	ID          string    `db:"id"`
	ShopID      string    `db:"shop_id"`
	ProductID   string    `db:"product_id"`
	Type        string    `db:"type"`
	Quantity    int64     `db:"quantity"`
	Source      string    `db:"source"`
	ReferenceID *string   `db:"reference_id"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m movementRow) toEntity() *entity.InventoryMovement {
	return &entity.InventoryMovement{
		ID:          m.ID,
		ShopID:      m.ShopID,
		ProductID:   m.ProductID,
		Type:        entity.MovementType(m.Type),
		Quantity:    m.Quantity,
		Source:      entity.MovementSource(m.Source),
		ReferenceID: m.ReferenceID,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

var movementColumns = []string{
	"id", "shop_id", "product_id", "type", "quantity", "source", "reference_id", "created_by", "created_at",
}

// Append inserta un movimiento.
func (r *InventoryMovementRepo) Append(ctx context.Context, m *entity.InventoryMovement) error {
	sql, args, err := r.builder.Insert(movementsTable).
		Columns(movementColumns...).
		Values(m.ID, m.ShopID, m.ProductID, string(m.Type), m.Quantity, string(m.Source), m.ReferenceID, m.CreatedBy, m.CreatedAt).
		ToSql()
	if err != nil {
		return classify(ctx, "build insert movement", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return classify(ctx, "insert movement", err)
	}
	return nil
}

// ListByProduct devuelve los últimos limit movimientos del producto; seq desempata los de la misma transacción.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, shopID, productID string, limit int) ([]*entity.InventoryMovement, error) {
	q := r.builder.Select(movementColumns...).
		From(movementsTable).
		Where(squirrel.Eq{"shop_id": shopID, "product_id": productID}).
		OrderBy("created_at DESC", "seq DESC").
		Limit(uint64(limit))
	return r.list(ctx, "list movements by product", q)
}

// ListByReference devuelve los movimientos de una compra, venta o ajuste en orden de escritura.
func (r *InventoryMovementRepo) ListByReference(ctx context.Context, shopID, referenceID string) ([]*entity.InventoryMovement, error) {
	q := r.builder.Select(movementColumns...).
		From(movementsTable).
		Where(squirrel.Eq{"shop_id": shopID, "reference_id": referenceID}).
		OrderBy("seq")
	return r.list(ctx, "list movements by reference", q)
}

func (r *InventoryMovementRepo) list(ctx context.Context, op string, q squirrel.SelectBuilder) ([]*entity.InventoryMovement, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, classify(ctx, "build "+op, err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, classify(ctx, op, err)
	}
	out := make([]*entity.InventoryMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
