package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

// scriptedQuerier registra el SQL recibido y responde Exec en orden con tags/errores preparados.
type scriptedQuerier struct {
	sql      []string
	tags     []string
	errs     []error
	rowQty   int64
	rowVer   int64
	execCall int
}

func (q *scriptedQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	i := q.execCall
	q.execCall++
	var err error
	if i < len(q.errs) {
		err = q.errs[i]
	}
	tag := "INSERT 0 1"
	if i < len(q.tags) {
		tag = q.tags[i]
	}
	return pgconn.NewCommandTag(tag), err
}

func (q *scriptedQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("no usado")
}

func (q *scriptedQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	return snapshotRow{shopID: args[0].(string), productID: args[1].(string), qty: q.rowQty, version: q.rowVer}
}

type snapshotRow struct {
	shopID, productID string
	qty, version      int64
}

func (r snapshotRow) Scan(dest ...any) error {
	*dest[0].(*string) = r.shopID
	*dest[1].(*string) = r.productID
	*dest[2].(*int64) = r.qty
	*dest[3].(*int64) = 0
	*dest[4].(*time.Time) = time.Now()
	*dest[5].(*int64) = r.version
	return nil
}

func TestStockRepo_GetForUpdateCreatesLockablePlaceholder(t *testing.T) {
	q := &scriptedQuerier{rowVer: 0}
	repo := NewStockRepository(q)

	snap, err := repo.GetForUpdate(context.Background(), "shop-1", "p-1")
	require.NoError(t, err)
	require.Len(t, q.sql, 2)
	assert.Contains(t, q.sql[0], "INSERT INTO stock_snapshots")
	assert.Contains(t, q.sql[0], "ON CONFLICT (shop_id, product_id) DO NOTHING")
	assert.Contains(t, q.sql[1], "FOR UPDATE")
	assert.False(t, snap.Initialized())
	assert.Equal(t, int64(0), snap.QuantityAvailable)
}

func TestStockRepo_SaveFillsPlaceholderWithUpdate(t *testing.T) {
	q := &scriptedQuerier{tags: []string{"UPDATE 1"}}
	repo := NewStockRepository(q)

	snap := &entity.StockSnapshot{ShopID: "shop-1", ProductID: "p-1", QuantityAvailable: 7, LastUpdated: time.Now()}
	require.NoError(t, repo.Save(context.Background(), snap))
	assert.Equal(t, int64(1), snap.Version)
	require.Len(t, q.sql, 1)
	assert.True(t, strings.Contains(q.sql[0], "UPDATE stock_snapshots"))
}

func TestStockRepo_SaveWithoutRowInsertsAndDetectsCollision(t *testing.T) {
	q := &scriptedQuerier{tags: []string{"UPDATE 0", "INSERT 0 1"}}
	repo := NewStockRepository(q)
	snap := &entity.StockSnapshot{ShopID: "shop-1", ProductID: "p-1", QuantityAvailable: 2, LastUpdated: time.Now()}
	require.NoError(t, repo.Save(context.Background(), snap))
	assert.Equal(t, int64(1), snap.Version)
	require.Len(t, q.sql, 2)
	assert.Contains(t, q.sql[1], "INSERT INTO stock_snapshots")

	q = &scriptedQuerier{
		tags: []string{"UPDATE 0", ""},
		errs: []error{nil, &pgconn.PgError{Code: pgUniqueViolation}},
	}
	repo = NewStockRepository(q)
	snap = &entity.StockSnapshot{ShopID: "shop-1", ProductID: "p-1", QuantityAvailable: 2, LastUpdated: time.Now()}
	err := repo.Save(context.Background(), snap)
	assert.ErrorIs(t, err, domain.ErrRaceConditionDetected)
}

func TestStockRepo_SaveVersionMismatchIsRace(t *testing.T) {
	q := &scriptedQuerier{tags: []string{"UPDATE 0"}}
	repo := NewStockRepository(q)

	snap := &entity.StockSnapshot{ShopID: "shop-1", ProductID: "p-1", QuantityAvailable: 2, Version: 3}
	err := repo.Save(context.Background(), snap)
	assert.ErrorIs(t, err, domain.ErrRaceConditionDetected)
	assert.Equal(t, int64(3), snap.Version)
	assert.Len(t, q.sql, 1)
}
