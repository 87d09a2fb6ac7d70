package inventory_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

func newQueries(f *fixture, cfg inventory.QueryConfig) *inventory.InventoryQueryUseCase {
	return inventory.NewInventoryQueryUseCase(f.store.InventoryLevels(), f.store.Movements(), cfg)
}

func TestQueries_HistoryNewestFirstWithLimit(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 1)
	f.setQty(t, p, 10)
	_, err := f.adjust(p, 3, entity.MovementTypeOUT)
	require.NoError(t, err)
	_, err = f.adjust(p, 2, entity.MovementTypeIN)
	require.NoError(t, err)

	q := newQueries(f, inventory.QueryConfig{HistoryDefaultLimit: 2, HistoryMaxLimit: 3})

	all, err := q.GetStockHistory(f.ctx, shopID, p, 0)
	require.NoError(t, err)
	require.Len(t, all, 2, "límite por defecto")
	assert.Equal(t, int64(2), all[0].Delta)
	assert.Equal(t, int64(-3), all[1].Delta)
	assert.Equal(t, string(entity.MovementSourceManual), all[0].Reason)

	capped, err := q.GetStockHistory(f.ctx, shopID, p, 99)
	require.NoError(t, err)
	assert.Len(t, capped, 3, "recortado al máximo")

	// leer dos veces no cambia nada
	again, err := q.GetStockHistory(f.ctx, shopID, p, 99)
	require.NoError(t, err)
	assert.Equal(t, capped, again)
}

func TestQueries_HistoryNotFound(t *testing.T) {
	f := newFixture(t)
	q := newQueries(f, inventory.QueryConfig{})

	_, err := q.GetStockHistory(f.ctx, shopID, uuid.NewString(), 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = q.GetStockHistory(f.ctx, shopID, "x", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueries_ListAndGetHideInactive(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 4)
	f.setQty(t, p, 6)
	inactive := uuid.NewString()
	f.store.PutProduct(entity.Product{ID: inactive, ShopID: shopID, SKU: "OLD", Name: "Old", Status: entity.ProductStatusInactive})

	q := newQueries(f, inventory.QueryConfig{})

	items, err := q.ListItems(f.ctx, shopID, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p, items[0].ProductID)
	assert.Equal(t, int64(6), items[0].QuantityAvailable)
	assert.True(t, items[0].CostPrice.Equal(decimal.NewFromInt(4)))
	require.NotNil(t, items[0].LastUpdated)

	_, err = q.GetItemByID(f.ctx, shopID, inactive)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	none, err := q.ListItems(f.ctx, "shop-b", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQueries_LowStock(t *testing.T) {
	f := newFixture(t)
	low, ok, empty := f.product(t, 1), f.product(t, 1), f.product(t, 1)
	f.setQty(t, low, 2)
	f.setQty(t, ok, 50)
	f.setQty(t, empty, 1)
	_, err := f.adjust(empty, 1, entity.MovementTypeOUT)
	require.NoError(t, err)
	f.product(t, 1) // sin snapshot

	q := newQueries(f, inventory.QueryConfig{LowStockThreshold: 5})

	items, err := q.LowStock(f.ctx, shopID, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low, items[0].ProductID)

	wide := int64(100)
	items, err = q.LowStock(f.ctx, shopID, &wide)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	neg := int64(-1)
	_, err = q.LowStock(f.ctx, shopID, &neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
