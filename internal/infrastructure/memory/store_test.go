package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/infrastructure/memory"
)

const shop = "shop-1"

func saveQty(t *testing.T, s *memory.Store, productID string, qty int64) {
	t.Helper()
	err := s.Run(context.Background(), func(ctx context.Context, r inventory.Repos) error {
		snap, err := r.Stock.GetForUpdate(ctx, shop, productID)
		if err != nil {
			return err
		}
		snap.QuantityAvailable = qty
		snap.LastUpdated = time.Now()
		return r.Stock.Save(ctx, snap)
	})
	require.NoError(t, err)
}

func TestStore_RollbackKeepsCommittedState(t *testing.T) {
	s := memory.NewStore(0)
	pid := uuid.NewString()
	saveQty(t, s, pid, 7)

	boom := errors.New("boom")
	err := s.Run(context.Background(), func(ctx context.Context, r inventory.Repos) error {
		snap, _ := r.Stock.GetForUpdate(ctx, shop, pid)
		snap.QuantityAvailable = 1
		require.NoError(t, r.Stock.Save(ctx, snap))
		require.NoError(t, r.Movements.Append(ctx, &entity.InventoryMovement{ShopID: shop, ProductID: pid}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	snap, err := s.Stock().Get(context.Background(), shop, pid)
	require.NoError(t, err)
	assert.Equal(t, int64(7), snap.QuantityAvailable)
	assert.Equal(t, int64(1), snap.Version)

	movs, err := s.Movements().ListByProduct(context.Background(), shop, pid, 10)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestStore_VersionMismatchIsRace(t *testing.T) {
	s := memory.NewStore(0)
	pid := uuid.NewString()
	saveQty(t, s, pid, 3)

	err := s.Run(context.Background(), func(ctx context.Context, r inventory.Repos) error {
		stale := &entity.StockSnapshot{ShopID: shop, ProductID: pid, QuantityAvailable: 9}
		return r.Stock.Save(ctx, stale) // Version 0 pero la fila existe
	})
	assert.ErrorIs(t, err, domain.ErrRaceConditionDetected)
}

func TestStore_TimeoutWaitingForTurn(t *testing.T) {
	s := memory.NewStore(50 * time.Millisecond)
	hold := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = s.Run(context.Background(), func(ctx context.Context, r inventory.Repos) error {
			close(started)
			<-hold
			return nil
		})
	}()
	<-started

	err := s.Run(context.Background(), func(ctx context.Context, r inventory.Repos) error {
		t.Fatal("no debería ejecutarse")
		return nil
	})
	close(hold)
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestStore_WritesOutsideTransactionRejected(t *testing.T) {
	s := memory.NewStore(0)
	err := s.Movements().Append(context.Background(), &entity.InventoryMovement{ShopID: shop})
	assert.Error(t, err)
}

func TestInventoryLevels_CaseFoldedSearchAndOrder(t *testing.T) {
	s := memory.NewStore(0)
	a, b, c := uuid.NewString(), uuid.NewString(), uuid.NewString()
	s.PutProduct(entity.Product{ID: a, ShopID: shop, SKU: "STRASSE-1", Name: "Straße Kaffee", Status: entity.ProductStatusActive, CostPrice: decimal.NewFromInt(2)})
	s.PutProduct(entity.Product{ID: b, ShopID: shop, SKU: "TEA-1", Name: "Green Tea", Status: entity.ProductStatusActive})
	s.PutProduct(entity.Product{ID: c, ShopID: shop, SKU: "OLD-1", Name: "Discontinued", Status: entity.ProductStatusInactive})
	s.PutProduct(entity.Product{ID: uuid.NewString(), ShopID: "other", SKU: "TEA-2", Name: "Tea elsewhere", Status: entity.ProductStatusActive})
	saveQty(t, s, b, 4)

	repo := s.InventoryLevels()
	ctx := context.Background()

	all, err := repo.List(ctx, shop, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b, all[0].ProductID) // con movimiento primero
	assert.Nil(t, all[1].LastUpdated)

	found, err := repo.List(ctx, shop, "STRASSE")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a, found[0].ProductID)

	found, err = repo.List(ctx, shop, "tea")
	require.NoError(t, err)
	require.Len(t, found, 1)

	inactive, err := repo.Get(ctx, shop, c)
	require.NoError(t, err)
	assert.Nil(t, inactive)
}
