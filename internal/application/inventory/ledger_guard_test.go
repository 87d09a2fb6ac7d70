package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

// shrinkingStock entrega reads[i] en la i-ésima lectura bloqueante; simula una fila que cambia
// entre la verificación y el descuento, algo que el aislamiento real no permite.
type shrinkingStock struct {
	reads []int64
	calls int
	saves int
}

func (s *shrinkingStock) Get(_ context.Context, shopID, productID string) (*entity.StockSnapshot, error) {
	return &entity.StockSnapshot{ShopID: shopID, ProductID: productID, QuantityAvailable: s.reads[0], Version: 1}, nil
}

func (s *shrinkingStock) GetForUpdate(_ context.Context, shopID, productID string) (*entity.StockSnapshot, error) {
	qty := s.reads[len(s.reads)-1]
	if s.calls < len(s.reads) {
		qty = s.reads[s.calls]
	}
	s.calls++
	return &entity.StockSnapshot{ShopID: shopID, ProductID: productID, QuantityAvailable: qty, Version: 1}, nil
}

func (s *shrinkingStock) Save(context.Context, *entity.StockSnapshot) error {
	s.saves++
	return nil
}

type activeProducts struct{}

func (activeProducts) GetByID(_ context.Context, shopID, id string) (*entity.Product, error) {
	return &entity.Product{ID: id, ShopID: shopID, SKU: "SKU-1", Name: "Producto", Status: entity.ProductStatusActive}, nil
}

func (activeProducts) UpdateCostPrice(context.Context, string, string, decimal.Decimal) error {
	return nil
}

type recordingSales struct {
	headers []*entity.Sale
	items   []*entity.SaleItem
}

func (r *recordingSales) Create(_ context.Context, s *entity.Sale) error {
	r.headers = append(r.headers, s)
	return nil
}

func (r *recordingSales) CreateItem(_ context.Context, it *entity.SaleItem) error {
	r.items = append(r.items, it)
	return nil
}

type recordingMovements struct {
	appended []*entity.InventoryMovement
}

func (r *recordingMovements) Append(_ context.Context, m *entity.InventoryMovement) error {
	r.appended = append(r.appended, m)
	return nil
}

func (r *recordingMovements) ListByProduct(context.Context, string, string, int) ([]*entity.InventoryMovement, error) {
	return r.appended, nil
}

func (r *recordingMovements) ListByReference(context.Context, string, string) ([]*entity.InventoryMovement, error) {
	return r.appended, nil
}

// directRunner ejecuta fn sin transacción real; el test inspecciona lo escrito hasta el error.
type directRunner struct {
	repos inventory.Repos
}

func (d directRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	return fn(ctx, d.repos)
}

func TestLedger_SaleRecheckDetectsStockConsumedAfterVerification(t *testing.T) {
	stock := &shrinkingStock{reads: []int64{5, 2}}
	sales := &recordingSales{}
	movs := &recordingMovements{}
	ledger := inventory.NewLedgerUseCase(directRunner{repos: inventory.Repos{
		Stock:     stock,
		Products:  activeProducts{},
		Sales:     sales,
		Movements: movs,
	}}, logger.Nop())

	p := uuid.NewString()
	res, err := ledger.RecordSale(context.Background(), sale(
		inventory.SaleLine{ProductID: p, Quantity: 4, SellingPrice: decimal.NewFromInt(3)},
	))

	require.ErrorIs(t, err, domain.ErrRaceConditionDetected)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, res)
	assert.Equal(t, 2, stock.calls)
	assert.Zero(t, stock.saves)
	assert.Len(t, sales.headers, 1)
	assert.Empty(t, sales.items)
	assert.Empty(t, movs.appended)
}

func TestLedger_SaleRecheckPassesWhenStockUnchanged(t *testing.T) {
	stock := &shrinkingStock{reads: []int64{5}}
	sales := &recordingSales{}
	movs := &recordingMovements{}
	ledger := inventory.NewLedgerUseCase(directRunner{repos: inventory.Repos{
		Stock:     stock,
		Products:  activeProducts{},
		Sales:     sales,
		Movements: movs,
	}}, logger.Nop())

	res, err := ledger.RecordSale(context.Background(), sale(
		inventory.SaleLine{ProductID: uuid.NewString(), Quantity: 4, SellingPrice: decimal.NewFromInt(3)},
	))

	require.NoError(t, err)
	assert.True(t, res.TotalAmount.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, 1, stock.saves)
	assert.Len(t, sales.items, 1)
	require.Len(t, movs.appended, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs.appended[0].Type)
	assert.Equal(t, int64(4), movs.appended[0].Quantity)
}
