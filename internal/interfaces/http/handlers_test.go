package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/dto"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/infrastructure/memory"
	apphttp "github.com/sushantkumaryadav912/Inventory-Manager/internal/interfaces/http"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

type apiFixture struct {
	app     *fiber.App
	store   *memory.Store
	product string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore(0)
	pid := uuid.NewString()
	store.PutProduct(entity.Product{
		ID:           pid,
		ShopID:       testShopID,
		SKU:          "SKU-1",
		Name:         "Café molido",
		CostPrice:    decimal.NewFromInt(10),
		SellingPrice: decimal.NewFromInt(15),
		Status:       entity.ProductStatusActive,
	})

	log := logger.Nop()
	ledger := inventory.NewLedgerUseCase(store, log)
	queries := inventory.NewInventoryQueryUseCase(store.InventoryLevels(), store.Movements(), inventory.QueryConfig{
		HistoryDefaultLimit: 50, HistoryMaxLimit: 200, LowStockThreshold: 5,
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:        ledger,
		Queries:       queries,
		Replenishment: inventory.NewReplenishmentUseCase(store.InventoryLevels()),
		JWTSecret:     testJWTSecret,
		ServiceName:   "test",
		Logger:        log,
	})
	return &apiFixture{app: app, store: store, product: pid}
}

func (f *apiFixture) call(t *testing.T, method, path, role string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestAPI_PurchaseThenSaleThenRead(t *testing.T) {
	f := newAPI(t)

	resp, body := f.call(t, http.MethodPost, "/api/purchases", "manager", dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{{ProductID: f.product, Quantity: 10, CostPrice: decimal.NewFromInt(12)}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.NotEmpty(t, body["purchaseId"])

	resp, body = f.call(t, http.MethodPost, "/api/sales", "staff", dto.CreateSaleRequest{
		PaymentMethod: "CASH",
		Items:         []dto.SaleItemRequest{{ProductID: f.product, Quantity: 4, SellingPrice: decimal.NewFromInt(15)}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = f.call(t, http.MethodGet, "/api/inventory/"+f.product, "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(6), body["quantityAvailable"])

	resp, body = f.call(t, http.MethodGet, "/api/inventory/"+f.product+"/history", "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])
	items := body["items"].([]any)
	assert.Equal(t, float64(-4), items[0].(map[string]any)["delta"])
}

func TestAPI_SaleInsufficientStock(t *testing.T) {
	f := newAPI(t)

	resp, body := f.call(t, http.MethodPost, "/api/sales", "staff", dto.CreateSaleRequest{
		PaymentMethod: "UPI",
		Items:         []dto.SaleItemRequest{{ProductID: f.product, Quantity: 1, SellingPrice: decimal.NewFromInt(15)}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	details := body["details"].(map[string]any)
	assert.Equal(t, f.product, details["productId"])
	assert.Equal(t, float64(1), details["requested"])
	assert.Equal(t, float64(0), details["available"])

	_, sales := f.store.Counts()
	assert.Zero(t, sales)
}

func TestAPI_RolesAndValidation(t *testing.T) {
	f := newAPI(t)

	adjust := dto.AdjustStockRequest{ProductID: f.product, Quantity: 3, Type: "IN", Source: "MANUAL"}
	resp, _ := f.call(t, http.MethodPost, "/api/inventory/adjust", "staff", adjust)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := f.call(t, http.MethodPost, "/api/inventory/adjust", "admin", adjust)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, float64(0), body["previousQty"])
	assert.Equal(t, float64(3), body["currentQty"])

	resp, body = f.call(t, http.MethodPost, "/api/inventory/adjust", "admin", dto.AdjustStockRequest{
		ProductID: f.product, Quantity: 0, Type: "IN", Source: "MANUAL",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	resp, body = f.call(t, http.MethodGet, "/api/inventory/"+uuid.NewString(), "staff", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	resp, _ = f.call(t, http.MethodGet, "/api/inventory/low-stock?threshold=abc", "staff", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.call(t, http.MethodGet, "/api/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_LowStockAndReorder(t *testing.T) {
	f := newAPI(t)

	resp, _ := f.call(t, http.MethodPost, "/api/inventory/adjust", "manager", dto.AdjustStockRequest{
		ProductID: f.product, Quantity: 2, Type: "ADJUSTMENT", Source: "MANUAL",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := f.call(t, http.MethodPut, "/api/inventory/"+f.product+"/reorder-level", "manager", dto.SetReorderLevelRequest{ReorderLevel: 4})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, float64(4), body["reorderLevel"])

	resp, body = f.call(t, http.MethodGet, "/api/inventory/low-stock", "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	resp, body = f.call(t, http.MethodGet, "/api/inventory/reorder-suggestions", "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(1), body["total"])
	s := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(6), s["idealStock"])
	assert.Equal(t, float64(4), s["suggestedOrderQty"])
	assert.Equal(t, float64(1), s["priority"])
}

func TestAPI_Health(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
