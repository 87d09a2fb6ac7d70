package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/dto"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

// InventoryHandler maneja ajustes, consultas de existencias y sugerencias de reposición (protegido).
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	queries       *inventory.InventoryQueryUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.LedgerUseCase,
	queries *inventory.InventoryQueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, queries: queries, replenishment: replenishment, log: log}
}

// Adjust godoc
// @Summary      Ajuste manual de existencias
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "productId, quantity, type (IN|OUT|ADJUSTMENT), source"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.AdjustFromRequest(c.UserContext(), GetShopID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar existencias de productos activos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Filtro por nombre o SKU"
// @Success      200  {object}  dto.ListResponse[dto.InventoryItemResponse]
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.queries.ListItems(c.UserContext(), GetShopID(c), strings.TrimSpace(c.Query("search")))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewListResponse(items))
}

// Get godoc
// @Summary      Existencia de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	item, err := h.queries.GetItemByID(c.UserContext(), GetShopID(c), c.Params("productId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(item)
}

// History godoc
// @Summary      Historial de movimientos de un producto (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Máximo de movimientos"
// @Success      200  {object}  dto.ListResponse[dto.StockHistoryEntry]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, h.log, domain.NewValidation("limit", "debe ser un entero"))
		}
		limit = n
	}
	entries, err := h.queries.GetStockHistory(c.UserContext(), GetShopID(c), c.Params("productId"), limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewListResponse(entries))
}

// LowStock godoc
// @Summary      Productos con existencia en o por debajo del umbral
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral (por defecto el configurado)"
// @Success      200  {object}  dto.ListResponse[dto.InventoryItemResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	var threshold *int64
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return writeError(c, h.log, domain.NewValidation("threshold", "debe ser un entero"))
		}
		threshold = &n
	}
	items, err := h.queries.LowStock(c.UserContext(), GetShopID(c), threshold)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewListResponse(items))
}

// ReorderSuggestions godoc
// @Summary      Sugerencias de reposición
// @Description  Productos por debajo de su nivel de reorden, priorizados por déficit.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ReplenishmentSuggestionDTO]
// @Router       /api/inventory/reorder-suggestions [get]
func (h *InventoryHandler) ReorderSuggestions(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), GetShopID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewListResponse(list))
}

// SetReorderLevel godoc
// @Summary      Actualizar nivel de reorden
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                      true  "ID del producto"
// @Param        body       body  dto.SetReorderLevelRequest  true  "reorderLevel"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/reorder-level [put]
func (h *InventoryHandler) SetReorderLevel(c *fiber.Ctx) error {
	var in dto.SetReorderLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.ledger.SetReorderLevel(c.UserContext(), GetShopID(c), c.Params("productId"), in.ReorderLevel)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(item)
}
