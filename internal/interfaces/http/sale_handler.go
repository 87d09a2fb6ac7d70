package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/dto"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

// SaleHandler registro de ventas (protegido, cualquier rol).
type SaleHandler struct {
	ledger *inventory.LedgerUseCase
	log    *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(ledger *inventory.LedgerUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{ledger: ledger, log: log}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Todo o nada: si una línea no tiene existencia suficiente no se descuenta ninguna.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "customerId opcional, paymentMethod, items"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.SaleFromRequest(c.UserContext(), GetShopID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
