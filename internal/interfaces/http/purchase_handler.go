package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/dto"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

// PurchaseHandler recepción de compras (protegido, admin|manager).
type PurchaseHandler struct {
	ledger *inventory.LedgerUseCase
	log    *logger.Logger
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(ledger *inventory.LedgerUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{ledger: ledger, log: log}
}

// Create godoc
// @Summary      Registrar recepción de compra
// @Description  Suma existencias, recalcula el costo promedio ponderado y deja un movimiento IN por línea.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplierId opcional, items"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.PurchaseFromRequest(c.UserContext(), GetShopID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
