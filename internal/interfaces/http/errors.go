package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/dto"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

// writeError traduce errores de dominio a respuestas HTTP.
// Los errores de negocio llevan mensaje legible; race e infraestructura devuelven un mensaje genérico
// y el detalle completo queda en el log.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		stock      *domain.StockError
	)
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: validation.Error(),
			Details: map[string]any{"field": validation.Field},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: notFound.Error(),
			Details: map[string]any{"entity": notFound.Entity, "id": notFound.ID},
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.As(err, &stock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente",
			Details: map[string]any{
				"productId": stock.ProductID,
				"requested": stock.Requested,
				"available": stock.Available,
			},
		})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrTimeout):
		log.Warn().Err(err).Str("path", c.Path()).Msg("operación excedió el tiempo")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "el servicio está ocupado, reintente"})
	case errors.Is(err, domain.ErrRaceConditionDetected):
		log.Error().Err(err).Str("path", c.Path()).Str("shop_id", GetShopID(c)).Msg("modificación concurrente detectada")
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "no se pudo completar la operación, reintente"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Str("shop_id", GetShopID(c)).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
