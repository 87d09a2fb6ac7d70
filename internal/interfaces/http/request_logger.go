package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

// RequestLogger registra método, ruta, estado y latencia de cada petición.
// Tienda y usuario se leen después de c.Next(), cuando AuthMiddleware ya los cargó.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("shop_id", GetShopID(c)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
