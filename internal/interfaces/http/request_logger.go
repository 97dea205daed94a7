package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-admin/pkg/logger"
)

// RequestLogger registra método, ruta, status, latencia y request id de cada petición.
// Va después de requestid.New() para que el id esté en Locals.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// el ErrorHandler escribe el status final
			_ = c.App().ErrorHandler(c, err)
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		rid, _ := c.Locals("requestid").(string)
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", rid).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return nil
	}
}
