package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seraphine/pkg/logger"
	"github.com/jhoicas/seraphine/pkg/metrics"
)

// RequestLogger registra cada petición con zerolog y alimenta el histograma de latencia.
// La etiqueta route usa el patrón de la ruta (p.ej. /api/products/:id) para acotar la cardinalidad.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// deja que el ErrorHandler escriba la respuesta antes de leer el status
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Method(), route, strconv.Itoa(status)).
			Observe(elapsed.Seconds())

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			err := chainErr
			if err == nil {
				err, _ = c.Locals(localInternalError).(error)
			}
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("organization_id", GetOrganizationID(c)).
			Msg("request")
		return nil
	}
}
