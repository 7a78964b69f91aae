package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency per matched route.
func (m *Middleware) Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		m.metrics.ObserveRequest(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(status),
			time.Since(start).Seconds(),
		)
		return err
	}
}
