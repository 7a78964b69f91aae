package handlers

import (
	"estatehub/config"
	"estatehub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func HealthHandler(router fiber.Router, config config.Config) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": config.GeneralVersion,
			"service": "estatehub_api",
		})
	})
}

func MetricsHandler(router fiber.Router, metrics *services.MetricsService) {
	if metrics == nil {
		return
	}

	router.Get("/metrics", adaptor.HTTPHandler(
		promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
	))
}
