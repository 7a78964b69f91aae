package handlers

import (
	"errors"
	"strconv"

	"estatehub/internal/app"
	"estatehub/internal/handlers/middleware"
	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.TraceID())
	router.Use(app.Middleware.Metrics())

	setupWebSocketRoute(router, app)
	MetricsHandler(router, app.Services.Metrics)

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewUserHandler(*app, api).Register()
	NewPropertyHandler(*app, api).Register()
	NewReviewHandler(*app, api).Register()
	NewReasonReportHandler(*app, api).Register()
	NewCatalogHandler(*app, api).Register()
	NewNotificationHandler(*app, api).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

// requireUser returns the authenticated user, or writes a 401 and returns nil.
func (h *Handler) requireUser(c *fiber.Ctx) *User {
	user := middleware.GetUser(c)
	if user == nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}
	return user
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	var validation ValidationErrors
	switch {
	case errors.As(err, &validation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrEmptyUpdate),
		errors.Is(err, ErrUnknownAmenity),
		errors.Is(err, ErrNoAdmin):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrAlreadyApproved),
		errors.Is(err, ErrReviewExists),
		errors.Is(err, ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, ErrStorageDisabled):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// handleError writes the error response. Unexpected errors are logged and hidden
// behind fallback.
func (h *Handler) handleError(c *fiber.Ctx, err error, fallback string) error {
	status := errorStatus(err)

	if status == fiber.StatusInternalServerError {
		h.log.TraceFromContext(c.UserContext()).Function("handleError").
			Er(fallback, err, "path", c.Path(), "method", c.Method())
		return c.Status(status).JSON(fiber.Map{
			"error": fallback,
		})
	}

	response := fiber.Map{"error": err.Error()}
	var validation ValidationErrors
	if errors.As(err, &validation) {
		response["error"] = "Validation failed"
		response["errors"] = validation
	}

	return c.Status(status).JSON(response)
}
