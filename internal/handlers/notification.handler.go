package handlers

import (
	"estatehub/internal/app"
	notificationController "estatehub/internal/controllers/notifications"
	"estatehub/internal/resources"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Handler
	notificationController notificationController.NotificationControllerInterface
}

func NewNotificationHandler(app app.App, router fiber.Router) *NotificationHandler {
	log := logger.New("handlers").File("notification_handler")
	return &NotificationHandler{
		notificationController: app.Controllers.Notification,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *NotificationHandler) Register() {
	h.router.Get("/notifications", h.middleware.RequireAuth(), h.getNotifications)
}

func (h *NotificationHandler) getNotifications(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	notifications, err := h.notificationController.GetNotifications(c.UserContext(), user)
	if err != nil {
		return h.handleError(c, err, "Failed to get notifications")
	}

	return c.JSON(fiber.Map{
		"notifications": resources.NewNotificationCollection(notifications),
	})
}
