package notificationController

import (
	"context"

	. "estatehub/internal/models"
	"estatehub/internal/services"
)

type NotificationController struct {
	notifier *services.NotifierService
}

type NotificationControllerInterface interface {
	GetNotifications(ctx context.Context, user *User) ([]Notification, error)
}

func New(services services.Service) NotificationControllerInterface {
	return &NotificationController{notifier: services.Notifier}
}

// GetNotifications lists what the user has received, newest first.
func (c *NotificationController) GetNotifications(ctx context.Context, user *User) ([]Notification, error) {
	return c.notifier.GetForUser(ctx, user.ID)
}
