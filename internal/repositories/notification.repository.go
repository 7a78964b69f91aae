package repositories

import (
	"context"

	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, notification *Notification) error
	GetForUser(ctx context.Context, tx *gorm.DB, userID uint) ([]Notification, error)
}

type notificationRepository struct {
	log logger.Logger
}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{log: logger.New("notificationRepository")}
}

func (r *notificationRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	notification *Notification,
) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).
		Omit("FromUser", "ToUser", "Property").
		Create(notification).Error; err != nil {
		return log.Err(
			"failed to create notification", err,
			"type", notification.Type,
			"toUserID", notification.ToUserID,
		)
	}

	return nil
}

func (r *notificationRepository) GetForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uint,
) ([]Notification, error) {
	log := r.log.TraceFromContext(ctx).Function("GetForUser")

	var notifications []Notification
	if err := tx.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		Preload("Property").
		Where("to_user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&notifications).Error; err != nil {
		return nil, log.Err("failed to get notifications", err, "userID", userID)
	}

	return notifications, nil
}
