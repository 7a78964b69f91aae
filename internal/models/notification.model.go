package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeStatusChange    NotificationType = "status_change"
	NotificationTypePropertyRequest NotificationType = "property_request"
	NotificationTypeUpdateRequest   NotificationType = "update_request"
)

type Notification struct {
	BaseModel
	FromUserID uint             `gorm:"not null;index"                 json:"fromUserId"`
	ToUserID   uint             `gorm:"not null;index"                 json:"toUserId"`
	PropertyID *uint            `gorm:"index"                          json:"propertyId,omitempty"`
	Message    string           `gorm:"type:text;not null"             json:"message"`
	Type       NotificationType `gorm:"type:varchar(30);not null;index" json:"type"`
	Date       time.Time        `gorm:"not null"                       json:"date"`

	FromUser *User     `gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE"  json:"fromUser,omitempty"`
	ToUser   *User     `gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE"    json:"toUser,omitempty"`
	Property *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:SET NULL" json:"property,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.Date.IsZero() {
		n.Date = time.Now()
	}
	return nil
}

func (n *Notification) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutable
}

type EmailDeliveryStatus string

const (
	EmailDeliveryStatusPending EmailDeliveryStatus = "pending"
	EmailDeliveryStatusSent    EmailDeliveryStatus = "sent"
	EmailDeliveryStatusFailed  EmailDeliveryStatus = "failed"
)

// EmailDelivery is the outbox row for an email queued alongside a notification.
type EmailDelivery struct {
	BaseModel
	NotificationID *uint               `gorm:"index"                                            json:"notificationId,omitempty"`
	ToEmail        string              `gorm:"type:text;not null"                               json:"toEmail"`
	Subject        string              `gorm:"type:text;not null"                               json:"subject"`
	Body           string              `gorm:"type:text;not null"                               json:"body"`
	Status         EmailDeliveryStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Attempts       int                 `gorm:"type:int;not null;default:0"                      json:"attempts"`
	LastError      *string             `gorm:"type:text"                                        json:"lastError,omitempty"`
	SentAt         *time.Time          `                                                        json:"sentAt,omitempty"`

	Notification *Notification `gorm:"foreignKey:NotificationID;constraint:OnDelete:SET NULL" json:"-"`
}
