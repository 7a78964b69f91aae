package resources

import (
	. "estatehub/internal/models"
)

// NotificationResource names the recipient "user" and the sender "landlord".
type NotificationResource struct {
	ID         uint             `json:"id"`
	User       *UserResource    `json:"user"`
	Landlord   *UserResource    `json:"landlord"`
	PropertyID *uint            `json:"property_id"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
	CreatedAt  string           `json:"created_at"`
}

func NewNotificationResource(notification *Notification) *NotificationResource {
	if notification == nil {
		return nil
	}

	return &NotificationResource{
		ID:         notification.ID,
		User:       NewUserResource(notification.ToUser),
		Landlord:   NewUserResource(notification.FromUser),
		PropertyID: notification.PropertyID,
		Message:    notification.Message,
		Type:       notification.Type,
		CreatedAt:  notification.CreatedAt.Format(DATE_TIME_LAYOUT),
	}
}

func NewNotificationCollection(notifications []Notification) []NotificationResource {
	collection := make([]NotificationResource, 0, len(notifications))
	for i := range notifications {
		collection = append(collection, *NewNotificationResource(&notifications[i]))
	}
	return collection
}

type ReviewResource struct {
	ID         uint          `json:"id"`
	PropertyID uint          `json:"property_id"`
	Content    *string       `json:"content"`
	Rate       int           `json:"rate"`
	Date       string        `json:"date"`
	User       *UserResource `json:"user"`
}

func NewReviewResource(review *Review) *ReviewResource {
	if review == nil {
		return nil
	}

	return &ReviewResource{
		ID:         review.ID,
		PropertyID: review.PropertyID,
		Content:    review.Content,
		Rate:       review.Rate,
		Date:       review.Date.Format(DATE_TIME_LAYOUT),
		User:       NewUserResource(review.User),
	}
}

func NewReviewCollection(reviews []Review) []ReviewResource {
	collection := make([]ReviewResource, 0, len(reviews))
	for i := range reviews {
		collection = append(collection, *NewReviewResource(&reviews[i]))
	}
	return collection
}
