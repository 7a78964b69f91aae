package repositories

import (
	"estatehub/internal/database"
)

type Repository struct {
	User           UserRepository
	Property       PropertyRepository
	PropertyUpdate PropertyUpdateRepository
	Location       LocationRepository
	Catalog        CatalogRepository
	Notification   NotificationRepository
	EmailDelivery  EmailDeliveryRepository
	ReasonReport   ReasonReportRepository
	Review         ReviewRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:           NewUserRepository(db.Cache.User),
		Property:       NewPropertyRepository(db.Cache.Property),
		PropertyUpdate: NewPropertyUpdateRepository(),
		Location:       NewLocationRepository(),
		Catalog:        NewCatalogRepository(db.Cache.General),
		Notification:   NewNotificationRepository(),
		EmailDelivery:  NewEmailDeliveryRepository(),
		ReasonReport:   NewReasonReportRepository(),
		Review:         NewReviewRepository(),
	}
}
