package controllers

import (
	"estatehub/config"
	"estatehub/internal/database"
	"estatehub/internal/repositories"
	"estatehub/internal/services"

	authController "estatehub/internal/controllers/auth"
	catalogController "estatehub/internal/controllers/catalog"
	notificationController "estatehub/internal/controllers/notifications"
	propertyController "estatehub/internal/controllers/properties"
	reasonReportController "estatehub/internal/controllers/reasonReports"
	reviewController "estatehub/internal/controllers/reviews"
	userController "estatehub/internal/controllers/users"
)

type Controllers struct {
	Auth         authController.AuthControllerInterface
	User         userController.UserControllerInterface
	Property     propertyController.PropertyControllerInterface
	Review       reviewController.ReviewControllerInterface
	ReasonReport reasonReportController.ReasonReportControllerInterface
	Catalog      catalogController.CatalogControllerInterface
	Notification notificationController.NotificationControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:         authController.New(services, repos, config, db),
		User:         userController.New(repos, services, config, db),
		Property:     propertyController.New(repos, services, config, db),
		Review:       reviewController.New(repos, services, config, db),
		ReasonReport: reasonReportController.New(repos, services, config, db),
		Catalog:      catalogController.New(repos, services, config, db),
		Notification: notificationController.New(services),
	}
}
