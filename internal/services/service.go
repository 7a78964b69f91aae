package services

import (
	"context"

	"estatehub/config"
	"estatehub/internal/database"
	"estatehub/internal/events"
	"estatehub/internal/repositories"
)

type Service struct {
	Transaction *TransactionService
	Scheduler   *SchedulerService
	Notifier    *NotifierService
	Auth        *AuthService
	Metrics     *MetricsService
	Publisher   *PublisherService
	Storage     ImageStorage
}

func New(
	ctx context.Context,
	db database.DB,
	repos repositories.Repository,
	config config.Config,
	eventBus *events.EventBus,
) (Service, error) {
	metrics := NewMetricsService()

	publisher, err := NewPublisherService(config)
	if err != nil {
		return Service{}, err
	}

	storageService, err := NewStorageService(ctx, config)
	if err != nil {
		return Service{}, err
	}

	// Keep disabled collaborators as nil interfaces, not typed nil pointers.
	var storage ImageStorage
	if storageService != nil {
		storage = storageService
	}
	var mailer Mailer
	if mailService := NewMailService(config); mailService != nil {
		mailer = mailService
	}
	var eventPublisher EventPublisher
	if eventBus != nil {
		eventPublisher = eventBus
	}

	notifier := NewNotifierService(repos, db, NotifierDeps{
		Mailer:      mailer,
		Events:      eventPublisher,
		Publisher:   publisher,
		Metrics:     metrics,
		MaxAttempts: config.EmailMaxAttempts,
	})

	return Service{
		Transaction: NewTransactionService(db),
		Scheduler:   NewSchedulerService(),
		Notifier:    notifier,
		Auth:        NewAuthService(config),
		Metrics:     metrics,
		Publisher:   publisher,
		Storage:     storage,
	}, nil
}
