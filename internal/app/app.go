package app

import (
	"context"

	"estatehub/config"
	"estatehub/internal/controllers"
	"estatehub/internal/database"
	"estatehub/internal/events"
	"estatehub/internal/handlers/middleware"
	"estatehub/internal/jobs"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)
	repos := repositories.New(db)

	svc, err := services.New(context.Background(), db, repos, config, eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	websocket, err := websockets.New(db, eventBus, svc.Auth, repos)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware.New(db, config, repos, svc),
		Websocket:   websocket,
		EventBus:    eventBus,
		Services:    svc,
		Repos:       repos,
		Controllers: controllers.New(svc, repos, config, db),
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	if err := jobs.RegisterAllJobs(svc.Scheduler, config, svc); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	if err := svc.Scheduler.Start(context.Background()); err != nil {
		return &App{}, log.Err("failed to start scheduler", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Notifier,
		a.Services.Auth,
		a.Services.Metrics,
		a.Controllers.Auth,
		a.Controllers.User,
		a.Controllers.Property,
		a.Controllers.Review,
		a.Controllers.ReasonReport,
		a.Controllers.Catalog,
		a.Controllers.Notification,
		a.Repos.User,
		a.Repos.Property,
		a.Repos.Notification,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	a.Services.Publisher.Close()

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
