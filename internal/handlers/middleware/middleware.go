package middleware

import (
	"estatehub/config"
	"estatehub/internal/database"
	"estatehub/internal/repositories"
	"estatehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB          database.DB
	userRepo    repositories.UserRepository
	authService *services.AuthService
	metrics     *services.MetricsService
	Config      config.Config
	log         logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
	svc services.Service,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:          db,
		userRepo:    repos.User,
		authService: svc.Auth,
		metrics:     svc.Metrics,
		Config:      config,
		log:         log,
	}
}
