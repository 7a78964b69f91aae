package authController

import (
	"context"
	"errors"
	"strings"

	"estatehub/config"
	"estatehub/internal/database"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

// Tag rules shared with partial profile updates. bcrypt rejects passwords over 72 bytes.
const (
	PASSWORD_RULES = "required,min=8,maxbytes=72"
	EMAIL_RULES    = "required,email"
)

type AuthController struct {
	authService *services.AuthService
	userRepo    repositories.UserRepository
	db          database.DB
	Config      config.Config
	log         logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
}

type RegisterRequest struct {
	FirstName string  `json:"first_name"      validate:"required,max=100"`
	LastName  string  `json:"last_name"       validate:"required,max=100"`
	Email     string  `json:"email"           validate:"required,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Password  string  `json:"password"        validate:"required,min=8,maxbytes=72"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}

func (r *RegisterRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = NormalizeEmail(r.Email)
	if r.Phone != nil {
		phone := strings.TrimSpace(*r.Phone)
		if phone == "" {
			r.Phone = nil
		} else {
			r.Phone = &phone
		}
	}

	return utils.ValidateStruct(r)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		authService: services.Auth,
		userRepo:    repos.User,
		db:          db,
		Config:      config,
		log:         logger.New("authController"),
	}
}

// Register creates a landlord account and signs it in.
func (c *AuthController) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Register")

	if err := request.Validate(); err != nil {
		return nil, err
	}

	hash, err := services.HashPassword(request.Password)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	user := &User{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Phone:     request.Phone,
		Password:  hash,
		Role:      RoleLandlord,
	}
	if err := c.userRepo.Create(ctx, c.db.SQL, user); err != nil {
		return nil, err
	}

	log.Info("User registered", "userID", user.ID)
	return c.respond(ctx, user)
}

func (c *AuthController) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Login")

	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}

	user, err := c.userRepo.GetByEmail(ctx, c.db.SQL, NormalizeEmail(request.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !services.CheckPassword(user.Password, request.Password) {
		log.Info("password mismatch", "userID", user.ID)
		return nil, ErrInvalidCredentials
	}

	return c.respond(ctx, user)
}

func (c *AuthController) respond(ctx context.Context, user *User) (*AuthResponse, error) {
	token, err := c.authService.IssueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(c.Config.JWTExpiry.Seconds()),
		User:        user,
	}, nil
}
