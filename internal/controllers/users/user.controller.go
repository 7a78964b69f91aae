package userController

import (
	"context"
	"strings"

	"estatehub/config"
	authController "estatehub/internal/controllers/auth"
	"estatehub/internal/database"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

const NAME_RULES = "required,max=100"

type UserController struct {
	userRepo repositories.UserRepository
	db       database.DB
	Config   config.Config
	log      logger.Logger
}

type UserControllerInterface interface {
	GetAll(ctx context.Context, user *User) ([]User, error)
	UpdateProfile(ctx context.Context, user *User, request *UpdateProfileRequest) (*User, error)
	UpdatePassword(ctx context.Context, user *User, request *UpdatePasswordRequest) error
	DeleteUser(ctx context.Context, user *User, userID uint) error
}

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		db:       db,
		Config:   config,
		log:      logger.New("userController"),
	}
}

func (uc *UserController) GetAll(ctx context.Context, user *User) ([]User, error) {
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}
	return uc.userRepo.GetAll(ctx, uc.db.SQL)
}

func (uc *UserController) UpdateProfile(
	ctx context.Context,
	user *User,
	request *UpdateProfileRequest,
) (*User, error) {
	log := uc.log.TraceFromContext(ctx).Function("UpdateProfile")

	// The authenticated user may come from cache without its password hash.
	current, err := uc.userRepo.GetByEmail(ctx, uc.db.SQL, user.Email)
	if err != nil {
		return nil, err
	}

	errs := ValidationErrors{}
	if request.FirstName != nil {
		current.FirstName = strings.TrimSpace(*request.FirstName)
		utils.ValidateVar(errs, "first_name", current.FirstName, NAME_RULES)
	}
	if request.LastName != nil {
		current.LastName = strings.TrimSpace(*request.LastName)
		utils.ValidateVar(errs, "last_name", current.LastName, NAME_RULES)
	}
	if request.Email != nil {
		current.Email = authController.NormalizeEmail(*request.Email)
		utils.ValidateVar(errs, "email", current.Email, authController.EMAIL_RULES)
	}
	if request.Phone != nil {
		if phone := strings.TrimSpace(*request.Phone); phone != "" {
			utils.ValidateVar(errs, "phone", phone, "max=30")
			current.Phone = &phone
		} else {
			current.Phone = nil
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if err := uc.userRepo.Update(ctx, uc.db.SQL, current); err != nil {
		return nil, err
	}

	log.Info("Profile updated", "userID", current.ID)
	return current, nil
}

func (uc *UserController) UpdatePassword(
	ctx context.Context,
	user *User,
	request *UpdatePasswordRequest,
) error {
	log := uc.log.TraceFromContext(ctx).Function("UpdatePassword")

	current, err := uc.userRepo.GetByEmail(ctx, uc.db.SQL, user.Email)
	if err != nil {
		return err
	}

	if !services.CheckPassword(current.Password, request.CurrentPassword) {
		return ErrInvalidCredentials
	}
	errs := ValidationErrors{}
	utils.ValidateVar(errs, "new_password", request.NewPassword, authController.PASSWORD_RULES)
	if err := errs.OrNil(); err != nil {
		return err
	}

	hash, err := services.HashPassword(request.NewPassword)
	if err != nil {
		return log.Err("failed to hash password", err, "userID", current.ID)
	}
	current.Password = hash

	if err := uc.userRepo.Update(ctx, uc.db.SQL, current); err != nil {
		return err
	}

	log.Info("Password updated", "userID", current.ID)
	return nil
}

// DeleteUser removes an account. Users may delete themselves; admins may delete anyone.
func (uc *UserController) DeleteUser(ctx context.Context, user *User, userID uint) error {
	if user.ID != userID && !user.IsAdmin() {
		return ErrForbidden
	}

	if err := uc.userRepo.Delete(ctx, uc.db.SQL, userID); err != nil {
		return err
	}

	uc.log.TraceFromContext(ctx).Function("DeleteUser").
		Info("User deleted", "userID", userID, "actorID", user.ID)
	return nil
}
