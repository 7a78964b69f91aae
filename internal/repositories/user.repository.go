package repositories

import (
	"context"
	"errors"
	"time"

	"estatehub/internal/database"
	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY = 24 * time.Hour
	USER_CACHE_PREFIX = "user"
)

type UserRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]User, error)
	GetAdmins(ctx context.Context, tx *gorm.DB) ([]User, error)
	GetFirstAdmin(ctx context.Context, tx *gorm.DB) (*User, error)
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	Update(ctx context.Context, tx *gorm.DB, user *User) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type userRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewUserRepository(cache database.CacheClient) UserRepository {
	return &userRepository{
		cache: cache,
		log:   logger.New("userRepository"),
	}
}

// GetByID serves the cached profile. The cached copy never carries the password hash.
func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*User, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var cached User
	found, err := database.NewCacheBuilder(r.cache, id).
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get user from cache", "userID", id, "error", err)
	}
	if found {
		return &cached, nil
	}

	user, err := r.getDB(ctx, tx, "id = ?", id)
	if err != nil {
		return nil, err
	}

	if err := database.NewCacheBuilder(r.cache, id).
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		Set(); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return user, nil
}

// GetByEmail always reads the database so the password hash is present.
func (r *userRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error) {
	return r.getDB(ctx, tx, "email = ?", email)
}

func (r *userRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]User, error) {
	users, err := gorm.G[User](tx).Order("id ASC").Find(ctx)
	if err != nil {
		return nil, r.log.TraceFromContext(ctx).Function("GetAll").Err("failed to get users", err)
	}
	return users, nil
}

func (r *userRepository) GetAdmins(ctx context.Context, tx *gorm.DB) ([]User, error) {
	admins, err := gorm.G[User](tx).Where("role = ?", RoleAdmin).Order("id ASC").Find(ctx)
	if err != nil {
		return nil, r.log.TraceFromContext(ctx).Function("GetAdmins").Err("failed to get admins", err)
	}
	return admins, nil
}

// GetFirstAdmin returns the admin with the lowest id, or ErrNoAdmin.
func (r *userRepository) GetFirstAdmin(ctx context.Context, tx *gorm.DB) (*User, error) {
	admin, err := gorm.G[User](tx).Where("role = ?", RoleAdmin).Order("id ASC").First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAdmin
		}
		return nil, r.log.TraceFromContext(ctx).Function("GetFirstAdmin").
			Err("failed to get first admin", err)
	}
	return &admin, nil
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return log.Err("failed to create user", err, "email", user.Email)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	r.clearCache(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&User{}, id)
	if result.Error != nil {
		return log.Err("failed to delete user", result.Error, "userID", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.clearCache(ctx, id)
	return nil
}

func (r *userRepository) getDB(ctx context.Context, tx *gorm.DB, query string, arg any) (*User, error) {
	var user User
	if err := tx.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, r.log.TraceFromContext(ctx).Function("getDB").Err("failed to get user", err, "arg", arg)
	}
	return &user, nil
}

func (r *userRepository) clearCache(ctx context.Context, id uint) {
	if err := database.NewCacheBuilder(r.cache, id).
		WithContext(ctx).
		WithHash(USER_CACHE_PREFIX).
		Delete(); err != nil {
		r.log.Function("clearCache").Warn("failed to clear user cache", "userID", id, "error", err)
	}
}
