package repositories

import (
	"context"
	"errors"

	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *Review) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*Review, error)
	GetByProperty(ctx context.Context, tx *gorm.DB, propertyID uint) ([]Review, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]Review, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, propertyID uint) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type reviewRepository struct {
	log logger.Logger
}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{log: logger.New("reviewRepository")}
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *Review) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit("User", "Property").Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewExists
		}
		return log.Err("failed to create review", err, "propertyID", review.PropertyID)
	}

	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*Review, error) {
	review, err := gorm.G[Review](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, r.log.TraceFromContext(ctx).Function("GetByID").
			Err("failed to get review", err, "id", id)
	}
	return &review, nil
}

func (r *reviewRepository) GetByProperty(
	ctx context.Context,
	tx *gorm.DB,
	propertyID uint,
) ([]Review, error) {
	var reviews []Review
	if err := tx.WithContext(ctx).
		Preload("User").
		Where("property_id = ?", propertyID).
		Order("date DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, r.log.TraceFromContext(ctx).Function("GetByProperty").
			Err("failed to get property reviews", err, "propertyID", propertyID)
	}
	return reviews, nil
}

func (r *reviewRepository) GetByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]Review, error) {
	var reviews []Review
	if err := tx.WithContext(ctx).
		Preload("Property").
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, r.log.TraceFromContext(ctx).Function("GetByUser").
			Err("failed to get user reviews", err, "userID", userID)
	}
	return reviews, nil
}

func (r *reviewRepository) Exists(ctx context.Context, tx *gorm.DB, userID, propertyID uint) (bool, error) {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&Review{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error; err != nil {
		return false, r.log.TraceFromContext(ctx).Function("Exists").
			Err("failed to check review", err, "userID", userID, "propertyID", propertyID)
	}
	return count > 0, nil
}

func (r *reviewRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := tx.WithContext(ctx).Delete(&Review{}, id)
	if result.Error != nil {
		return r.log.TraceFromContext(ctx).Function("Delete").
			Err("failed to delete review", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
