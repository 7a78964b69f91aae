package repositories

import (
	"context"
	"errors"
	"time"

	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type PropertyUpdateRepository interface {
	Create(ctx context.Context, tx *gorm.DB, update *PropertyUpdate) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*PropertyUpdate, error)
	GetByStatus(ctx context.Context, tx *gorm.DB, status PropertyUpdateStatus) ([]PropertyUpdate, error)
	MarkApproved(ctx context.Context, tx *gorm.DB, update *PropertyUpdate) error
}

type propertyUpdateRepository struct {
	log logger.Logger
}

func NewPropertyUpdateRepository() PropertyUpdateRepository {
	return &propertyUpdateRepository{log: logger.New("propertyUpdateRepository")}
}

func (r *propertyUpdateRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	update *PropertyUpdate,
) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if update.Status == "" {
		update.Status = PropertyUpdateStatusPending
	}

	if err := tx.WithContext(ctx).Omit("Property", "User").Create(update).Error; err != nil {
		return log.Err("failed to stage property update", err, "propertyID", update.PropertyID)
	}

	return nil
}

func (r *propertyUpdateRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uint,
) (*PropertyUpdate, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var update PropertyUpdate
	if err := tx.WithContext(ctx).Preload("Property").First(&update, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get property update", err, "id", id)
	}

	return &update, nil
}

func (r *propertyUpdateRepository) GetByStatus(
	ctx context.Context,
	tx *gorm.DB,
	status PropertyUpdateStatus,
) ([]PropertyUpdate, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByStatus")

	var updates []PropertyUpdate
	if err := tx.WithContext(ctx).
		Preload("Property").
		Preload("User").
		Where("status = ?", status).
		Order("created_at ASC, id ASC").
		Find(&updates).Error; err != nil {
		return nil, log.Err("failed to get property updates", err, "status", status)
	}

	return updates, nil
}

// MarkApproved flips a pending update to approved. A concurrent approval that already
// won leaves zero rows affected and yields ErrAlreadyApproved.
func (r *propertyUpdateRepository) MarkApproved(
	ctx context.Context,
	tx *gorm.DB,
	update *PropertyUpdate,
) error {
	log := r.log.TraceFromContext(ctx).Function("MarkApproved")

	now := time.Now()
	result := tx.WithContext(ctx).
		Model(&PropertyUpdate{}).
		Where("id = ? AND status = ?", update.ID, PropertyUpdateStatusPending).
		Updates(map[string]any{
			"status":      PropertyUpdateStatusApproved,
			"approved_at": now,
		})
	if result.Error != nil {
		return log.Err("failed to approve property update", result.Error, "id", update.ID)
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyApproved
	}

	update.Status = PropertyUpdateStatusApproved
	update.ApprovedAt = &now
	return nil
}
