package repositories

import (
	"context"
	"time"

	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type EmailDeliveryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, delivery *EmailDelivery) error
	GetRetryable(
		ctx context.Context,
		tx *gorm.DB,
		pendingBefore time.Time,
		maxAttempts, limit int,
	) ([]EmailDelivery, error)
	MarkSent(ctx context.Context, tx *gorm.DB, delivery *EmailDelivery) error
	MarkFailed(ctx context.Context, tx *gorm.DB, delivery *EmailDelivery, cause error) error
	DeleteSentBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type emailDeliveryRepository struct {
	log logger.Logger
}

func NewEmailDeliveryRepository() EmailDeliveryRepository {
	return &emailDeliveryRepository{log: logger.New("emailDeliveryRepository")}
}

func (r *emailDeliveryRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	delivery *EmailDelivery,
) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if delivery.Status == "" {
		delivery.Status = EmailDeliveryStatusPending
	}

	if err := tx.WithContext(ctx).Omit("Notification").Create(delivery).Error; err != nil {
		return log.Err("failed to queue email", err, "to", delivery.ToEmail)
	}

	return nil
}

// GetRetryable returns unsent deliveries that still have attempts left, oldest first.
// Pending rows created at or after pendingBefore are skipped: they belong to a
// request that may still be sending them.
func (r *emailDeliveryRepository) GetRetryable(
	ctx context.Context,
	tx *gorm.DB,
	pendingBefore time.Time,
	maxAttempts, limit int,
) ([]EmailDelivery, error) {
	log := r.log.TraceFromContext(ctx).Function("GetRetryable")

	deliveries, err := gorm.G[EmailDelivery](tx).
		Where("attempts < ?", maxAttempts).
		Where("status = ? OR (status = ? AND created_at < ?)",
			EmailDeliveryStatusFailed,
			EmailDeliveryStatusPending,
			pendingBefore,
		).
		Order("id ASC").
		Limit(limit).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get retryable emails", err)
	}

	return deliveries, nil
}

func (r *emailDeliveryRepository) MarkSent(
	ctx context.Context,
	tx *gorm.DB,
	delivery *EmailDelivery,
) error {
	now := time.Now()
	delivery.Status = EmailDeliveryStatusSent
	delivery.Attempts++
	delivery.SentAt = &now
	delivery.LastError = nil

	return r.save(ctx, tx, delivery)
}

func (r *emailDeliveryRepository) MarkFailed(
	ctx context.Context,
	tx *gorm.DB,
	delivery *EmailDelivery,
	cause error,
) error {
	message := cause.Error()
	delivery.Status = EmailDeliveryStatusFailed
	delivery.Attempts++
	delivery.LastError = &message

	return r.save(ctx, tx, delivery)
}

func (r *emailDeliveryRepository) save(ctx context.Context, tx *gorm.DB, delivery *EmailDelivery) error {
	if err := tx.WithContext(ctx).
		Model(&EmailDelivery{}).
		Where("id = ?", delivery.ID).
		Updates(map[string]any{
			"status":     delivery.Status,
			"attempts":   delivery.Attempts,
			"sent_at":    delivery.SentAt,
			"last_error": delivery.LastError,
		}).Error; err != nil {
		return r.log.TraceFromContext(ctx).Function("save").
			Err("failed to update email delivery", err, "id", delivery.ID)
	}
	return nil
}

func (r *emailDeliveryRepository) DeleteSentBefore(
	ctx context.Context,
	tx *gorm.DB,
	cutoff time.Time,
) (int64, error) {
	result := tx.WithContext(ctx).
		Where("status = ? AND sent_at < ?", EmailDeliveryStatusSent, cutoff).
		Delete(&EmailDelivery{})
	if result.Error != nil {
		return 0, r.log.TraceFromContext(ctx).Function("DeleteSentBefore").
			Err("failed to purge sent emails", result.Error, "cutoff", cutoff)
	}
	return result.RowsAffected, nil
}
