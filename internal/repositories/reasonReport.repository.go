package repositories

import (
	"context"

	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ReasonReportRepository interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]ReasonReport, error)
	GetByType(ctx context.Context, tx *gorm.DB, reportType ReasonReportType) ([]ReasonReport, error)
	Create(ctx context.Context, tx *gorm.DB, report *ReasonReport) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type reasonReportRepository struct {
	log logger.Logger
}

func NewReasonReportRepository() ReasonReportRepository {
	return &reasonReportRepository{log: logger.New("reasonReportRepository")}
}

func (r *reasonReportRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]ReasonReport, error) {
	reports, err := gorm.G[ReasonReport](tx).Order("id ASC").Find(ctx)
	if err != nil {
		return nil, r.log.TraceFromContext(ctx).Function("GetAll").
			Err("failed to get reason reports", err)
	}
	return reports, nil
}

func (r *reasonReportRepository) GetByType(
	ctx context.Context,
	tx *gorm.DB,
	reportType ReasonReportType,
) ([]ReasonReport, error) {
	reports, err := gorm.G[ReasonReport](tx).Where("type = ?", reportType).Order("id ASC").Find(ctx)
	if err != nil {
		return nil, r.log.TraceFromContext(ctx).Function("GetByType").
			Err("failed to get reason reports by type", err, "type", reportType)
	}
	return reports, nil
}

func (r *reasonReportRepository) Create(ctx context.Context, tx *gorm.DB, report *ReasonReport) error {
	if err := tx.WithContext(ctx).Create(report).Error; err != nil {
		return r.log.TraceFromContext(ctx).Function("Create").
			Err("failed to create reason report", err, "type", report.Type)
	}
	return nil
}

func (r *reasonReportRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := tx.WithContext(ctx).Delete(&ReasonReport{}, id)
	if result.Error != nil {
		return r.log.TraceFromContext(ctx).Function("Delete").
			Err("failed to delete reason report", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
