package reasonReportController

import (
	"context"

	"estatehub/config"
	"estatehub/internal/database"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

type ReasonReportController struct {
	reasonReportRepo repositories.ReasonReportRepository
	db               database.DB
	Config           config.Config
	log              logger.Logger
}

type ReasonReportControllerInterface interface {
	GetAll(ctx context.Context) ([]ReasonReport, error)
	GetByType(ctx context.Context, reportType ReasonReportType) ([]ReasonReport, error)
	Create(ctx context.Context, user *User, request *CreateReasonRequest) (*ReasonReport, error)
	Delete(ctx context.Context, user *User, id uint) error
}

type CreateReasonRequest struct {
	Reason string           `json:"reason" validate:"required,max=255"`
	Type   ReasonReportType `json:"type"   validate:"required,oneof=report-property report-user"`
}

func (r *CreateReasonRequest) Validate() error {
	r.Reason = utils.CleanText(r.Reason)
	return utils.ValidateStruct(r)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ReasonReportControllerInterface {
	return &ReasonReportController{
		reasonReportRepo: repos.ReasonReport,
		db:               db,
		Config:           config,
		log:              logger.New("reasonReportController"),
	}
}

func (c *ReasonReportController) GetAll(ctx context.Context) ([]ReasonReport, error) {
	return c.reasonReportRepo.GetAll(ctx, c.db.SQL)
}

func (c *ReasonReportController) GetByType(
	ctx context.Context,
	reportType ReasonReportType,
) ([]ReasonReport, error) {
	if !reportType.IsValid() {
		return nil, ValidationErrors{"type": "must be report-property or report-user"}
	}
	return c.reasonReportRepo.GetByType(ctx, c.db.SQL, reportType)
}

func (c *ReasonReportController) Create(
	ctx context.Context,
	user *User,
	request *CreateReasonRequest,
) (*ReasonReport, error) {
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	report := &ReasonReport{Reason: request.Reason, Type: request.Type}
	if err := c.reasonReportRepo.Create(ctx, c.db.SQL, report); err != nil {
		return nil, err
	}

	c.log.TraceFromContext(ctx).Function("Create").
		Info("Report reason created", "id", report.ID, "type", report.Type)
	return report, nil
}

// Delete returns ErrNotFound when the id does not resolve.
func (c *ReasonReportController) Delete(ctx context.Context, user *User, id uint) error {
	if !user.IsAdmin() {
		return ErrForbidden
	}
	return c.reasonReportRepo.Delete(ctx, c.db.SQL, id)
}
