package reviewController

import (
	"context"
	"unicode"
	"unicode/utf8"

	"estatehub/config"
	"estatehub/internal/database"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

type ReviewController struct {
	reviewRepo   repositories.ReviewRepository
	propertyRepo repositories.PropertyRepository
	metrics      *services.MetricsService
	db           database.DB
	Config       config.Config
	log          logger.Logger
}

type ReviewControllerInterface interface {
	CreateReview(ctx context.Context, user *User, propertyID uint, request *CreateReviewRequest) (*Review, error)
	GetPropertyReviews(ctx context.Context, propertyID uint) ([]Review, error)
	GetUserReviews(ctx context.Context, user *User) ([]Review, error)
	DeleteReview(ctx context.Context, user *User, reviewID uint) error
}

type CreateReviewRequest struct {
	Rate    int     `json:"rate"              validate:"min=1,max=5"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=4,max=2000"`
}

// Validate requires a rate of 1 to 5. Content is optional but, when present, must be
// at least four characters and must not start with a digit.
func (r *CreateReviewRequest) Validate() error {
	if r.Content != nil {
		content := utils.CleanText(*r.Content)
		if content == "" {
			r.Content = nil
		} else {
			r.Content = &content
		}
	}

	errs := ValidationErrors{}
	if err := utils.ValidateStruct(r); err != nil {
		fieldErrs, ok := err.(ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}

	if r.Content != nil {
		if first, _ := utf8.DecodeRuneInString(*r.Content); unicode.IsDigit(first) {
			errs.Add("content", "must not start with a number")
		}
	}

	return errs.OrNil()
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ReviewControllerInterface {
	return &ReviewController{
		reviewRepo:   repos.Review,
		propertyRepo: repos.Property,
		metrics:      services.Metrics,
		db:           db,
		Config:       config,
		log:          logger.New("reviewController"),
	}
}

func (c *ReviewController) CreateReview(
	ctx context.Context,
	user *User,
	propertyID uint,
	request *CreateReviewRequest,
) (*Review, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateReview")

	if err := request.Validate(); err != nil {
		return nil, err
	}

	if _, err := c.propertyRepo.GetByID(ctx, c.db.SQL, propertyID); err != nil {
		return nil, err
	}

	exists, err := c.reviewRepo.Exists(ctx, c.db.SQL, user.ID, propertyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	review := &Review{
		UserID:     user.ID,
		PropertyID: propertyID,
		Content:    request.Content,
		Rate:       request.Rate,
	}
	// The unique index still catches a concurrent duplicate.
	if err := c.reviewRepo.Create(ctx, c.db.SQL, review); err != nil {
		return nil, err
	}

	c.metrics.ReviewCreated()
	log.Info("Review created", "reviewID", review.ID, "propertyID", propertyID, "userID", user.ID)

	review.User = user
	return review, nil
}

func (c *ReviewController) GetPropertyReviews(ctx context.Context, propertyID uint) ([]Review, error) {
	return c.reviewRepo.GetByProperty(ctx, c.db.SQL, propertyID)
}

func (c *ReviewController) GetUserReviews(ctx context.Context, user *User) ([]Review, error) {
	return c.reviewRepo.GetByUser(ctx, c.db.SQL, user.ID)
}

func (c *ReviewController) DeleteReview(ctx context.Context, user *User, reviewID uint) error {
	review, err := c.reviewRepo.GetByID(ctx, c.db.SQL, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != user.ID && !user.IsAdmin() {
		return ErrForbidden
	}

	return c.reviewRepo.Delete(ctx, c.db.SQL, reviewID)
}
