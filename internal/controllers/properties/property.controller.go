package propertyController

import (
	"context"
	"fmt"
	"slices"

	"estatehub/config"
	"estatehub/internal/database"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const STATUS_EMAIL_SUBJECT = "Your property status has been updated"

type PropertyController struct {
	propertyRepo       repositories.PropertyRepository
	updateRepo         repositories.PropertyUpdateRepository
	locationRepo       repositories.LocationRepository
	userRepo           repositories.UserRepository
	transactionService *services.TransactionService
	notifier           *services.NotifierService
	metrics            *services.MetricsService
	storage            services.ImageStorage
	db                 database.DB
	Config             config.Config
	log                logger.Logger
}

type PropertyControllerInterface interface {
	GetAll(ctx context.Context) ([]*Property, error)
	GetBySlug(ctx context.Context, slug string) (*Property, error)
	GetLatest(ctx context.Context, listingType ListingType) ([]*Property, error)
	GetByStatus(ctx context.Context, status PropertyStatus) ([]*Property, error)
	GetByUser(ctx context.Context, user *User) ([]*Property, error)
	Search(ctx context.Context, request SearchRequest) ([]*Property, error)
	CreateProperty(ctx context.Context, user *User, request *CreatePropertyRequest) (*Property, error)
	UpdateStatus(ctx context.Context, user *User, propertyID uint, status PropertyStatus) (*Property, error)
	ProposeUpdate(ctx context.Context, user *User, propertyID uint, data map[string]any) (*PropertyUpdate, error)
	ApproveUpdate(ctx context.Context, user *User, propertyUpdateID uint) (*Property, error)
	ListUpdates(ctx context.Context, user *User, status PropertyUpdateStatus) ([]PropertyUpdate, error)
	DeleteProperty(ctx context.Context, user *User, propertyID uint) error
}

type CreatePropertyRequest struct {
	Title          string            `json:"title"            form:"title"            validate:"required,max=255"`
	Description    string            `json:"description"      form:"description"      validate:"max=5000"`
	Price          decimal.Decimal   `json:"price"            form:"price"`
	ListingType    ListingType       `json:"listing_type"     form:"listing_type"     validate:"required,oneof=rent buy"`
	NumOfRooms     int               `json:"num_of_rooms"     form:"num_of_rooms"     validate:"gte=0"`
	NumOfBathrooms int               `json:"num_of_bathrooms" form:"num_of_bathrooms" validate:"gte=0"`
	Area           int               `json:"area"             form:"area"             validate:"gte=0"`
	PropertyTypeID *uint             `json:"property_type_id" form:"property_type_id" validate:"omitempty,gt=0"`
	City           string            `json:"city"             form:"city"             validate:"required,max=255"`
	State          string            `json:"state"            form:"state"            validate:"required,max=255"`
	Street         string            `json:"street"           form:"street"           validate:"required,max=255"`
	Amenities      []uint            `json:"amenities"        form:"amenities"`
	Images         []services.Upload `json:"-"                form:"-"`
}

// Slugs that collide with fixed routes under /properties.
var RESERVED_SLUGS = []string{"latest", "search", "mine", "status"}

func (r *CreatePropertyRequest) Validate() error {
	r.Title = utils.CleanText(r.Title)
	r.Description = utils.CleanText(r.Description)
	r.City = utils.CleanText(r.City)
	r.State = utils.CleanText(r.State)
	r.Street = utils.CleanText(r.Street)

	errs := ValidationErrors{}
	if err := utils.ValidateStruct(r); err != nil {
		fieldErrs, ok := err.(ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}

	if r.Title != "" {
		titleSlug := slug.Make(r.Title)
		switch {
		case titleSlug == "":
			errs.Add("title", "must contain letters or digits")
		case slices.Contains(RESERVED_SLUGS, titleSlug):
			errs.Add("title", "is reserved, add more words")
		}
	}
	if r.Price.IsNegative() {
		errs.Add("price", "must not be negative")
	}

	return errs.OrNil()
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) PropertyControllerInterface {
	return &PropertyController{
		propertyRepo:       repos.Property,
		updateRepo:         repos.PropertyUpdate,
		locationRepo:       repos.Location,
		userRepo:           repos.User,
		transactionService: services.Transaction,
		notifier:           services.Notifier,
		metrics:            services.Metrics,
		storage:            services.Storage,
		db:                 db,
		Config:             config,
		log:                logger.New("propertyController"),
	}
}

func (c *PropertyController) GetAll(ctx context.Context) ([]*Property, error) {
	return c.propertyRepo.GetAll(ctx, c.db.SQL)
}

func (c *PropertyController) GetBySlug(ctx context.Context, slug string) (*Property, error) {
	return c.propertyRepo.GetBySlug(ctx, c.db.SQL, slug)
}

func (c *PropertyController) GetLatest(ctx context.Context, listingType ListingType) ([]*Property, error) {
	if !listingType.IsValid() {
		return nil, ValidationErrors{"listing_type": "must be rent or buy"}
	}
	return c.propertyRepo.GetLatest(ctx, c.db.SQL, listingType)
}

// GetByStatus passes through ErrNotFound when no listing has the status.
func (c *PropertyController) GetByStatus(ctx context.Context, status PropertyStatus) ([]*Property, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return c.propertyRepo.GetByStatus(ctx, c.db.SQL, status)
}

func (c *PropertyController) GetByUser(ctx context.Context, user *User) ([]*Property, error) {
	return c.propertyRepo.GetByUser(ctx, c.db.SQL, user.ID)
}

func (c *PropertyController) Search(ctx context.Context, request SearchRequest) ([]*Property, error) {
	filters, err := request.Filters()
	if err != nil {
		return nil, err
	}
	return c.propertyRepo.Search(ctx, c.db.SQL, filters)
}

// CreateProperty stores the listing with its location, images and amenities and
// notifies every admin, all in one transaction. Images are uploaded first and
// removed again if the transaction fails.
func (c *PropertyController) CreateProperty(
	ctx context.Context,
	user *User,
	request *CreatePropertyRequest,
) (*Property, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateProperty")

	if err := request.Validate(); err != nil {
		return nil, err
	}

	var imageURLs []string
	if len(request.Images) > 0 {
		if c.storage == nil {
			return nil, ErrStorageDisabled
		}
		urls, err := c.storage.Upload(ctx, request.Images)
		if err != nil {
			return nil, log.Err("failed to upload property images", err, "userID", user.ID)
		}
		imageURLs = urls
	}

	outbox := &services.Outbox{}
	property := &Property{
		Title:          request.Title,
		Description:    request.Description,
		Price:          request.Price,
		Status:         PropertyStatusPending,
		ListingType:    request.ListingType,
		NumOfRooms:     request.NumOfRooms,
		NumOfBathrooms: request.NumOfBathrooms,
		Area:           request.Area,
		Availability:   AvailabilityAvailable,
		Slug:           slug.Make(request.Title),
		UserID:         user.ID,
		PropertyTypeID: request.PropertyTypeID,
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		location, err := c.locationRepo.FirstOrCreate(ctx, tx, request.City, request.State, request.Street)
		if err != nil {
			return err
		}
		property.LocationID = location.ID

		if err := c.propertyRepo.Create(ctx, tx, property); err != nil {
			return err
		}

		if _, err := c.propertyRepo.AddImages(ctx, tx, property.ID, imageURLs); err != nil {
			return err
		}

		if err := c.propertyRepo.AttachAmenities(ctx, tx, property.ID, request.Amenities); err != nil {
			return err
		}

		admins, err := c.userRepo.GetAdmins(ctx, tx)
		if err != nil {
			return err
		}

		propertyID := property.ID
		return c.notifier.NotifyAll(ctx, tx, outbox, admins, Notification{
			FromUserID: user.ID,
			PropertyID: &propertyID,
			Message:    fmt.Sprintf("%s wants to add a new property.", user.FullName()),
			Type:       NotificationTypePropertyRequest,
		})
	})
	if err != nil {
		c.removeImages(ctx, imageURLs)
		return nil, err
	}

	c.notifier.Dispatch(ctx, outbox)
	c.metrics.PropertyCreated()

	log.Info("Property created", "propertyID", property.ID, "userID", user.ID, "slug", property.Slug)

	return c.propertyRepo.GetByID(ctx, c.db.SQL, property.ID)
}

// UpdateStatus accepts or rejects a pending listing. The status write, the owner's
// notification and the queued email commit together; the email is sent afterwards.
func (c *PropertyController) UpdateStatus(
	ctx context.Context,
	user *User,
	propertyID uint,
	status PropertyStatus,
) (*Property, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateStatus")

	if !user.IsAdmin() {
		return nil, ErrForbidden
	}
	if !status.IsDecision() {
		return nil, ErrInvalidStatus
	}

	outbox := &services.Outbox{}
	var property *Property

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		property, err = c.propertyRepo.GetByID(ctx, tx, propertyID)
		if err != nil {
			return err
		}

		if !property.CanTransitionTo(status) {
			return ErrInvalidTransition
		}

		owner := property.User
		if owner == nil {
			return log.ErrMsg("property has no owner")
		}

		if err := c.propertyRepo.UpdateStatus(ctx, tx, property, status); err != nil {
			return err
		}

		message := StatusChangeMessage(owner, property, status)
		notification := &Notification{
			FromUserID: user.ID,
			ToUserID:   owner.ID,
			PropertyID: &property.ID,
			Message:    message,
			Type:       NotificationTypeStatusChange,
		}
		if err := c.notifier.Notify(ctx, tx, outbox, notification); err != nil {
			return err
		}

		return c.notifier.QueueEmail(ctx, tx, outbox, &EmailDelivery{
			NotificationID: &notification.ID,
			ToEmail:        owner.Email,
			Subject:        STATUS_EMAIL_SUBJECT,
			Body:           message,
		})
	})
	if err != nil {
		return nil, err
	}

	c.notifier.Dispatch(ctx, outbox)
	c.metrics.StatusChanged(string(status))
	c.clearSlugCache(ctx, property.Slug)

	log.Info("Property status updated", "propertyID", property.ID, "status", status, "adminID", user.ID)

	return property, nil
}

// StatusChangeMessage is the owner-facing text for a decided listing.
func StatusChangeMessage(owner *User, property *Property, status PropertyStatus) string {
	return fmt.Sprintf(
		"Hello %s, your property '%s' has been %s.",
		owner.FullName(),
		property.Title,
		status,
	)
}

// DeleteProperty hard-deletes the listing and its dependent rows. Only the owner
// or an admin may delete.
func (c *PropertyController) DeleteProperty(ctx context.Context, user *User, propertyID uint) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteProperty")

	var deleted *Property
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		property, err := c.propertyRepo.GetByID(ctx, tx, propertyID)
		if err != nil {
			return err
		}

		if !user.Owns(property) && !user.IsAdmin() {
			return ErrForbidden
		}

		deleted, err = c.propertyRepo.Delete(ctx, tx, propertyID)
		return err
	})
	if err != nil {
		return err
	}

	urls := make([]string, 0, len(deleted.Images))
	for _, image := range deleted.Images {
		urls = append(urls, image.URL)
	}
	c.removeImages(ctx, urls)
	c.clearSlugCache(ctx, deleted.Slug)

	log.Info("Property deleted", "propertyID", propertyID, "userID", user.ID)
	return nil
}

func (c *PropertyController) removeImages(ctx context.Context, urls []string) {
	if len(urls) == 0 || c.storage == nil {
		return
	}
	if err := c.storage.Remove(ctx, urls); err != nil {
		c.log.TraceFromContext(ctx).Function("removeImages").
			Warn("failed to remove property images", "count", len(urls), "error", err)
	}
}

func (c *PropertyController) clearSlugCache(ctx context.Context, slug string) {
	if err := c.propertyRepo.ClearSlugCache(ctx, slug); err != nil {
		c.log.TraceFromContext(ctx).Function("clearSlugCache").
			Warn("failed to clear property cache", "slug", slug, "error", err)
	}
}
