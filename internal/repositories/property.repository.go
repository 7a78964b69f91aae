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
	PROPERTY_SLUG_CACHE_PREFIX = "property:slug"
	PROPERTY_SLUG_CACHE_EXPIRY = time.Hour
	LATEST_PROPERTIES_LIMIT    = 6
)

type PropertyRepository interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Property, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*Property, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*Property, error)
	GetLatest(ctx context.Context, tx *gorm.DB, listingType ListingType) ([]*Property, error)
	GetByStatus(ctx context.Context, tx *gorm.DB, status PropertyStatus) ([]*Property, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*Property, error)
	Search(ctx context.Context, tx *gorm.DB, filters SearchFilters) ([]*Property, error)
	Create(ctx context.Context, tx *gorm.DB, property *Property) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, property *Property, status PropertyStatus) error
	ApplyUpdate(ctx context.Context, tx *gorm.DB, propertyID uint, fields map[string]any) error
	AttachAmenities(ctx context.Context, tx *gorm.DB, propertyID uint, amenityIDs []uint) error
	AddImages(ctx context.Context, tx *gorm.DB, propertyID uint, urls []string) ([]PropertyImage, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (*Property, error)
	ClearSlugCache(ctx context.Context, slug string) error
}

type propertyRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewPropertyRepository(cache database.CacheClient) PropertyRepository {
	return &propertyRepository{
		cache: cache,
		log:   logger.New("propertyRepository"),
	}
}

// withRelations eager-loads everything a property payload renders.
func withRelations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("property_images.id ASC") }).
		Preload("Location").
		Preload("Amenities").
		Preload("PropertyType").
		Preload("User")
}

func (r *propertyRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Property, error) {
	log := r.log.TraceFromContext(ctx).Function("GetAll")

	var properties []*Property
	if err := withRelations(tx.WithContext(ctx)).Order("id ASC").Find(&properties).Error; err != nil {
		return nil, log.Err("failed to get properties", err)
	}

	return properties, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*Property, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var property Property
	if err := withRelations(tx.WithContext(ctx)).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get property by id", err, "id", id)
	}

	return &property, nil
}

func (r *propertyRepository) GetBySlug(
	ctx context.Context,
	tx *gorm.DB,
	slug string,
) (*Property, error) {
	log := r.log.TraceFromContext(ctx).Function("GetBySlug")

	var cached Property
	found, err := database.NewCacheBuilder(r.cache, slug).
		WithContext(ctx).
		WithHash(PROPERTY_SLUG_CACHE_PREFIX).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get property from cache", "slug", slug, "error", err)
	}
	if found {
		return &cached, nil
	}

	var property Property
	if err := withRelations(tx.WithContext(ctx)).
		Where("slug = ?", slug).
		Order("id ASC").
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get property by slug", err, "slug", slug)
	}

	err = database.NewCacheBuilder(r.cache, slug).
		WithContext(ctx).
		WithHash(PROPERTY_SLUG_CACHE_PREFIX).
		WithStruct(property).
		WithTTL(PROPERTY_SLUG_CACHE_EXPIRY).
		Set()
	if err != nil {
		log.Warn("failed to cache property", "slug", slug, "error", err)
	}

	return &property, nil
}

func (r *propertyRepository) GetLatest(
	ctx context.Context,
	tx *gorm.DB,
	listingType ListingType,
) ([]*Property, error) {
	log := r.log.TraceFromContext(ctx).Function("GetLatest")

	var properties []*Property
	if err := withRelations(tx.WithContext(ctx)).
		Where("listing_type = ?", listingType).
		Order("created_at DESC, id DESC").
		Limit(LATEST_PROPERTIES_LIMIT).
		Find(&properties).Error; err != nil {
		return nil, log.Err("failed to get latest properties", err, "listingType", listingType)
	}

	return properties, nil
}

// GetByStatus returns ErrNotFound when no property has the status.
func (r *propertyRepository) GetByStatus(
	ctx context.Context,
	tx *gorm.DB,
	status PropertyStatus,
) ([]*Property, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByStatus")

	var properties []*Property
	if err := withRelations(tx.WithContext(ctx)).
		Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&properties).Error; err != nil {
		return nil, log.Err("failed to get properties by status", err, "status", status)
	}

	if len(properties) == 0 {
		return nil, ErrNotFound
	}

	return properties, nil
}

func (r *propertyRepository) GetByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uint,
) ([]*Property, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByUser")

	var properties []*Property
	if err := withRelations(tx.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&properties).Error; err != nil {
		return nil, log.Err("failed to get user properties", err, "userID", userID)
	}

	return properties, nil
}

func (r *propertyRepository) Search(
	ctx context.Context,
	tx *gorm.DB,
	filters SearchFilters,
) ([]*Property, error) {
	log := r.log.TraceFromContext(ctx).Function("Search")

	query := filters.Apply(tx.WithContext(ctx).Model(&Property{}))

	var properties []*Property
	if err := withRelations(query).Select("properties.*").Find(&properties).Error; err != nil {
		return nil, log.Err("failed to search properties", err, "filters", filters)
	}

	return properties, nil
}

func (r *propertyRepository) Create(ctx context.Context, tx *gorm.DB, property *Property) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit("Images", "Amenities", "Location", "User", "PropertyType").
		Create(property).Error; err != nil {
		return log.Err("failed to create property", err, "title", property.Title)
	}

	return nil
}

// UpdateStatus decides a pending listing. Only a row still pending is written, so of
// two concurrent decisions the second gets ErrInvalidTransition.
func (r *propertyRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	property *Property,
	status PropertyStatus,
) error {
	log := r.log.TraceFromContext(ctx).Function("UpdateStatus")

	result := tx.WithContext(ctx).
		Model(&Property{}).
		Where("id = ? AND status = ?", property.ID, PropertyStatusPending).
		Update("status", status)
	if result.Error != nil {
		return log.Err("failed to update property status", result.Error, "id", property.ID)
	}
	if result.RowsAffected == 0 {
		// Either the row is gone or another decision already committed.
		var count int64
		if err := tx.WithContext(ctx).Model(&Property{}).Where("id = ?", property.ID).Count(&count).Error; err != nil {
			return log.Err("failed to check property", err, "id", property.ID)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInvalidTransition
	}

	property.Status = status
	return nil
}

// ApplyUpdate writes fields onto the property. Callers filter fields to editable columns.
func (r *propertyRepository) ApplyUpdate(
	ctx context.Context,
	tx *gorm.DB,
	propertyID uint,
	fields map[string]any,
) error {
	log := r.log.TraceFromContext(ctx).Function("ApplyUpdate")

	if len(fields) == 0 {
		return ErrEmptyUpdate
	}

	result := tx.WithContext(ctx).Model(&Property{}).Where("id = ?", propertyID).Updates(fields)
	if result.Error != nil {
		return log.Err("failed to apply property update", result.Error, "id", propertyID)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AttachAmenities links the property to every id, failing with ErrUnknownAmenity if any is missing.
func (r *propertyRepository) AttachAmenities(
	ctx context.Context,
	tx *gorm.DB,
	propertyID uint,
	amenityIDs []uint,
) error {
	log := r.log.TraceFromContext(ctx).Function("AttachAmenities")

	ids := uniqueIDs(amenityIDs)
	if len(ids) == 0 {
		return nil
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&Amenity{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return log.Err("failed to count amenities", err, "ids", ids)
	}
	if int(count) != len(ids) {
		log.Warn("unknown amenity ids", "ids", ids, "found", count)
		return ErrUnknownAmenity
	}

	links := make([]PropertyAmenity, 0, len(ids))
	for _, id := range ids {
		links = append(links, PropertyAmenity{PropertyID: propertyID, AmenityID: id})
	}

	if err := tx.WithContext(ctx).Create(&links).Error; err != nil {
		return log.Err("failed to attach amenities", err, "propertyID", propertyID)
	}

	return nil
}

func (r *propertyRepository) AddImages(
	ctx context.Context,
	tx *gorm.DB,
	propertyID uint,
	urls []string,
) ([]PropertyImage, error) {
	log := r.log.TraceFromContext(ctx).Function("AddImages")

	if len(urls) == 0 {
		return nil, nil
	}

	images := make([]PropertyImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, PropertyImage{PropertyID: propertyID, URL: url})
	}

	if err := tx.WithContext(ctx).Create(&images).Error; err != nil {
		return nil, log.Err("failed to create property images", err, "propertyID", propertyID)
	}

	return images, nil
}

// Delete removes the property and its dependent rows, returning what was removed.
func (r *propertyRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) (*Property, error) {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	var property Property
	if err := tx.WithContext(ctx).Preload("Images").First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to load property for delete", err, "id", id)
	}

	dependents := []any{&PropertyImage{}, &PropertyAmenity{}, &PropertyUpdate{}, &Review{}}
	for _, model := range dependents {
		if err := tx.WithContext(ctx).Where("property_id = ?", id).Delete(model).Error; err != nil {
			return nil, log.Err("failed to delete property dependents", err, "id", id)
		}
	}

	if err := tx.WithContext(ctx).
		Model(&Notification{}).
		Where("property_id = ?", id).
		UpdateColumn("property_id", nil).Error; err != nil {
		return nil, log.Err("failed to detach notifications", err, "id", id)
	}

	if err := tx.WithContext(ctx).Delete(&Property{}, id).Error; err != nil {
		return nil, log.Err("failed to delete property", err, "id", id)
	}

	return &property, nil
}

func (r *propertyRepository) ClearSlugCache(ctx context.Context, slug string) error {
	if err := database.NewCacheBuilder(r.cache, slug).
		WithContext(ctx).
		WithHash(PROPERTY_SLUG_CACHE_PREFIX).
		Delete(); err != nil {
		return r.log.TraceFromContext(ctx).Function("ClearSlugCache").
			Err("failed to clear property cache", err, "slug", slug)
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
