package repositories

import (
	"context"
	"time"

	"estatehub/internal/database"
	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	CATALOG_CACHE_PREFIX = "catalog"
	CATALOG_CACHE_EXPIRY = 24 * time.Hour
)

// CatalogRepository serves the admin-curated lookup tables behind the listing forms.
type CatalogRepository interface {
	GetAmenities(ctx context.Context, tx *gorm.DB) ([]Amenity, error)
	GetPropertyTypes(ctx context.Context, tx *gorm.DB) ([]PropertyType, error)
	CreateAmenity(ctx context.Context, tx *gorm.DB, amenity *Amenity) error
	CreatePropertyType(ctx context.Context, tx *gorm.DB, propertyType *PropertyType) error
}

type catalogRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewCatalogRepository(cache database.CacheClient) CatalogRepository {
	return &catalogRepository{
		cache: cache,
		log:   logger.New("catalogRepository"),
	}
}

func (r *catalogRepository) GetAmenities(ctx context.Context, tx *gorm.DB) ([]Amenity, error) {
	return cachedList(ctx, r.cache, r.log.TraceFromContext(ctx).Function("GetAmenities"), "amenities",
		func() ([]Amenity, error) {
			return gorm.G[Amenity](tx).Order("name ASC").Find(ctx)
		})
}

func (r *catalogRepository) GetPropertyTypes(
	ctx context.Context,
	tx *gorm.DB,
) ([]PropertyType, error) {
	return cachedList(ctx, r.cache, r.log.TraceFromContext(ctx).Function("GetPropertyTypes"), "property_types",
		func() ([]PropertyType, error) {
			return gorm.G[PropertyType](tx).Order("name ASC").Find(ctx)
		})
}

func (r *catalogRepository) CreateAmenity(ctx context.Context, tx *gorm.DB, amenity *Amenity) error {
	log := r.log.TraceFromContext(ctx).Function("CreateAmenity")

	if err := tx.WithContext(ctx).Create(amenity).Error; err != nil {
		return log.Err("failed to create amenity", err, "name", amenity.Name)
	}
	r.clear(ctx, "amenities")
	return nil
}

func (r *catalogRepository) CreatePropertyType(
	ctx context.Context,
	tx *gorm.DB,
	propertyType *PropertyType,
) error {
	log := r.log.TraceFromContext(ctx).Function("CreatePropertyType")

	if err := tx.WithContext(ctx).Create(propertyType).Error; err != nil {
		return log.Err("failed to create property type", err, "name", propertyType.Name)
	}
	r.clear(ctx, "property_types")
	return nil
}

func (r *catalogRepository) clear(ctx context.Context, key string) {
	if err := database.NewCacheBuilder(r.cache, key).
		WithContext(ctx).
		WithHash(CATALOG_CACHE_PREFIX).
		Delete(); err != nil {
		r.log.Function("clear").Warn("failed to clear catalog cache", "key", key, "error", err)
	}
}

func cachedList[T any](
	ctx context.Context,
	cache database.CacheClient,
	log logger.Logger,
	key string,
	load func() ([]T, error),
) ([]T, error) {
	var cached []T
	found, err := database.NewCacheBuilder(cache, key).
		WithContext(ctx).
		WithHash(CATALOG_CACHE_PREFIX).
		Get(&cached)
	if err != nil {
		log.Warn("failed to read catalog cache", "key", key, "error", err)
	}
	if found {
		return cached, nil
	}

	items, err := load()
	if err != nil {
		return nil, log.Err("failed to load catalog", err, "key", key)
	}

	if err := database.NewCacheBuilder(cache, key).
		WithContext(ctx).
		WithHash(CATALOG_CACHE_PREFIX).
		WithStruct(items).
		WithTTL(CATALOG_CACHE_EXPIRY).
		Set(); err != nil {
		log.Warn("failed to write catalog cache", "key", key, "error", err)
	}

	return items, nil
}
