package repositories

import (
	"context"

	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type LocationRepository interface {
	FirstOrCreate(ctx context.Context, tx *gorm.DB, city, state, street string) (*Location, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]Location, error)
}

type locationRepository struct {
	log logger.Logger
}

func NewLocationRepository() LocationRepository {
	return &locationRepository{log: logger.New("locationRepository")}
}

// FirstOrCreate reuses a location only on an exact (city, state, street) match.
func (r *locationRepository) FirstOrCreate(
	ctx context.Context,
	tx *gorm.DB,
	city, state, street string,
) (*Location, error) {
	log := r.log.TraceFromContext(ctx).Function("FirstOrCreate")

	location := Location{City: city, State: state, Street: street}
	if err := tx.WithContext(ctx).
		Where("city = ? AND state = ? AND street = ?", city, state, street).
		Order("id ASC").
		FirstOrCreate(&location).Error; err != nil {
		return nil, log.Err("failed to find or create location", err, "city", city, "street", street)
	}

	return &location, nil
}

func (r *locationRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]Location, error) {
	locations, err := gorm.G[Location](tx).Order("city ASC, id ASC").Find(ctx)
	if err != nil {
		return nil, r.log.TraceFromContext(ctx).Function("GetAll").Err("failed to get locations", err)
	}
	return locations, nil
}
