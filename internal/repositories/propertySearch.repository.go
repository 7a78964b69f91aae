package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	. "estatehub/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CountOpenEndedThreshold is the bucket the search form renders as "+7".
const CountOpenEndedThreshold = 7

var ErrInvalidCountFilter = errors.New("invalid count filter")

// CountFilter matches a room or bathroom count exactly, or strictly above a threshold.
type CountFilter struct {
	Value       int
	GreaterThan bool
}

// ParseCountFilter accepts "3" for an exact count and "+7" for more than seven.
// A leading space is read as "+", since an unencoded "+7" in a query string
// decodes to " 7".
func ParseCountFilter(raw string) (*CountFilter, error) {
	raw = strings.TrimRight(raw, " ")
	if raw == "" {
		return nil, nil
	}

	digits, greaterThan := strings.CutPrefix(raw, "+")
	if !greaterThan && strings.HasPrefix(raw, " ") {
		digits, greaterThan = strings.TrimLeft(raw, " "), true
	}

	value, err := strconv.Atoi(digits)
	if err != nil || value < 0 || strings.HasPrefix(digits, "+") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCountFilter, raw)
	}
	return &CountFilter{Value: value, GreaterThan: greaterThan}, nil
}

func (f CountFilter) String() string {
	if f.GreaterThan {
		return "+" + strconv.Itoa(f.Value)
	}
	return strconv.Itoa(f.Value)
}

func (f CountFilter) apply(query *gorm.DB, column string) *gorm.DB {
	if f.GreaterThan {
		return query.Where(column+" > ?", f.Value)
	}
	return query.Where(column+" = ?", f.Value)
}

// SearchFilters narrows a property search. Nil and empty fields are ignored and all
// supplied fields must match.
type SearchFilters struct {
	PropertyTypeID *uint
	ListingType    *ListingType
	Rooms          *CountFilter
	Bathrooms      *CountFilter
	Price          *decimal.Decimal
	City           *string
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	AmenityIDs     []uint
}

func (f SearchFilters) IsEmpty() bool {
	return f.PropertyTypeID == nil && f.ListingType == nil && f.Rooms == nil &&
		f.Bathrooms == nil && f.Price == nil && f.City == nil && f.MinPrice == nil &&
		f.MaxPrice == nil && len(f.AmenityIDs) == 0
}

// Apply adds the filter predicates to a query rooted at the properties table.
func (f SearchFilters) Apply(query *gorm.DB) *gorm.DB {
	if f.PropertyTypeID != nil {
		query = query.Where("properties.property_type_id = ?", *f.PropertyTypeID)
	}

	if f.ListingType != nil {
		query = query.Where("properties.listing_type = ?", *f.ListingType)
	}

	if f.Rooms != nil {
		query = f.Rooms.apply(query, "properties.num_of_rooms")
	}

	if f.Bathrooms != nil {
		query = f.Bathrooms.apply(query, "properties.num_of_bathrooms")
	}

	if f.Price != nil {
		query = query.Where("properties.price = ?", *f.Price)
	}

	if f.City != nil {
		query = query.
			Joins("JOIN locations ON locations.id = properties.location_id").
			Where("locations.city = ?", *f.City)
	}

	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		query = query.Where("properties.price BETWEEN ? AND ?", *f.MinPrice, *f.MaxPrice)
	case f.MinPrice != nil:
		query = query.Where("properties.price >= ?", *f.MinPrice)
	case f.MaxPrice != nil:
		query = query.Where("properties.price <= ?", *f.MaxPrice)
	}

	if ids := uniqueIDs(f.AmenityIDs); len(ids) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM property_amenities pa WHERE pa.property_id = properties.id AND pa.amenity_id IN ?)",
			ids,
		)
	}

	return query
}
