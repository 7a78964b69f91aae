package propertyController

import (
	"strconv"
	"strings"

	. "estatehub/internal/models"
	"estatehub/internal/repositories"

	"github.com/shopspring/decimal"
)

// SearchRequest is the raw search form. Empty fields do not constrain the search.
type SearchRequest struct {
	PropertyType   string   `query:"property_type"`
	ListingType    string   `query:"listing_type"`
	NumOfRooms     string   `query:"num_of_rooms"`
	NumOfBathrooms string   `query:"num_of_bathrooms"`
	Price          string   `query:"price"`
	City           string   `query:"city"`
	MinPrice       string   `query:"min_price"`
	MaxPrice       string   `query:"max_price"`
	Amenities      []string `query:"amenities"`
}

// Filters parses the form into repository filters, collecting every invalid field.
func (r SearchRequest) Filters() (repositories.SearchFilters, error) {
	var filters repositories.SearchFilters
	errs := ValidationErrors{}

	if value := strings.TrimSpace(r.PropertyType); value != "" {
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			errs.Add("property_type", "must be an id")
		} else {
			propertyTypeID := uint(id)
			filters.PropertyTypeID = &propertyTypeID
		}
	}

	if value := strings.TrimSpace(r.ListingType); value != "" {
		listingType := ListingType(value)
		if !listingType.IsValid() {
			errs.Add("listing_type", "must be rent or buy")
		} else {
			filters.ListingType = &listingType
		}
	}

	rooms, err := repositories.ParseCountFilter(r.NumOfRooms)
	if err != nil {
		errs.Add("num_of_rooms", "must be a number or +7")
	}
	filters.Rooms = rooms

	bathrooms, err := repositories.ParseCountFilter(r.NumOfBathrooms)
	if err != nil {
		errs.Add("num_of_bathrooms", "must be a number or +7")
	}
	filters.Bathrooms = bathrooms

	filters.Price = parsePrice(r.Price, "price", errs)
	filters.MinPrice = parsePrice(r.MinPrice, "min_price", errs)
	filters.MaxPrice = parsePrice(r.MaxPrice, "max_price", errs)

	if city := strings.TrimSpace(r.City); city != "" {
		filters.City = &city
	}

	for _, raw := range r.Amenities {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				errs.Add("amenities", "must be a list of ids")
				continue
			}
			filters.AmenityIDs = append(filters.AmenityIDs, uint(id))
		}
	}

	if err := errs.OrNil(); err != nil {
		return repositories.SearchFilters{}, err
	}
	return filters, nil
}

func parsePrice(raw, field string, errs ValidationErrors) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		errs.Add(field, "must be a non-negative number")
		return nil
	}
	return &price
}
