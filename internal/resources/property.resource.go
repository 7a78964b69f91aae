package resources

import (
	. "estatehub/internal/models"

	"github.com/shopspring/decimal"
)

type LocationResource struct {
	ID     uint   `json:"id"`
	City   string `json:"city"`
	State  string `json:"state"`
	Street string `json:"street"`
}

type NamedResource struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ImageResource struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// PropertyResource is the listing payload. Relations are null when they were not loaded.
type PropertyResource struct {
	ID             uint              `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Status         PropertyStatus    `json:"status"`
	ListingType    ListingType       `json:"listing_type"`
	NumOfRooms     int               `json:"num_of_rooms"`
	NumOfBathrooms int               `json:"num_of_bathrooms"`
	Area           int               `json:"area"`
	Availability   Availability      `json:"availability"`
	Slug           string            `json:"slug"`
	Location       *LocationResource `json:"location"`
	PropertyType   *NamedResource    `json:"property_type"`
	User           *UserResource     `json:"user"`
	Images         []ImageResource   `json:"images"`
	Amenities      []NamedResource   `json:"amenities"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

func NewPropertyResource(property *Property) *PropertyResource {
	if property == nil {
		return nil
	}

	resource := &PropertyResource{
		ID:             property.ID,
		Title:          property.Title,
		Description:    property.Description,
		Price:          property.Price,
		Status:         property.Status,
		ListingType:    property.ListingType,
		NumOfRooms:     property.NumOfRooms,
		NumOfBathrooms: property.NumOfBathrooms,
		Area:           property.Area,
		Availability:   property.Availability,
		Slug:           property.Slug,
		User:           NewUserResource(property.User),
		Images:         make([]ImageResource, 0, len(property.Images)),
		Amenities:      make([]NamedResource, 0, len(property.Amenities)),
		CreatedAt:      property.CreatedAt.Format(DATE_TIME_LAYOUT),
		UpdatedAt:      property.UpdatedAt.Format(DATE_TIME_LAYOUT),
	}

	if location := property.Location; location != nil {
		resource.Location = &LocationResource{
			ID:     location.ID,
			City:   location.City,
			State:  location.State,
			Street: location.Street,
		}
	}
	if propertyType := property.PropertyType; propertyType != nil {
		resource.PropertyType = &NamedResource{ID: propertyType.ID, Name: propertyType.Name}
	}
	for _, image := range property.Images {
		resource.Images = append(resource.Images, ImageResource{ID: image.ID, URL: image.URL})
	}
	for _, amenity := range property.Amenities {
		resource.Amenities = append(resource.Amenities, NamedResource{ID: amenity.ID, Name: amenity.Name})
	}

	return resource
}

func NewPropertyCollection(properties []*Property) []PropertyResource {
	collection := make([]PropertyResource, 0, len(properties))
	for _, property := range properties {
		if property != nil {
			collection = append(collection, *NewPropertyResource(property))
		}
	}
	return collection
}

type PropertyUpdateResource struct {
	ID         uint                 `json:"id"`
	PropertyID uint                 `json:"property_id"`
	Data       map[string]any       `json:"data"`
	Status     PropertyUpdateStatus `json:"status"`
	User       *UserResource        `json:"user"`
	Property   *PropertyResource    `json:"property"`
	ApprovedAt *string              `json:"approved_at"`
	CreatedAt  string               `json:"created_at"`
}

func NewPropertyUpdateResource(update *PropertyUpdate) *PropertyUpdateResource {
	if update == nil {
		return nil
	}

	resource := &PropertyUpdateResource{
		ID:         update.ID,
		PropertyID: update.PropertyID,
		Data:       update.Data,
		Status:     update.Status,
		User:       NewUserResource(update.User),
		Property:   NewPropertyResource(update.Property),
		CreatedAt:  update.CreatedAt.Format(DATE_TIME_LAYOUT),
	}
	if update.ApprovedAt != nil {
		approvedAt := update.ApprovedAt.Format(DATE_TIME_LAYOUT)
		resource.ApprovedAt = &approvedAt
	}

	return resource
}

func NewPropertyUpdateCollection(updates []PropertyUpdate) []PropertyUpdateResource {
	collection := make([]PropertyUpdateResource, 0, len(updates))
	for i := range updates {
		collection = append(collection, *NewPropertyUpdateResource(&updates[i]))
	}
	return collection
}
