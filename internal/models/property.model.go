package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PropertyStatus string

const (
	PropertyStatusPending  PropertyStatus = "pending"
	PropertyStatusAccepted PropertyStatus = "accepted"
	PropertyStatusRejected PropertyStatus = "rejected"
)

func (s PropertyStatus) IsValid() bool {
	switch s {
	case PropertyStatusPending, PropertyStatusAccepted, PropertyStatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a status an admin may move a listing into.
func (s PropertyStatus) IsDecision() bool {
	return s == PropertyStatusAccepted || s == PropertyStatusRejected
}

type ListingType string

const (
	ListingTypeRent ListingType = "rent"
	ListingTypeBuy  ListingType = "buy"
)

func (t ListingType) IsValid() bool {
	return t == ListingTypeRent || t == ListingTypeBuy
}

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

type Property struct {
	BaseModel
	Title          string          `gorm:"type:text;not null"                               json:"title"`
	Description    string          `gorm:"type:text"                                        json:"description"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null"                      json:"price"`
	Status         PropertyStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ListingType    ListingType     `gorm:"type:varchar(10);not null;index"                  json:"listingType"`
	NumOfRooms     int             `gorm:"type:int;not null;default:0"                      json:"numOfRooms"`
	NumOfBathrooms int             `gorm:"type:int;not null;default:0"                      json:"numOfBathrooms"`
	Area           int             `gorm:"type:int;not null;default:0"                      json:"area"`
	Availability   Availability    `gorm:"type:varchar(20);not null;default:'available'"    json:"availability"`
	Slug           string          `gorm:"type:text;not null;index"                         json:"slug"`
	LocationID     uint            `gorm:"not null;index"                                   json:"locationId"`
	UserID         uint            `gorm:"not null;index"                                   json:"userId"`
	PropertyTypeID *uint           `gorm:"index"                                            json:"propertyTypeId,omitempty"`

	Location     *Location       `gorm:"foreignKey:LocationID"                                   json:"location,omitempty"`
	User         *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"           json:"user,omitempty"`
	PropertyType *PropertyType   `gorm:"foreignKey:PropertyTypeID;constraint:OnDelete:SET NULL" json:"propertyType,omitempty"`
	Images       []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"       json:"images,omitempty"`
	Amenities    []Amenity       `gorm:"many2many:property_amenities;constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Title == "" || p.Slug == "" {
		return fmt.Errorf("property title and slug are required: %w", gorm.ErrInvalidValue)
	}
	if p.Status == "" {
		p.Status = PropertyStatusPending
	}
	if p.Availability == "" {
		p.Availability = AvailabilityAvailable
	}
	return nil
}

// CanTransitionTo reports whether the listing may move from its current status to next.
// Only pending listings can be decided.
func (p *Property) CanTransitionTo(next PropertyStatus) bool {
	return p.Status == PropertyStatusPending && next.IsDecision()
}

type PropertyImage struct {
	BaseModel
	PropertyID uint   `gorm:"not null;index" json:"propertyId"`
	URL        string `gorm:"type:text;not null" json:"url"`
}

// SetupJoinTables registers the custom join models. Must run before AutoMigrate.
func SetupJoinTables(db *gorm.DB) error {
	return db.SetupJoinTable(&Property{}, "Amenities", &PropertyAmenity{})
}
