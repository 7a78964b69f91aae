package models

import (
	"time"

	"gorm.io/datatypes"
)

type PropertyUpdateStatus string

const (
	PropertyUpdateStatusPending  PropertyUpdateStatus = "pending"
	PropertyUpdateStatusApproved PropertyUpdateStatus = "approved"
)

// PropertyUpdate stages an edit to a live listing until an admin approves it.
type PropertyUpdate struct {
	BaseModel
	PropertyID uint                 `gorm:"not null;index"                                   json:"propertyId"`
	UserID     uint                 `gorm:"not null;index"                                   json:"userId"`
	Data       datatypes.JSONMap    `                                                        json:"data"`
	Status     PropertyUpdateStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ApprovedAt *time.Time           `                                                        json:"approvedAt,omitempty"`

	Property *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property,omitempty"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"     json:"user,omitempty"`
}

// PropertyUpdateColumns lists the property columns a staged update may change.
var PropertyUpdateColumns = map[string]struct{}{
	"title":            {},
	"description":      {},
	"price":            {},
	"listing_type":     {},
	"num_of_rooms":     {},
	"num_of_bathrooms": {},
	"area":             {},
	"availability":     {},
	"property_type_id": {},
}

// EditableFields returns the subset of data that maps onto editable property columns.
func EditableFields(data map[string]any) map[string]any {
	fields := make(map[string]any, len(data))
	for key, value := range data {
		if _, ok := PropertyUpdateColumns[key]; ok {
			fields[key] = value
		}
	}
	return fields
}
