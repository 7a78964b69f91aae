package models

type Amenity struct {
	BaseModel
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

type PropertyType struct {
	BaseModel
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

// PropertyAmenity is a row of the property_amenities join table.
type PropertyAmenity struct {
	PropertyID uint `gorm:"primaryKey"`
	AmenityID  uint `gorm:"primaryKey;index"`
}

func (PropertyAmenity) TableName() string {
	return "property_amenities"
}
