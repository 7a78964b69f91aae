package models

type Location struct {
	BaseModel
	City   string `gorm:"type:text;not null;index:idx_locations_lookup,priority:1" json:"city"`
	State  string `gorm:"type:text;not null;index:idx_locations_lookup,priority:2" json:"state"`
	Street string `gorm:"type:text;not null;index:idx_locations_lookup,priority:3" json:"street"`
}
