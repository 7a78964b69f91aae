package models

import (
	"time"

	"gorm.io/gorm"
)

type ReasonReportType string

const (
	ReasonReportTypeProperty ReasonReportType = "report-property"
	ReasonReportTypeUser     ReasonReportType = "report-user"
)

func (t ReasonReportType) IsValid() bool {
	return t == ReasonReportTypeProperty || t == ReasonReportTypeUser
}

type ReasonReport struct {
	BaseModel
	Reason string           `gorm:"type:text;not null"              json:"reason"`
	Type   ReasonReportType `gorm:"type:varchar(30);not null;index" json:"type"`
}

type Review struct {
	BaseModel
	UserID     uint      `gorm:"not null;uniqueIndex:idx_reviews_user_property,priority:1" json:"userId"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_reviews_user_property,priority:2;index" json:"propertyId"`
	Content    *string   `gorm:"type:text"                                                 json:"content,omitempty"`
	Rate       int       `gorm:"type:int;not null"                                         json:"rate"`
	Date       time.Time `gorm:"not null"                                                  json:"date"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"     json:"user,omitempty"`
	Property *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Date.IsZero() {
		r.Date = time.Now()
	}
	return nil
}
